package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/stat"

	"github.com/Garsondee/Brock-Sense/internal/console"
	"github.com/Garsondee/Brock-Sense/internal/env"
)

const (
	outcomeBadge   = "badge"
	outcomeBudget  = "budget"
	outcomeStalled = "stalled"
)

type episodeStats struct {
	index int
	seed  int64

	ret     float64
	steps   int
	outcome string

	maps      int
	locations int
	battles   int
	victories int

	firstBattleStep  int
	firstVictoryStep int
	mapOrder         []string

	terms map[string]float64
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	headStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	outcomeStyles = map[string]lipgloss.Style{
		outcomeBadge:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		outcomeBudget:  lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		outcomeStalled: lipgloss.NewStyle().Foreground(lipgloss.Color("#D75F5F")),
	}
)

// policy picks the control scalar for a step.
type policy func(step int) float64

func newPolicy(name string, seed int64, buttons int) (policy, error) {
	switch name {
	case "random":
		rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- reproducible runs
		return func(int) float64 { return rng.Float64() }, nil
	case "sweep":
		return func(step int) float64 {
			return (float64(step%buttons) + 0.5) / float64(buttons)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported policy %q (supported: random, sweep)", name)
	}
}

func main() {
	var episodes int
	var budget int
	var seedBase int64
	var policyName string
	var configPath string

	flag.IntVar(&episodes, "episodes", 5, "number of episodes")
	flag.IntVar(&budget, "budget", 0, "step budget per episode (0 keeps the config value)")
	flag.Int64Var(&seedBase, "seed", 42, "base RNG seed for episode 1")
	flag.StringVar(&policyName, "policy", "random", "action policy: random or sweep")
	flag.StringVar(&configPath, "config", "", "YAML config profile (defaults when empty)")
	flag.Parse()

	if episodes <= 0 {
		fmt.Println("error: -episodes must be > 0")
		return
	}
	if budget < 0 {
		fmt.Println("error: -budget must be >= 0")
		return
	}

	cfg := env.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = env.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if budget > 0 {
		cfg.StepBudget = budget
	}

	fmt.Println(titleStyle.Render("Headless Episode Report"))
	fmt.Println(dimStyle.Render(fmt.Sprintf("policy=%s episodes=%d budget=%d seed=%d act_freq=%d",
		policyName, episodes, cfg.StepBudget, seedBase, cfg.ActFreq)))
	fmt.Println()

	all := make([]episodeStats, 0, episodes)
	for i := 0; i < episodes; i++ {
		seed := seedBase + int64(i)
		stats, err := runEpisode(i+1, seed, cfg, policyName)
		if err != nil {
			log.Fatal(err)
		}
		all = append(all, stats)
		printEpisode(stats)
	}

	printAggregate(all)
}

// runEpisode plays one episode on a freshly seeded simulated console until it ends.
func runEpisode(index int, seed int64, cfg env.Config, policyName string) (episodeStats, error) {
	con := console.NewScenario(console.WithSeed(seed))
	events := env.NewEventLog()
	e, err := env.New(con, cfg, env.WithEventSink(events))
	if err != nil {
		return episodeStats{}, err
	}
	pol, err := newPolicy(policyName, seed, len(e.Actions().Buttons()))
	if err != nil {
		return episodeStats{}, err
	}

	stats := episodeStats{index: index, seed: seed, terms: map[string]float64{}}
	e.Reset()
	for {
		res := e.Step(pol(stats.steps))
		stats.steps++
		stats.ret += res.Reward
		addTerms(stats.terms, res.Breakdown)
		if res.Breakdown.GrantedLocation {
			stats.locations++
		}
		if res.Done || res.Truncated {
			stats.outcome = classifyOutcome(res, stats.steps, cfg.StepBudget)
			break
		}
	}

	entries := events.Entries()
	stats.maps = events.CountCategory(env.CatNovelty, env.KeyMap)
	stats.battles = events.CountCategory(env.CatBattle, env.KeyEnter)
	stats.victories = events.CountCategory(env.CatBattle, env.KeyVictory)
	stats.firstBattleStep = firstStep(entries, env.CatBattle, env.KeyEnter)
	stats.firstVictoryStep = firstStep(entries, env.CatBattle, env.KeyVictory)
	for _, ev := range events.Filter(env.CatNovelty, env.KeyMap) {
		stats.mapOrder = append(stats.mapOrder, strings.TrimPrefix(ev.Value, "map "))
	}
	return stats, nil
}

func classifyOutcome(res env.StepResult, steps, budget int) string {
	switch {
	case res.Done:
		return outcomeBadge
	case steps < budget:
		return outcomeStalled
	default:
		return outcomeBudget
	}
}

func addTerms(terms map[string]float64, b env.Breakdown) {
	terms["new_map"] += b.NewMap
	terms["location"] += b.Location
	terms["stall"] += b.Stall
	terms["goal"] += b.Goal
	terms["walls"] += b.Walls
	terms["battle"] += b.Battle
	terms["battle_idle"] += b.BattleIdle
	terms["victory"] += b.Victory
	terms["badge"] += b.Badge
	terms["collection"] += b.Collection
}

func firstStep(entries []env.Event, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Step
		}
	}
	return -1
}

func printEpisode(es episodeStats) {
	style, ok := outcomeStyles[es.outcome]
	if !ok {
		style = lipgloss.NewStyle()
	}
	fmt.Println(headStyle.Render(fmt.Sprintf("Episode %d (seed=%d)", es.index, es.seed)))
	fmt.Printf("return=%.2f steps=%d outcome=%s\n", es.ret, es.steps, style.Render(es.outcome))
	fmt.Printf("novelty: maps=%d locations=%d order=[%s]\n", es.maps, es.locations, strings.Join(es.mapOrder, ","))
	fmt.Printf("battle: entered=%d victories=%d first_battle=%d first_victory=%d\n",
		es.battles, es.victories, es.firstBattleStep, es.firstVictoryStep)
	fmt.Printf("terms: %s\n", formatTerms(es.terms))
	fmt.Println()
}

func formatTerms(terms map[string]float64) string {
	names := make([]string, 0, len(terms))
	for k := range terms {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s=%.2f", k, terms[k]))
	}
	return strings.Join(parts, " ")
}

func printAggregate(all []episodeStats) {
	returns := make([]float64, 0, len(all))
	steps := make([]float64, 0, len(all))
	maps := make([]float64, 0, len(all))
	victories := make([]float64, 0, len(all))
	for _, es := range all {
		returns = append(returns, es.ret)
		steps = append(steps, float64(es.steps))
		maps = append(maps, float64(es.maps))
		victories = append(victories, float64(es.victories))
	}

	fmt.Println(titleStyle.Render("Aggregate"))
	fmt.Printf("episodes=%d\n", len(all))
	fmt.Printf("return:    %s\n", meanStd(returns))
	fmt.Printf("steps:     %s\n", meanStd(steps))
	fmt.Printf("maps:      %s\n", meanStd(maps))
	fmt.Printf("victories: %s\n", meanStd(victories))

	counts := outcomeCounts(all)
	fmt.Printf("outcomes: badge=%d budget=%d stalled=%d badge_rate=%.0f%%\n",
		counts[outcomeBadge], counts[outcomeBudget], counts[outcomeStalled],
		rate(counts[outcomeBadge], len(all)))
}

func meanStd(x []float64) string {
	if len(x) == 0 {
		return "n/a"
	}
	if len(x) == 1 {
		return fmt.Sprintf("mean=%.2f", x[0])
	}
	mean, std := stat.MeanStdDev(x, nil)
	return fmt.Sprintf("mean=%.2f std=%.2f", mean, std)
}

func outcomeCounts(all []episodeStats) map[string]int {
	counts := map[string]int{}
	for _, es := range all {
		counts[es.outcome]++
	}
	return counts
}

func rate(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
