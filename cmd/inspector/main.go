package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Brock-Sense/internal/env"
	"github.com/Garsondee/Brock-Sense/internal/inspector"
)

func main() {
	var configPath string
	var seed int64
	flag.StringVar(&configPath, "config", "", "YAML config profile (defaults when empty)")
	flag.Int64Var(&seed, "seed", 1, "encounter RNG seed")
	flag.Parse()

	cfg := env.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = env.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if configPath != "" && cfg.Headless {
		log.Printf("config %q sets headless; the inspector opens a window regardless", configPath)
	}
	cfg.Verbose = true

	in, err := inspector.New(cfg, seed)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Brock Sense")
	ebiten.SetWindowSize(1280, 720)
	if err := ebiten.RunGame(in); err != nil {
		log.Fatal(err)
	}
}
