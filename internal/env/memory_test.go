package env

import "testing"

func TestOptInt(t *testing.T) {
	if None.Known() || None.OrSentinel() != Sentinel {
		t.Fatal("None should be unknown and encode as the sentinel")
	}
	// A present -1 is still present.
	v := Some(-1)
	if got, ok := v.Get(); !ok || got != -1 {
		t.Fatalf("expected Some(-1) to be present, got %v %v", got, ok)
	}
	if Some(0).OrSentinel() != 0 {
		t.Fatal("Some(0) should encode as 0")
	}
	if None.String() != "none" || Some(12).String() != "12" {
		t.Fatalf("unexpected strings %q %q", None.String(), Some(12).String())
	}
}

func TestLocationKey(t *testing.T) {
	if got := LocationKey(Location{X: 3, Y: 14, MapID: 12}); got != "x:3,y:14,m:12" {
		t.Fatalf("expected x:3,y:14,m:12, got %s", got)
	}
}

func TestEpisodeMemory_TrackStall(t *testing.T) {
	mem := NewEpisodeMemory()
	here := GameSnapshot{Location: Location{X: 1, Y: 1, MapID: 0}}

	mem.TrackStall(here)
	if mem.StallCount != 0 {
		t.Fatalf("no prior snapshot: expected stall 0, got %d", mem.StallCount)
	}
	mem.Observe(here, WallStatus{}, ModeExploration)
	mem.TrackStall(here)
	mem.TrackStall(here)
	if mem.StallCount != 2 {
		t.Fatalf("expected stall 2, got %d", mem.StallCount)
	}
	// Observe leaves the count alone.
	mem.Observe(here, WallStatus{}, ModeExploration)
	if mem.StallCount != 2 {
		t.Fatalf("expected Observe to keep stall 2, got %d", mem.StallCount)
	}

	moved := here
	moved.Location.X = 2
	mem.TrackStall(moved)
	if mem.StallCount != 0 {
		t.Fatalf("moving should reset stall, got %d", mem.StallCount)
	}
}

func TestEpisodeMemory_ObserveTracksEnemyHP(t *testing.T) {
	mem := NewEpisodeMemory()
	here := GameSnapshot{Location: Location{X: 1, Y: 1, MapID: 0}}

	mem.Observe(here, WallStatus{}, ModeExploration)
	if mem.Prior == nil || mem.PriorEnemyHP.Known() {
		t.Fatalf("first observation: prior %v enemy %v", mem.Prior, mem.PriorEnemyHP)
	}

	fight := here
	fight.InBattle = true
	fight.EnemyHP = 17
	mem.Observe(fight, WallStatus{Up: true}, ModeBattle)
	if hp, ok := mem.PriorEnemyHP.Get(); !ok || hp != 17 {
		t.Fatalf("expected prior enemy HP 17, got %v", mem.PriorEnemyHP)
	}
	if mem.LastWalls == nil || !mem.LastWalls.Up {
		t.Fatalf("expected last walls recorded, got %v", mem.LastWalls)
	}

	mem.Observe(here, WallStatus{}, ModeExploration)
	if mem.PriorEnemyHP.Known() {
		t.Fatal("expected prior enemy HP cleared outside battle")
	}
}

func TestEpisodeMemory_PriorIsACopy(t *testing.T) {
	mem := NewEpisodeMemory()
	s := GameSnapshot{Badges: 1}
	mem.Observe(s, WallStatus{}, ModeExploration)
	s.Badges = 5
	if mem.Prior.Badges != 1 {
		t.Fatalf("prior should not alias the caller's snapshot, got %d", mem.Prior.Badges)
	}
}

func TestEpisodeMemory_Reset(t *testing.T) {
	mem := NewEpisodeMemory()
	mem.VisitedMaps.Put(3)
	mem.SeenLocations.Put("x:1,y:1,m:3")
	mem.LastAction = Some(2)
	mem.PriorEnemyHP = Some(9)
	mem.StepCount = 40
	mem.StallCount = 7
	mem.Observe(GameSnapshot{}, WallStatus{}, ModeExploration)

	mem.Reset()
	if mem.VisitedMaps.Size() != 0 || mem.SeenLocations.Size() != 0 {
		t.Fatal("expected novelty sets emptied")
	}
	if mem.Prior != nil || mem.LastWalls != nil {
		t.Fatal("expected prior snapshot and walls cleared")
	}
	if mem.LastAction.Known() || mem.PriorEnemyHP.Known() {
		t.Fatal("expected action and enemy HP cleared")
	}
	if mem.StepCount != 0 || mem.StallCount != 0 {
		t.Fatalf("expected counters zeroed, got %d %d", mem.StepCount, mem.StallCount)
	}
}
