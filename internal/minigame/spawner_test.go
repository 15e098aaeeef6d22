package minigame

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/celebration/internal/config"
	"github.com/vovakirdan/celebration/internal/sched"
)

func TestSpawnerRespectsCeiling(t *testing.T) {
	cfg := config.DefaultMinigameConfig()
	clock := sched.New(time.Unix(0, 0))
	reg := NewRegistry(clock)
	sp := NewSpawner(cfg, rand.New(rand.NewSource(1)))
	area := NewArea(80, 24)

	for i := 0; i < cfg.Ceiling; i++ {
		e := sp.MaybeSpawn(reg, area, clock.Now())
		if e == nil {
			t.Fatalf("spawn %d returned nil below the ceiling", i+1)
		}
		reg.Add(*e, 0)
	}

	if e := sp.MaybeSpawn(reg, area, clock.Now()); e != nil {
		t.Errorf("MaybeSpawn() at ceiling returned %+v, expected nil", e)
	}
}

func TestSpawnerKeepsFootprintInsideMargins(t *testing.T) {
	cfg := config.DefaultMinigameConfig()
	cfg.Entity = config.EntityConfig{Width: 4, Height: 2, Margin: 2}
	clock := sched.New(time.Unix(0, 0))
	reg := NewRegistry(clock)
	sp := NewSpawner(cfg, rand.New(rand.NewSource(99)))
	area := NewArea(20, 10)

	for i := 0; i < 500; i++ {
		e := sp.MaybeSpawn(reg, area, clock.Now())
		if e == nil {
			t.Fatal("MaybeSpawn() returned nil on an empty registry")
		}
		if e.X < 2 || e.X+e.W > 18 {
			t.Fatalf("x footprint [%d,%d) leaves margins of 20-wide area", e.X, e.X+e.W)
		}
		if e.Y < 2 || e.Y+e.H > 8 {
			t.Fatalf("y footprint [%d,%d) leaves margins of 10-high area", e.Y, e.Y+e.H)
		}
	}
}

func TestSpawnerLifetimeRange(t *testing.T) {
	cfg := config.DefaultMinigameConfig()
	clock := sched.New(time.Unix(0, 0))
	reg := NewRegistry(clock)
	sp := NewSpawner(cfg, rand.New(rand.NewSource(5)))
	area := NewArea(80, 24)

	for i := 0; i < 500; i++ {
		e := sp.MaybeSpawn(reg, area, clock.Now())
		life := e.Lifetime()
		if life < 7*time.Second || life > 13*time.Second {
			t.Fatalf("lifetime %v outside [7s, 13s]", life)
		}
		if !e.CreatedAt.Equal(clock.Now()) {
			t.Fatal("CreatedAt should be the spawn time")
		}
	}
}

func TestSpawnerTooSmallArea(t *testing.T) {
	cfg := config.DefaultMinigameConfig()
	clock := sched.New(time.Unix(0, 0))
	reg := NewRegistry(clock)
	sp := NewSpawner(cfg, rand.New(rand.NewSource(1)))

	if e := sp.MaybeSpawn(reg, NewArea(3, 24), clock.Now()); e != nil {
		t.Errorf("area narrower than the footprint should not spawn, got %+v", e)
	}

	// Exactly fits: 1 + 4 + 1
	if e := sp.MaybeSpawn(reg, NewArea(6, 4), clock.Now()); e == nil {
		t.Error("area that exactly fits footprint plus margins should spawn")
	} else if e.X != 1 || e.Y != 1 {
		t.Errorf("only legal position is (1,1), got (%d,%d)", e.X, e.Y)
	}
}

func TestSpawnerDeterministicAndUnique(t *testing.T) {
	cfg := config.DefaultMinigameConfig()
	clock := sched.New(time.Unix(0, 0))
	area := NewArea(80, 24)

	run := func() []Entity {
		reg := NewRegistry(clock)
		sp := NewSpawner(cfg, rand.New(rand.NewSource(42)))
		var out []Entity
		for i := 0; i < cfg.Ceiling; i++ {
			e := sp.MaybeSpawn(reg, area, clock.Now())
			reg.Add(*e, 0)
			out = append(out, *e)
		}
		return out
	}

	a, b := run(), run()
	seen := map[EntityID]bool{}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("spawn %d differs between runs with the same seed", i)
		}
		if seen[a[i].ID] {
			t.Errorf("duplicate entity ID %s", a[i].ID)
		}
		seen[a[i].ID] = true
		if a[i].Seq != uint64(i+1) {
			t.Errorf("Seq = %d, expected %d", a[i].Seq, i+1)
		}
	}
}
