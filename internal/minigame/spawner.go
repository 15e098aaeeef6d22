package minigame

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/celebration/internal/config"
)

// Spawner decides whether a tick produces a new balloon and where it goes.
type Spawner struct {
	ceiling int
	minLife time.Duration
	maxLife time.Duration
	width   int
	height  int
	margin  int
	rng     *rand.Rand
	seq     uint64
}

// NewSpawner creates a spawner from the mini-game configuration.
func NewSpawner(cfg config.MinigameConfig, rng *rand.Rand) *Spawner {
	return &Spawner{
		ceiling: cfg.Ceiling,
		minLife: cfg.MinLifetime(),
		maxLife: cfg.MaxLifetime(),
		width:   cfg.Entity.Width,
		height:  cfg.Entity.Height,
		margin:  cfg.Entity.Margin,
		rng:     rng,
	}
}

// MaybeSpawn creates an entity unless the registry is at the ceiling or the
// play area is too small to hold a balloon inside its margins.
// A nil result is normal backpressure, not an error.
// The caller is responsible for registering the entity and its expiry.
func (s *Spawner) MaybeSpawn(reg *Registry, area PlayArea, now time.Time) *Entity {
	if reg.Count() >= s.ceiling {
		return nil
	}

	areaW, areaH := area.Size()
	maxX := areaW - s.margin - s.width
	maxY := areaH - s.margin - s.height
	if maxX < s.margin || maxY < s.margin {
		return nil
	}

	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		id = uuid.New()
	}

	s.seq++
	return &Entity{
		ID:        EntityID(id),
		Seq:       s.seq,
		X:         s.margin + s.rng.Intn(maxX-s.margin+1),
		Y:         s.margin + s.rng.Intn(maxY-s.margin+1),
		W:         s.width,
		H:         s.height,
		CreatedAt: now,
		ExpiresAt: now.Add(s.lifetime()),
	}
}

// lifetime draws a lifetime uniformly from [minLife, maxLife] at millisecond resolution.
func (s *Spawner) lifetime() time.Duration {
	spanMS := (s.maxLife - s.minLife).Milliseconds()
	if spanMS <= 0 {
		return s.minLife
	}
	return s.minLife + time.Duration(s.rng.Int63n(spanMS+1))*time.Millisecond
}
