package minigame

import "time"

// EntityView is the read-only projection of a live balloon.
type EntityView struct {
	ID        EntityID
	Seq       uint64
	X, Y      int
	W, H      int
	ExpiresIn time.Duration
}

// Snapshot is a consistent read-only view of a session, taken between
// scheduler callbacks.
type Snapshot struct {
	SessionID string
	State     State
	Disabled  bool
	Score     int
	Message   string
	Popped    int
	Missed    int
	Entities  []EntityView // Spawn order
	Version   uint64
	At        time.Time
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	now := s.clock.Now()
	live := s.registry.Entities()

	views := make([]EntityView, 0, len(live))
	for _, e := range live {
		views = append(views, EntityView{
			ID:        e.ID,
			Seq:       e.Seq,
			X:         e.X,
			Y:         e.Y,
			W:         e.W,
			H:         e.H,
			ExpiresIn: e.ExpiresAt.Sub(now),
		})
	}

	return Snapshot{
		SessionID: s.id,
		State:     s.state,
		Disabled:  s.disabled,
		Score:     s.score.Value(),
		Message:   s.score.Message(),
		Popped:    s.popped,
		Missed:    s.missed,
		Entities:  views,
		Version:   s.version,
		At:        now,
	}
}

// EntityAt returns the balloon covering play-area cell (x, y). When balloons
// overlap the most recently spawned one is on top.
func (snap Snapshot) EntityAt(x, y int) (EntityView, bool) {
	for i := len(snap.Entities) - 1; i >= 0; i-- {
		e := snap.Entities[i]
		if x >= e.X && x < e.X+e.W && y >= e.Y && y < e.Y+e.H {
			return e, true
		}
	}
	return EntityView{}, false
}

// Nth returns the n-th live balloon (1-based) in spawn order.
func (snap Snapshot) Nth(n int) (EntityView, bool) {
	if n < 1 || n > len(snap.Entities) {
		return EntityView{}, false
	}
	return snap.Entities[n-1], true
}
