// Package minigame implements the balloon-pop mini-game of the celebration
// page: a session state machine that spawns short-lived balloons on a
// repeating tick, lets the player pop them, and stops on a win or reset.
//
// The package contains no presentation code. All mutation happens inside
// callbacks of a single sched.Scheduler, so the game needs no locks; the
// owner of a Session must serialize its own calls.
package minigame

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/celebration/internal/core"
)

// EntityID is the opaque identity of a balloon.
type EntityID uuid.UUID

// String returns the canonical UUID form.
func (id EntityID) String() string {
	return uuid.UUID(id).String()
}

// ParseEntityID parses the canonical form produced by String.
func ParseEntityID(s string) (EntityID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return EntityID{}, err
	}
	return EntityID(u), nil
}

// Entity is a single clickable balloon.
type Entity struct {
	ID        EntityID
	Seq       uint64 // Spawn order within the session, starting at 1
	X, Y      int    // Top-left corner in play-area cells
	W, H      int    // Footprint
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Rect returns the footprint of the entity.
func (e Entity) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, e.W, e.H)
}

// Lifetime returns how long the entity lives if nobody pops it.
func (e Entity) Lifetime() time.Duration {
	return e.ExpiresAt.Sub(e.CreatedAt)
}

// PlayArea reports the current dimensions of the surface balloons appear on.
type PlayArea interface {
	Size() (width, height int)
}

// Area is a resizable PlayArea.
type Area struct {
	width  int
	height int
}

// NewArea creates a play area with the given dimensions.
func NewArea(width, height int) *Area {
	return &Area{width: width, height: height}
}

// Size implements PlayArea.
func (a *Area) Size() (int, int) {
	return a.width, a.height
}

// Resize changes the dimensions used by future spawns.
// Live balloons keep their positions.
func (a *Area) Resize(width, height int) {
	a.width = width
	a.height = height
}
