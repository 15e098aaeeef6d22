package minigame

import (
	"github.com/vovakirdan/celebration/internal/sched"
)

// Canceller cancels scheduled callbacks. *sched.Scheduler implements it.
type Canceller interface {
	Cancel(id sched.TaskID) bool
}

type liveEntity struct {
	entity Entity
	expiry sched.TaskID
}

// Registry is the live set of balloons and their pending expiry timers.
type Registry struct {
	timers Canceller
	byID   map[EntityID]*liveEntity
	order  []EntityID // Spawn order
}

// NewRegistry creates an empty registry that cancels expiries through timers.
func NewRegistry(timers Canceller) *Registry {
	return &Registry{
		timers: timers,
		byID:   make(map[EntityID]*liveEntity),
	}
}

// Add registers a live entity together with its expiry task.
// Returns false if an entity with the same ID is already live.
func (r *Registry) Add(e Entity, expiry sched.TaskID) bool {
	if _, exists := r.byID[e.ID]; exists {
		return false
	}
	r.byID[e.ID] = &liveEntity{entity: e, expiry: expiry}
	r.order = append(r.order, e.ID)
	return true
}

// RemoveByID removes an entity and cancels its pending expiry.
// Returns false if the entity is not live, which makes the click path and
// the expiry path safe to race: only the first caller wins.
func (r *Registry) RemoveByID(id EntityID) bool {
	live, ok := r.byID[id]
	if !ok {
		return false
	}

	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if live.expiry != 0 {
		r.timers.Cancel(live.expiry)
	}
	return true
}

// Count returns the number of live entities.
func (r *Registry) Count() int {
	return len(r.byID)
}

// Contains reports whether id is live.
func (r *Registry) Contains(id EntityID) bool {
	_, ok := r.byID[id]
	return ok
}

// Get returns a live entity by ID.
func (r *Registry) Get(id EntityID) (Entity, bool) {
	live, ok := r.byID[id]
	if !ok {
		return Entity{}, false
	}
	return live.entity, true
}

// Entities returns a copy of the live entities in spawn order.
func (r *Registry) Entities() []Entity {
	result := make([]Entity, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id].entity)
	}
	return result
}

// ClearAll removes every entity and cancels every pending expiry.
// Returns the number of entities removed.
func (r *Registry) ClearAll() int {
	n := len(r.byID)
	for _, live := range r.byID {
		if live.expiry != 0 {
			r.timers.Cancel(live.expiry)
		}
	}
	clear(r.byID)
	r.order = r.order[:0]
	return n
}
