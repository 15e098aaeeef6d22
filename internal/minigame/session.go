package minigame

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/celebration/internal/config"
	"github.com/vovakirdan/celebration/internal/diag"
	"github.com/vovakirdan/celebration/internal/sched"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

// String returns the lowercase state label.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options tune a session beyond its game configuration.
type Options struct {
	// ID identifies the session in diagnostics. A random UUID when empty.
	ID string

	// Seed drives spawn positions, lifetimes and message picks.
	Seed int64

	// Recorder receives lifecycle events. diag.Discard when nil.
	Recorder diag.Recorder
}

// Session is the mini-game controller. It owns the registry, the score
// tracker and the repeating spawn tick, and is the only thing that mutates
// them.
type Session struct {
	id       string
	cfg      config.MinigameConfig
	clock    *sched.Scheduler
	area     PlayArea
	recorder diag.Recorder

	registry *Registry
	spawner  *Spawner
	score    *ScoreTracker

	state    State
	tick     sched.TaskID
	disabled bool
	popped   int
	missed   int
	version  uint64
}

// NewSession creates an Idle session driven by clock.
//
// A nil area or an invalid cfg disables the session: every command becomes
// a no-op and a diag.KindDisabled event is recorded. The page keeps working
// without the mini-game.
func NewSession(cfg config.MinigameConfig, clock *sched.Scheduler, area PlayArea, opts Options) *Session {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = diag.Discard
	}

	cfgErr := cfg.Validate()

	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Session{
		id:       id,
		cfg:      cfg,
		clock:    clock,
		area:     area,
		recorder: recorder,
		registry: NewRegistry(clock),
		spawner:  NewSpawner(cfg, rng),
		score:    NewScoreTracker(cfg.MessageEvery, cfg.Messages.Encouragements, rng),
		state:    StateIdle,
	}

	switch {
	case cfgErr != nil:
		s.disabled = true
		s.record(diag.KindDisabled, cfgErr.Error())
	case area == nil:
		s.disabled = true
		s.record(diag.KindDisabled, "no play area available")
	}

	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Disabled reports whether the session was constructed without a play area.
func (s *Session) Disabled() bool {
	return s.disabled
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score.Value()
}

// Message returns the current player-facing message.
func (s *Session) Message() string {
	return s.score.Message()
}

// LiveCount returns the number of balloons currently up.
func (s *Session) LiveCount() int {
	return s.registry.Count()
}

// Version increases on every observable change. Transports compare it to
// decide whether a new snapshot needs to be pushed.
func (s *Session) Version() uint64 {
	return s.version
}

// Start begins a run from Idle or Stopped. It is a no-op while Running,
// which keeps a second tick from ever being scheduled.
// Returns true if a new run began.
func (s *Session) Start() bool {
	if s.disabled || s.state == StateRunning {
		return false
	}

	s.registry.ClearAll()
	s.score.Reset(s.cfg.Messages.Start)
	s.popped = 0
	s.missed = 0
	s.state = StateRunning
	s.tick = s.clock.Every(s.cfg.TickInterval(), s.onTick)
	s.version++

	s.record(diag.KindStarted, "")
	return true
}

// Reset force-stops the session from any state: the tick and every expiry
// are cancelled, the registry is emptied and the score returns to zero.
func (s *Session) Reset() {
	if s.disabled {
		return
	}

	s.stop()
	s.score.Reset(s.cfg.Messages.Reset)
	s.state = StateStopped
	s.version++

	s.record(diag.KindReset, "")
}

// Click attempts to pop a live balloon. Unknown or already removed IDs, and
// clicks outside a run, are ignored.
// Returns true if the balloon was popped by this call.
func (s *Session) Click(id EntityID) bool {
	if s.disabled || s.state != StateRunning {
		return false
	}
	if !s.registry.RemoveByID(id) {
		return false
	}

	s.popped++
	s.score.Increment()
	s.version++

	if s.score.Value() >= s.cfg.WinScore {
		s.win()
	}
	return true
}

// win ends the run keeping the final score on display.
func (s *Session) win() {
	s.stop()
	s.score.SetMessage(s.cfg.Messages.Win)
	s.state = StateStopped
	s.version++

	s.record(diag.KindWon, "")
}

// stop cancels the tick, then every expiry, then empties the registry.
// Callers finish the transition before returning control to the scheduler,
// so no observer sees a partial clear.
func (s *Session) stop() {
	if s.tick != 0 {
		s.clock.Cancel(s.tick)
		s.tick = 0
	}
	s.registry.ClearAll()
}

// onTick is the sole production point for balloons.
func (s *Session) onTick(now time.Time) {
	if s.state != StateRunning {
		return
	}

	e := s.spawner.MaybeSpawn(s.registry, s.area, now)
	if e == nil {
		return
	}

	id := e.ID
	expiry := s.clock.After(e.Lifetime(), func(time.Time) {
		s.onExpire(id)
	})
	if !s.registry.Add(*e, expiry) {
		s.clock.Cancel(expiry)
		return
	}
	s.version++
}

// onExpire removes a balloon that nobody popped in time.
func (s *Session) onExpire(id EntityID) {
	if s.registry.RemoveByID(id) {
		s.missed++
		s.version++
	}
}

func (s *Session) record(kind diag.Kind, detail string) {
	s.recorder.Record(diag.Event{
		SessionID: s.id,
		Kind:      kind,
		State:     s.state.String(),
		Message:   s.score.Message(),
		Detail:    detail,
		At:        s.clock.Now(),
	})
}
