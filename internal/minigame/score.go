package minigame

import "math/rand"

// ScoreTracker counts popped balloons and picks encouragement messages.
type ScoreTracker struct {
	value   int
	message string
	every   int
	phrases []string
	rng     *rand.Rand
}

// NewScoreTracker creates a tracker that draws a new phrase every `every` points.
func NewScoreTracker(every int, phrases []string, rng *rand.Rand) *ScoreTracker {
	if every < 1 {
		every = 1
	}
	return &ScoreTracker{
		every:   every,
		phrases: append([]string(nil), phrases...),
		rng:     rng,
	}
}

// Reset zeroes the score and sets the message.
func (t *ScoreTracker) Reset(message string) {
	t.value = 0
	t.message = message
}

// SetMessage replaces the message without touching the score.
func (t *ScoreTracker) SetMessage(message string) {
	t.message = message
}

// Increment adds one point. When the new score is a positive multiple of the
// message interval a phrase is drawn uniformly, with replacement, and true is
// returned.
func (t *ScoreTracker) Increment() bool {
	t.value++
	if t.value%t.every != 0 || len(t.phrases) == 0 {
		return false
	}
	t.message = t.phrases[t.rng.Intn(len(t.phrases))]
	return true
}

// Value returns the current score.
func (t *ScoreTracker) Value() int {
	return t.value
}

// Message returns the last selected message.
func (t *ScoreTracker) Message() string {
	return t.message
}
