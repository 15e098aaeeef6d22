package minigame

import (
	"math/rand"
	"testing"
)

func TestScoreTrackerMessageEveryFive(t *testing.T) {
	phrases := []string{"one", "two", "three"}
	tracker := NewScoreTracker(5, phrases, rand.New(rand.NewSource(1)))
	tracker.Reset("start")

	changes := 0
	for i := 1; i <= 20; i++ {
		changed := tracker.Increment()
		if changed {
			changes++
		}
		if changed != (i%5 == 0) {
			t.Errorf("Increment() at score %d reported change=%v", i, changed)
		}
		if i < 5 && tracker.Message() != "start" {
			t.Errorf("message changed early at score %d: %q", i, tracker.Message())
		}
	}

	if changes != 4 {
		t.Errorf("expected 4 message changes in 20 points, got %d", changes)
	}
	if tracker.Value() != 20 {
		t.Errorf("Value() = %d, expected 20", tracker.Value())
	}

	found := false
	for _, p := range phrases {
		if tracker.Message() == p {
			found = true
		}
	}
	if !found {
		t.Errorf("Message() = %q, expected one of %v", tracker.Message(), phrases)
	}
}

func TestScoreTrackerReset(t *testing.T) {
	tracker := NewScoreTracker(5, []string{"x"}, rand.New(rand.NewSource(1)))
	tracker.Increment()
	tracker.Increment()

	tracker.Reset("again")
	if tracker.Value() != 0 || tracker.Message() != "again" {
		t.Errorf("Reset() left value=%d message=%q", tracker.Value(), tracker.Message())
	}

	tracker.SetMessage("kept")
	if tracker.Value() != 0 || tracker.Message() != "kept" {
		t.Error("SetMessage() must not touch the score")
	}
}

func TestScoreTrackerDrawsWithReplacement(t *testing.T) {
	tracker := NewScoreTracker(1, []string{"a", "b"}, rand.New(rand.NewSource(7)))

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		tracker.Increment()
		seen[tracker.Message()]++
	}
	if seen["a"] == 0 || seen["b"] == 0 {
		t.Errorf("expected both phrases to appear, got %v", seen)
	}
}

func TestScoreTrackerCopiesPhrases(t *testing.T) {
	phrases := []string{"a"}
	tracker := NewScoreTracker(1, phrases, rand.New(rand.NewSource(1)))
	phrases[0] = "mutated"

	tracker.Increment()
	if tracker.Message() != "a" {
		t.Errorf("tracker should own its phrase set, got %q", tracker.Message())
	}
}
