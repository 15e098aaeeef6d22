// Package config provides YAML-based configuration loading for the
// celebration mini-game, with embedded defaults and JSON Schema export.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned (wrapped) when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// MinigameConfig contains all tunables for the balloon mini-game.
type MinigameConfig struct {
	TickMS       int            `yaml:"tick_ms" json:"tick_ms" jsonschema:"minimum=1,description=Interval between spawn ticks in milliseconds"`
	FrameRate    int            `yaml:"frame_rate" json:"frame_rate" jsonschema:"minimum=1,description=UI refresh and clock advance rate per second"`
	Ceiling      int            `yaml:"ceiling" json:"ceiling" jsonschema:"minimum=1,description=Maximum number of live balloons"`
	WinScore     int            `yaml:"win_score" json:"win_score" jsonschema:"minimum=1,description=Score that ends the run with a win"`
	MessageEvery int            `yaml:"message_every" json:"message_every" jsonschema:"minimum=1,description=A new encouragement is drawn every N points"`
	Lifetime     LifetimeConfig `yaml:"lifetime" json:"lifetime"`
	Entity       EntityConfig   `yaml:"entity" json:"entity"`
	Messages     MessagesConfig `yaml:"messages" json:"messages"`
}

// LifetimeConfig bounds how long a balloon stays up before it drifts away.
type LifetimeConfig struct {
	MinMS int `yaml:"min_ms" json:"min_ms" jsonschema:"minimum=1"`
	MaxMS int `yaml:"max_ms" json:"max_ms" jsonschema:"minimum=1"`
}

// EntityConfig describes the footprint of a balloon in play-area cells.
type EntityConfig struct {
	Width  int `yaml:"width" json:"width" jsonschema:"minimum=1"`
	Height int `yaml:"height" json:"height" jsonschema:"minimum=1"`
	Margin int `yaml:"margin" json:"margin" jsonschema:"minimum=0,description=Cells kept clear on every edge of the play area"`
}

// MessagesConfig holds the fixed phrases shown to the player.
type MessagesConfig struct {
	Start          string   `yaml:"start" json:"start"`
	Reset          string   `yaml:"reset" json:"reset"`
	Win            string   `yaml:"win" json:"win"`
	Encouragements []string `yaml:"encouragements" json:"encouragements" jsonschema:"minItems=1"`
}

// TickInterval returns the spawn tick interval.
func (c MinigameConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// FrameInterval returns the UI refresh interval.
func (c MinigameConfig) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FrameRate)
}

// MinLifetime returns the shortest balloon lifetime.
func (c MinigameConfig) MinLifetime() time.Duration {
	return time.Duration(c.Lifetime.MinMS) * time.Millisecond
}

// MaxLifetime returns the longest balloon lifetime.
func (c MinigameConfig) MaxLifetime() time.Duration {
	return time.Duration(c.Lifetime.MaxMS) * time.Millisecond
}

// Validate checks that the configuration describes a playable game.
func (c MinigameConfig) Validate() error {
	switch {
	case c.TickMS <= 0:
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalid, c.TickMS)
	case c.FrameRate <= 0:
		return fmt.Errorf("%w: frame_rate must be positive, got %d", ErrInvalid, c.FrameRate)
	case c.Ceiling < 1:
		return fmt.Errorf("%w: ceiling must be at least 1, got %d", ErrInvalid, c.Ceiling)
	case c.WinScore < 1:
		return fmt.Errorf("%w: win_score must be at least 1, got %d", ErrInvalid, c.WinScore)
	case c.MessageEvery < 1:
		return fmt.Errorf("%w: message_every must be at least 1, got %d", ErrInvalid, c.MessageEvery)
	case c.Lifetime.MinMS <= 0:
		return fmt.Errorf("%w: lifetime.min_ms must be positive, got %d", ErrInvalid, c.Lifetime.MinMS)
	case c.Lifetime.MinMS > c.Lifetime.MaxMS:
		return fmt.Errorf("%w: lifetime.min_ms (%d) exceeds lifetime.max_ms (%d)", ErrInvalid, c.Lifetime.MinMS, c.Lifetime.MaxMS)
	case c.Entity.Width < 1 || c.Entity.Height < 1:
		return fmt.Errorf("%w: entity footprint must be at least 1x1, got %dx%d", ErrInvalid, c.Entity.Width, c.Entity.Height)
	case c.Entity.Margin < 0:
		return fmt.Errorf("%w: entity.margin must not be negative, got %d", ErrInvalid, c.Entity.Margin)
	case len(c.Messages.Encouragements) == 0:
		return fmt.Errorf("%w: messages.encouragements must not be empty", ErrInvalid)
	}
	return nil
}
