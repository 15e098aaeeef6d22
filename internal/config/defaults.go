package config

import (
	_ "embed"
)

//go:embed defaults/minigame.yaml
var defaultMinigameYAML []byte

// DefaultMinigameConfig returns the built-in mini-game configuration.
// Used when neither a config file nor the embedded YAML can be read.
func DefaultMinigameConfig() MinigameConfig {
	return MinigameConfig{
		TickMS:       650,
		FrameRate:    30,
		Ceiling:      8,
		WinScore:     30,
		MessageEvery: 5,
		Lifetime: LifetimeConfig{
			MinMS: 7000,
			MaxMS: 13000,
		},
		Entity: EntityConfig{
			Width:  4,
			Height: 2,
			Margin: 1,
		},
		Messages: MessagesConfig{
			Start: "Pop the balloons before they float away!",
			Reset: "Game reset. Press start to play again.",
			Win:   "You popped them all! Happy birthday!",
			Encouragements: []string{
				"Nice popping!",
				"You're on fire!",
				"Keep going, birthday star!",
				"Pop pop hooray!",
				"Balloon master!",
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMinigameYAML
}
