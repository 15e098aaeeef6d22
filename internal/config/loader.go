package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MinigameFile is the file name looked up in the config directories.
const MinigameFile = "minigame.yaml"

// LoadMinigame loads the mini-game configuration.
// Search order: customPath -> ~/.celebration/configs/minigame.yaml -> ./configs/minigame.yaml -> embedded default
// Files found on the search path are layered over the defaults, so a partial
// file only needs the keys it changes.
func LoadMinigame(customPath string) (MinigameConfig, error) {
	cfg := DefaultMinigameConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath(MinigameFile), filepath.Join("configs", MinigameFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	var embedded MinigameConfig
	if err := yaml.Unmarshal(defaultMinigameYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultMinigameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (MinigameConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MinigameConfig{}, false
	}
	cfg := DefaultMinigameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MinigameConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return MinigameConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".celebration", "configs", filename)
}

// Marshal renders a configuration as YAML.
func Marshal(cfg MinigameConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
