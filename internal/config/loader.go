package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileName = "duckstorm.yaml"

// Load loads the game configuration. Values missing from a file keep their
// defaults.
// Search order: customPath -> ~/.duckstorm/config.yaml -> ./configs/duckstorm.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				cfg.Source = userCfgPath
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", fileName)
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := parse(data); err == nil {
			cfg.Source = local
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Source = "embedded"
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".duckstorm", filename)
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset modifies the spawn settings based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	s := &cfg.Spawn
	switch preset {
	case DifficultyEasy:
		s.InitialMin = 3
		s.InitialMax = 5
		s.MaxStep = 2
		s.DifficultyIncreaseInterval *= 3
		s.DifficultyIncreaseInterval /= 2
	case DifficultyHard:
		s.InitialMin = 7
		s.InitialMax = 10
		s.MaxStep = 4
		s.DifficultyIncreaseInterval *= 2
		s.DifficultyIncreaseInterval /= 3
	case DifficultyFixed:
		s.DifficultyIncreaseInterval = 0
	}
}

// Validate reports configuration problems. None of them is fatal: the game
// runs with whatever part of the configuration is usable.
func Validate(cfg Config) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if cfg.Arena.Width <= 0 || cfg.Arena.Height <= 0 {
		warn("arena size %vx%v is not positive", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Player.MaxHealth <= 0 {
		warn("player max_health %v is not positive", cfg.Player.MaxHealth)
	}
	if cfg.Cannon.PoolSize <= 0 && !cfg.Cannon.Growable {
		warn("cannon pool is empty and not growable; the cannon cannot fire")
	}

	s := cfg.Spawn
	if s.InitialMin > s.InitialMax {
		warn("spawn initial_min %d exceeds initial_max %d", s.InitialMin, s.InitialMax)
	}
	if s.MinSpawnInterval < 0 {
		warn("spawn min_spawn_interval %v is negative", s.MinSpawnInterval)
	}
	if s.ScaleMax > 0 && s.ScaleMin > s.ScaleMax {
		warn("spawn scale_min %v exceeds scale_max %v", s.ScaleMin, s.ScaleMax)
	}

	if len(cfg.Enemies) == 0 {
		warn("no enemies configured; nothing will spawn")
	}
	seen := make(map[string]bool)
	for i, e := range cfg.Enemies {
		if e.Kind == "" {
			warn("enemies[%d] has no kind", i)
		}
		if seen[e.Kind] {
			warn("enemy kind %q configured twice", e.Kind)
		}
		seen[e.Kind] = true
		if e.Weight != nil && *e.Weight < 0 {
			warn("enemy %q has negative weight %v", e.Kind, *e.Weight)
		}
		if e.PoolSize <= 0 && !e.Growable {
			warn("enemy %q pool is empty and not growable", e.Kind)
		}
	}
	return warnings
}
