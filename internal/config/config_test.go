package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Source != "embedded" {
		t.Errorf("Source = %q, expected embedded", cfg.Source)
	}

	def := Default()
	if cfg.Spawn != def.Spawn {
		t.Errorf("embedded spawn = %+v, expected %+v", cfg.Spawn, def.Spawn)
	}
	if cfg.Cannon != def.Cannon {
		t.Errorf("embedded cannon = %+v, expected %+v", cfg.Cannon, def.Cannon)
	}
	if len(cfg.Enemies) != len(def.Enemies) {
		t.Errorf("len(Enemies) = %d, expected %d", len(cfg.Enemies), len(def.Enemies))
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
spawn:
  initial_max: 12
  difficulty_increase_interval: 10s
enemies:
  - kind: swan
    weight: 2
    pool_size: 4
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Spawn.InitialMax != 12 {
		t.Errorf("InitialMax = %d, expected 12", cfg.Spawn.InitialMax)
	}
	if cfg.Spawn.DifficultyIncreaseInterval != 10*time.Second {
		t.Errorf("DifficultyIncreaseInterval = %v, expected 10s", cfg.Spawn.DifficultyIncreaseInterval)
	}
	if cfg.Spawn.InitialMin != 5 {
		t.Errorf("InitialMin = %d, expected default 5", cfg.Spawn.InitialMin)
	}
	if len(cfg.Enemies) != 1 || cfg.Enemies[0].Kind != "swan" {
		t.Fatalf("Enemies = %+v, expected only swan", cfg.Enemies)
	}
	if w := cfg.Enemies[0].Weight; w == nil || *w != 2 {
		t.Errorf("swan weight = %v, expected 2", w)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, expected %q", cfg.Source, path)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("spawn: [not, a, map"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML succeeded")
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	os.MkdirAll("configs", 0o755)
	os.WriteFile(filepath.Join("configs", "duckstorm.yaml"), []byte("arena:\n  width: 120\n"), 0o644)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Arena.Width != 120 || cfg.Arena.Height != 40 {
		t.Errorf("Arena = %+v, expected 120x40", cfg.Arena)
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"easy", "Normal", " hard ", "fixed", ""} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset accepted an unknown preset")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Spawn.DifficultyIncreaseInterval != 0 {
		t.Errorf("fixed interval = %v, expected 0", cfg.Spawn.DifficultyIncreaseInterval)
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Spawn.InitialMax != 10 || cfg.Spawn.DifficultyIncreaseInterval != 20*time.Second {
		t.Errorf("hard spawn = max %d interval %v, expected 10 and 20s",
			cfg.Spawn.InitialMax, cfg.Spawn.DifficultyIncreaseInterval)
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyEasy)
	if cfg.Spawn.InitialMax != 5 || cfg.Spawn.DifficultyIncreaseInterval != 45*time.Second {
		t.Errorf("easy spawn = max %d interval %v, expected 5 and 45s",
			cfg.Spawn.InitialMax, cfg.Spawn.DifficultyIncreaseInterval)
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyNormal)
	if cfg.Spawn != Default().Spawn {
		t.Error("normal preset changed the spawn settings")
	}
}

func TestValidate(t *testing.T) {
	if w := Validate(Default()); len(w) != 0 {
		t.Errorf("Validate(Default()) = %v, expected no warnings", w)
	}

	cfg := Default()
	neg := -1.0
	cfg.Spawn.InitialMin = 9
	cfg.Enemies = append(cfg.Enemies, EnemyConfig{Kind: "duck", Weight: &neg})
	warnings := Validate(cfg)

	joined := strings.Join(warnings, "\n")
	for _, want := range []string{"initial_min", "configured twice", "negative weight", "not growable"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %q:\n%s", want, joined)
		}
	}

	cfg.Enemies = nil
	if !strings.Contains(strings.Join(Validate(cfg), "\n"), "no enemies") {
		t.Error("empty enemy list not reported")
	}
}
