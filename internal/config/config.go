// Package config provides YAML-based configuration loading and difficulty
// presets for duckstorm.
package config

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Config contains all tunables of one game.
type Config struct {
	Arena   ArenaConfig   `yaml:"arena"`
	Player  PlayerConfig  `yaml:"player"`
	Cannon  CannonConfig  `yaml:"cannon"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Enemies []EnemyConfig `yaml:"enemies"`
	Effects EffectsConfig `yaml:"effects"`

	// Source records where the configuration was loaded from.
	Source string `yaml:"-"`
}

// Vec2 is a point in arena units.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec converts to a gonum vector.
func (v Vec2) Vec() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

// ArenaConfig defines the playfield size in arena units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the defended cannon.
type PlayerConfig struct {
	Position  Vec2    `yaml:"position"`
	MaxHealth float64 `yaml:"max_health"`
	Radius    float64 `yaml:"radius"`
}

// CannonConfig defines the machine gun and its bullet pool.
type CannonConfig struct {
	BulletSpeed    float64       `yaml:"bullet_speed"`
	BulletRadius   float64       `yaml:"bullet_radius"`
	BulletLifetime time.Duration `yaml:"bullet_lifetime"`
	FireCooldown   time.Duration `yaml:"fire_cooldown"`
	AimSpeed       float64       `yaml:"aim_speed"` // radians per second
	PoolSize       int           `yaml:"pool_size"`
	Growable       bool          `yaml:"growable"`
}

// SpawnConfig defines the enemy scheduler.
type SpawnConfig struct {
	Center                     Vec2          `yaml:"center"`
	Radius                     float64       `yaml:"radius"`
	MinSpawnInterval           time.Duration `yaml:"min_spawn_interval"`
	DifficultyIncreaseInterval time.Duration `yaml:"difficulty_increase_interval"`
	MinCheckInterval           time.Duration `yaml:"min_check_interval"`
	InitialMin                 int           `yaml:"initial_min"`
	InitialMax                 int           `yaml:"initial_max"`
	MinStep                    int           `yaml:"min_step"`
	MaxStep                    int           `yaml:"max_step"`
	ScaleMin                   float64       `yaml:"scale_min"`
	ScaleMax                   float64       `yaml:"scale_max"`
}

// EnemyConfig binds a registered enemy kind to a weighted pool.
type EnemyConfig struct {
	Kind     string      `yaml:"kind"`
	Weight   *float64    `yaml:"weight"` // nil uses the kind's default
	PoolSize int         `yaml:"pool_size"`
	Growable bool        `yaml:"growable"`
	Prewarm  bool        `yaml:"prewarm"`
	Stats    *EnemyStats `yaml:"stats"`
}

// EnemyStats overrides archetype stats. Zero fields keep the archetype value.
type EnemyStats struct {
	MaxHealth         float64       `yaml:"max_health"`
	Speed             float64       `yaml:"speed"`
	DamageTaken       float64       `yaml:"damage_taken"`
	DamageGiven       float64       `yaml:"damage_given"`
	Radius            float64       `yaml:"radius"`
	KillScore         int           `yaml:"kill_score"`
	ExplosionDuration time.Duration `yaml:"explosion_duration"`
}

// EffectsConfig defines impact explosions.
type EffectsConfig struct {
	ExplosionDuration time.Duration `yaml:"explosion_duration"`
	BlastRadius       float64       `yaml:"blast_radius"`
	BlastDelay        time.Duration `yaml:"blast_delay"`
	PoolSize          int           `yaml:"pool_size"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables escalation.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
