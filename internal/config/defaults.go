package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/duckstorm.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration used when no YAML is usable.
func Default() Config {
	return Config{
		Arena: ArenaConfig{Width: 80, Height: 40},
		Player: PlayerConfig{
			Position:  Vec2{X: 40, Y: 38},
			MaxHealth: 1000,
			Radius:    1.5,
		},
		Cannon: CannonConfig{
			BulletSpeed:    40,
			BulletRadius:   0.5,
			BulletLifetime: 2 * time.Second,
			FireCooldown:   150 * time.Millisecond,
			AimSpeed:       2.5,
			PoolSize:       32,
			Growable:       false,
		},
		Spawn: SpawnConfig{
			Center:                     Vec2{X: 40, Y: 0},
			Radius:                     20,
			MinSpawnInterval:           300 * time.Millisecond,
			DifficultyIncreaseInterval: 30 * time.Second,
			MinCheckInterval:           3 * time.Second,
			InitialMin:                 5,
			InitialMax:                 7,
			MinStep:                    1,
			MaxStep:                    3,
			ScaleMin:                   0.5,
			ScaleMax:                   3,
		},
		Enemies: []EnemyConfig{
			{Kind: "duck", PoolSize: 16, Growable: true, Prewarm: true},
			{Kind: "goose", PoolSize: 8, Growable: true},
		},
		Effects: EffectsConfig{
			ExplosionDuration: 500 * time.Millisecond,
			BlastRadius:       3,
			BlastDelay:        500 * time.Millisecond,
			PoolSize:          16,
		},
		Source: "builtin",
	}
}
