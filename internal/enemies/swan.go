package enemies

import (
	"time"

	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/registry"
)

func init() {
	registry.Register("swan", func() registry.Archetype {
		return registry.Archetype{
			Title:  "Swan",
			Glyph:  'S',
			Color:  core.ColorBrightWhite,
			Weight: 0,
			Stats: actor.Stats{
				MaxHealth:         2500,
				Speed:             3,
				DamageTaken:       500,
				DamageGiven:       250,
				Radius:            1.5,
				KillScore:         4000,
				ExplosionDuration: 800 * time.Millisecond,
			},
		}
	})
}
