package enemies

import (
	"time"

	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/registry"
)

// Geese are slower and hit harder.
func init() {
	registry.Register("goose", func() registry.Archetype {
		return registry.Archetype{
			Title:  "Goose",
			Glyph:  'G',
			Color:  core.ColorGray,
			Weight: 0.3,
			Stats: actor.Stats{
				MaxHealth:         1500,
				Speed:             1.5,
				DamageTaken:       500,
				DamageGiven:       150,
				Radius:            1.2,
				KillScore:         1500,
				ExplosionDuration: 600 * time.Millisecond,
			},
		}
	})
}
