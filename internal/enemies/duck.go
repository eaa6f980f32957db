// Package enemies registers the built-in enemy kinds. Import it for side
// effects wherever enemies are spawned.
package enemies

import (
	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/registry"
)

func init() {
	registry.Register("duck", func() registry.Archetype {
		return registry.Archetype{
			Title:  "Duck",
			Glyph:  'D',
			Color:  core.ColorYellow,
			Weight: 0.7,
			Stats:  actor.DefaultStats(),
		}
	})
}
