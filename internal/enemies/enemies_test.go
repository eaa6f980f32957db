package enemies

import (
	"testing"

	"github.com/vovakirdan/duckstorm/internal/registry"
)

func TestBuiltinKindsRegistered(t *testing.T) {
	for _, id := range []string{"duck", "goose", "swan"} {
		a, err := registry.Lookup(id)
		if err != nil {
			t.Errorf("Lookup(%q) failed: %v", id, err)
			continue
		}
		if a.Stats.MaxHealth <= 0 || a.Stats.KillScore <= 0 {
			t.Errorf("%s has unusable stats %+v", id, a.Stats)
		}
		if a.Glyph == 0 {
			t.Errorf("%s has no glyph", id)
		}
	}
}
