// Package registry provides a global registry of enemy archetypes.
// Enemy kinds register themselves in init() functions, so the spawner and
// the CLI can discover them by name without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/core"
)

// ErrUnknownKind is returned when a kind was never registered.
var ErrUnknownKind = errors.New("registry: unknown enemy kind")

// Archetype describes one enemy kind.
type Archetype struct {
	// ID is the unique kind name used in configuration (e.g., "duck").
	ID string

	// Title is a human-readable name for listings.
	Title string

	// Glyph and Color are how the terminal renderer draws the kind.
	Glyph rune
	Color core.Color

	// Weight is the default spawn weight when configuration gives none.
	Weight float64

	Stats actor.Stats
}

// Factory returns a fresh archetype value.
type Factory func() Archetype

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an enemy kind to the registry.
// Panics if the kind is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: enemy kind %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title
}

// Info is the listing entry of a registered kind.
type Info struct {
	ID    string
	Title string
}

// List returns all registered kinds sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the archetype registered under id.
func Lookup(id string) (Archetype, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Archetype{}, fmt.Errorf("%w: %q", ErrUnknownKind, id)
	}
	a := f()
	a.ID = id
	return a, nil
}

// Exists checks if a kind with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
