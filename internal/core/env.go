package core

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckstorm/internal/tasks"
)

// Env is the per-session context handed to every component constructor.
// It replaces process-wide managers: two games built from two Envs share
// nothing.
type Env struct {
	Tasks *tasks.Scheduler
	Audio Audio
	UI    UI
	Log   *log.Logger
	Rand  *rand.Rand
}

// NewEnv creates an Env with a fresh task scheduler, silent collaborators and
// a seeded RNG. A nil logger discards all output.
func NewEnv(seed int64, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Env{
		Tasks: tasks.New(),
		Audio: NopAudio{},
		UI:    NopUI{},
		Log:   logger,
		Rand:  rand.New(rand.NewSource(seed)),
	}
}

// Now returns the current virtual time of the session.
func (e *Env) Now() time.Duration {
	return e.Tasks.Now()
}

// RuntimeConfig contains configuration passed to the platform layer at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the simulated time covered by one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
