package session

import "github.com/vovakirdan/duckstorm/internal/core"

// Tracker holds the score and health counters and mirrors every change to
// the UI.
type Tracker struct {
	ui     core.UI
	score  int
	health float64
}

// NewTracker creates a tracker that writes to ui.
func NewTracker(ui core.UI) *Tracker {
	return &Tracker{ui: ui}
}

// Score returns the current score.
func (t *Tracker) Score() int { return t.score }

// Health returns the last reported player health.
func (t *Tracker) Health() float64 { return t.health }

// AddScore increases the score.
func (t *Tracker) AddScore(amount int) {
	t.score += amount
	t.ui.SetScore(t.score)
}

// SetHealth records the player health.
func (t *Tracker) SetHealth(health float64) {
	t.health = health
	t.ui.SetHealth(health)
}

// Reset zeroes the score and sets health.
func (t *Tracker) Reset(health float64) {
	t.score = 0
	t.health = health
	t.ui.SetScore(0)
	t.ui.SetHealth(health)
}
