package tui

import "github.com/vovakirdan/duckstorm/internal/core"

// HUD is the terminal implementation of core.UI. The game writes into it
// during Step and the view reads it back when drawing.
type HUD struct {
	score  int
	health float64
	panels map[core.Panel]bool

	final   int
	prev    int
	newBest bool
}

var _ core.UI = (*HUD)(nil)

// NewHUD creates a HUD with every panel hidden.
func NewHUD() *HUD {
	return &HUD{panels: make(map[core.Panel]bool)}
}

func (h *HUD) SetScore(score int)        { h.score = score }
func (h *HUD) SetHealth(health float64)  { h.health = health }
func (h *HUD) ShowPanel(p core.Panel)    { h.panels[p] = true }
func (h *HUD) HidePanel(p core.Panel)    { h.panels[p] = false }
func (h *HUD) Visible(p core.Panel) bool { return h.panels[p] }

// ShowScoreboard records the round result and shows the scoreboard panel.
func (h *HUD) ShowScoreboard(score, previousBest int, newBest bool) {
	h.final = score
	h.prev = previousBest
	h.newBest = newBest
	h.panels[core.PanelScoreboard] = true
}

// Score returns the last score pushed by the game.
func (h *HUD) Score() int { return h.score }

// Health returns the last health pushed by the game.
func (h *HUD) Health() float64 { return h.health }

// Result returns what the last scoreboard showed.
func (h *HUD) Result() (score, previousBest int, newBest bool) {
	return h.final, h.prev, h.newBest
}
