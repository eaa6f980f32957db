package tui

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/arena"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/game"
)

const (
	hudRows    = 1
	barWidth   = 20
	aimLength  = 3
	minViewW   = 20
	minViewH   = 8
	titleText  = "D U C K S T O R M"
	pressStart = "Press ENTER or SPACE to start"
)

// viewport maps arena coordinates onto the boxed play field.
type viewport struct {
	field  core.Rect
	origin r2.Vec
	worldW float64
	worldH float64
}

func newViewport(s *core.Screen, bounds core.Bounds) viewport {
	w, h := bounds.Size()
	return viewport{
		field:  core.NewRect(0, hudRows, s.Width(), s.Height()-hudRows),
		origin: bounds.Min,
		worldW: w,
		worldH: h,
	}
}

// cell converts a world position to a screen cell inside the box border.
func (v viewport) cell(p r2.Vec) (int, int, bool) {
	if v.worldW <= 0 || v.worldH <= 0 {
		return 0, 0, false
	}
	innerW := v.field.W - 2
	innerH := v.field.H - 2
	x := int(math.Floor((p.X - v.origin.X) / v.worldW * float64(innerW)))
	y := int(math.Floor((p.Y - v.origin.Y) / v.worldH * float64(innerH)))
	if x < 0 || x >= innerW || y < 0 || y >= innerH {
		return 0, 0, false
	}
	return v.field.X + 1 + x, v.field.Y + 1 + y, true
}

func (v viewport) put(s *core.Screen, p r2.Vec, r rune, c core.Color) {
	if x, y, ok := v.cell(p); ok {
		s.SetColor(x, y, r, c)
	}
}

// DrawGame renders the whole session into s.
func DrawGame(s *core.Screen, g *game.Game, hud *HUD) {
	s.Clear()
	if s.Width() < minViewW || s.Height() < minViewH {
		s.DrawText(0, 0, "terminal too small", core.ColorRed)
		return
	}

	a := g.Arena()
	v := newViewport(s, a.Bounds())
	s.DrawBox(v.field, core.ColorGray)

	drawHUD(s, g, hud)
	drawWorld(s, v, a)

	switch {
	case hud.Visible(core.PanelScoreboard):
		drawScoreboard(s, hud)
	case hud.Visible(core.PanelMenu):
		drawMenu(s, g)
	}
}

func drawHUD(s *core.Screen, g *game.Game, hud *HUD) {
	maxHealth := g.Arena().Player().MaxHealth()
	filled := 0
	if maxHealth > 0 {
		filled = int(math.Round(hud.Health() / maxHealth * barWidth))
	}
	filled = core.Clamp(filled, 0, barWidth)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)

	d := g.Spawner().Difficulty()
	left := fmt.Sprintf(" SCORE %-7d BEST %-7d LVL %d", hud.Score(), g.Machine().Session().Best, d.Level)
	s.DrawText(0, 0, left, core.ColorBrightWhite)

	hpColor := core.ColorGreen
	switch {
	case filled <= barWidth/4:
		hpColor = core.ColorRed
	case filled <= barWidth/2:
		hpColor = core.ColorYellow
	}
	right := "HP [" + bar + "] "
	s.DrawText(s.Width()-len(right), 0, right, hpColor)
}

func drawWorld(s *core.Screen, v viewport, a *arena.Arena) {
	kinds := a.Kinds()
	a.EachEnemy(func(kind int, e *actor.Enemy) {
		switch e.State() {
		case actor.StateExploding:
			v.put(s, e.Pos, '*', core.ColorOrange)
		case actor.StateActive:
			arch := kinds[kind].Archetype
			v.put(s, e.Pos, arch.Glyph, arch.Color)
		}
	})

	a.EachExplosion(func(x *arena.Explosion) {
		r := 'o'
		if x.Progress() > 0.5 {
			r = '.'
		}
		c := core.ColorYellow
		if x.Blast {
			c = core.ColorBrightRed
		}
		v.put(s, x.Pos, r, c)
	})

	a.EachBullet(func(b *arena.Bullet) {
		v.put(s, b.Pos, '•', core.ColorBrightWhite)
	})

	p := a.Player()
	if p.IsAlive() {
		dir := core.FromAngle(a.Cannon().Angle)
		for i := 1; i <= aimLength; i++ {
			v.put(s, r2.Add(p.Pos, r2.Scale(float64(i)*p.Radius, dir)), '·', core.ColorGray)
		}
		v.put(s, p.Pos, 'A', core.ColorBrightCyan)
	} else {
		v.put(s, p.Pos, 'x', core.ColorRed)
	}
}

func drawMenu(s *core.Screen, g *game.Game) {
	mid := s.Height() / 2
	s.DrawTextCentered(mid-3, titleText, core.ColorBrightYellow)
	if best := g.Machine().Session().Best; best > 0 {
		s.DrawTextCentered(mid-1, fmt.Sprintf("Best score: %d", best), core.ColorWhite)
	}
	s.DrawTextCentered(mid+1, pressStart, core.ColorBrightWhite)
}

func drawScoreboard(s *core.Screen, hud *HUD) {
	score, prev, newBest := hud.Result()
	mid := s.Height() / 2
	s.DrawTextCentered(mid-3, "G A M E   O V E R", core.ColorBrightRed)
	s.DrawTextCentered(mid-1, fmt.Sprintf("Score: %d", score), core.ColorBrightWhite)
	s.DrawTextCentered(mid, fmt.Sprintf("Previous best: %d", prev), core.ColorWhite)
	if newBest {
		s.DrawTextCentered(mid+1, "NEW BEST!", core.ColorBrightYellow)
	}
	s.DrawTextCentered(mid+3, "Press ENTER to continue", core.ColorGray)
}
