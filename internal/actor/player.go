package actor

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/duckstorm/internal/core"
)

// Player is the defended cannon. It shares the enemy health contract but is
// never pooled.
type Player struct {
	Body

	env     *core.Env
	home    r2.Vec
	onDeath []func()
}

// NewPlayer creates a living player at home.
func NewPlayer(env *core.Env, home r2.Vec, maxHealth, radius float64) *Player {
	p := &Player{env: env, home: home}
	p.maxHealth = maxHealth
	p.Radius = radius
	p.Pos = home
	p.activate()
	return p
}

// OnDeath registers a callback run once per life when health reaches zero.
func (p *Player) OnDeath(fn func()) {
	p.onDeath = append(p.onDeath, fn)
}

// TakeDamage reduces health. Damage after death is ignored.
func (p *Player) TakeDamage(amount float64) {
	if !p.IsAlive() {
		return
	}
	died := p.hurt(amount)
	p.env.Audio.PlayClip(core.ClipPlayerHit)
	if !died {
		return
	}
	p.state = StateInactive
	for _, fn := range p.onDeath {
		fn()
	}
}

// Respawn restores full health at the home position.
func (p *Player) Respawn() {
	p.Pos = p.home
	p.Vel = r2.Vec{}
	p.activate()
}
