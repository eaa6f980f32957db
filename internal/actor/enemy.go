package actor

import (
	"math"
	"time"

	"github.com/vovakirdan/duckstorm/internal/core"
)

// Stats holds the tunables of one enemy kind.
type Stats struct {
	MaxHealth         float64
	Speed             float64
	DamageTaken       float64 // damage one projectile deals to this kind
	DamageGiven       float64 // damage dealt to the player on contact
	Radius            float64
	KillScore         int
	ExplosionDuration time.Duration // zero deactivates immediately on death
}

// DefaultStats returns the stock enemy tuning.
func DefaultStats() Stats {
	return Stats{
		MaxHealth:         1000,
		Speed:             2,
		DamageTaken:       500,
		DamageGiven:       100,
		Radius:            1,
		KillScore:         1000,
		ExplosionDuration: 500 * time.Millisecond,
	}
}

// Scaled returns a copy with health and kill score multiplied by s and speed
// divided by s. Radius grows with s as well.
func (s Stats) Scaled(scale float64) Stats {
	if scale <= 0 || scale == 1 {
		return s
	}
	s.MaxHealth *= scale
	s.Speed /= scale
	s.Radius *= scale
	s.KillScore = int(math.Round(float64(s.KillScore) * scale))
	return s
}

// DeathFunc observes an enemy death. killed is false for kamikaze deaths.
type DeathFunc func(e *Enemy, killed bool)

// Enemy is a pooled single-use threat.
type Enemy struct {
	Body
	Kind string

	env     *core.Env
	owner   Owner
	base    Stats
	stats   Stats
	scale   float64
	onDeath []DeathFunc
}

// NewEnemy builds an inactive enemy. Call SetActive(true) (usually through a
// pool) to bring it to life.
func NewEnemy(kind string, stats Stats, env *core.Env, owner Owner) *Enemy {
	e := &Enemy{
		Kind:  kind,
		env:   env,
		owner: owner,
		base:  stats,
		stats: stats,
		scale: 1,
	}
	e.maxHealth = stats.MaxHealth
	e.Radius = stats.Radius
	return e
}

// Stats returns the effective (possibly scaled) tuning.
func (e *Enemy) Stats() Stats { return e.stats }

// Scale returns the modifier applied at spawn, 1 when unscaled.
func (e *Enemy) Scale() float64 { return e.scale }

// OnDeath registers a death observer. Observers survive pool reuse.
func (e *Enemy) OnDeath(fn DeathFunc) {
	e.onDeath = append(e.onDeath, fn)
}

// SetActive runs the enable or disable actions. Disabling restores the
// unscaled stats.
func (e *Enemy) SetActive(active bool) {
	if active {
		e.stats = e.base
		e.scale = 1
		e.maxHealth = e.stats.MaxHealth
		e.Radius = e.stats.Radius
		e.activate()
		return
	}
	if e.state == StateInactive {
		return
	}
	e.stats = e.base
	e.scale = 1
	e.maxHealth = e.base.MaxHealth
	e.Radius = e.base.Radius
	e.deactivate()
}

// ApplyScale sets the spawn modifier. It only applies to a living enemy and
// keeps the current health ratio.
func (e *Enemy) ApplyScale(scale float64) {
	if !e.IsAlive() || scale <= 0 {
		return
	}
	ratio := e.health / e.maxHealth
	e.stats = e.base.Scaled(scale)
	e.scale = scale
	e.maxHealth = e.stats.MaxHealth
	e.health = e.maxHealth * ratio
	e.Radius = e.stats.Radius
}

// TakeDamage reduces health. Calls on an inactive, exploding or dead enemy
// are ignored. The alive to dead crossing awards the kill score once.
func (e *Enemy) TakeDamage(amount float64) {
	if !e.IsAlive() {
		return
	}
	if !e.hurt(amount) {
		e.env.Audio.PlayClip(core.ClipEnemyHit)
		return
	}
	e.env.Audio.PlayClip(core.ClipEnemyDie)
	e.owner.AddScore(e.stats.KillScore)
	e.die(true)
}

// GiveDamage hits the player on contact and kills the enemy without a
// reward. Outside play it does nothing.
func (e *Enemy) GiveDamage() {
	if !e.IsAlive() || !e.owner.Playing() {
		return
	}
	e.owner.DamagePlayer(e.stats.DamageGiven)
	e.env.Audio.PlayClip(core.ClipEnemyAttack)
	e.health = 0
	e.die(false)
}

// Kill ends the enemy immediately, as a blast does. No score is awarded
// unless award is set.
func (e *Enemy) Kill(award bool) {
	if !e.IsAlive() {
		return
	}
	if award {
		e.TakeDamage(math.MaxFloat64)
		return
	}
	e.health = 0
	e.die(false)
}

func (e *Enemy) die(killed bool) {
	for _, fn := range e.onDeath {
		fn(e, killed)
	}
	if e.state != StateActive {
		// An observer already recycled the enemy.
		return
	}

	d := e.stats.ExplosionDuration
	if d <= 0 {
		e.SetActive(false)
		return
	}
	e.state = StateExploding
	e.Vel.X, e.Vel.Y = 0, 0
	epoch := e.epoch
	e.env.Tasks.After(d, func() {
		if e.epoch != epoch || e.state != StateExploding {
			return
		}
		e.SetActive(false)
	})
}
