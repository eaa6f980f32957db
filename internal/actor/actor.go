// Package actor implements the damageable actors of a session: enemies that
// chase the player and the player itself. Actors never allocate or free;
// SetActive(true) is the enable hook and SetActive(false) the disable hook.
package actor

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Damageable is the capability shared by every actor that can be hit.
type Damageable interface {
	TakeDamage(amount float64)
	IsAlive() bool
}

// Owner receives actor events. The session machine implements it.
type Owner interface {
	Playing() bool
	AddScore(amount int)
	DamagePlayer(amount float64)
}

// State is the lifecycle stage of an actor.
type State int

const (
	StateInactive State = iota
	StateActive
	StateExploding
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "Inactive"
	case StateActive:
		return "Active"
	case StateExploding:
		return "Exploding"
	default:
		return "Unknown"
	}
}

// Body is the kinematic and health state shared by all actors.
type Body struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Heading float64 // radians
	Radius  float64

	health    float64
	maxHealth float64
	state     State
	epoch     uint64
}

// Health returns current health.
func (b *Body) Health() float64 { return b.health }

// MaxHealth returns the health restored on activation.
func (b *Body) MaxHealth() float64 { return b.maxHealth }

// State returns the lifecycle stage.
func (b *Body) State() State { return b.state }

// Epoch counts activations. Delayed callbacks capture it and do nothing once
// it has moved on.
func (b *Body) Epoch() uint64 { return b.epoch }

// Active reports whether the body occupies its pool slot.
func (b *Body) Active() bool { return b.state != StateInactive }

// IsAlive reports health > 0 while in the active state.
func (b *Body) IsAlive() bool {
	return b.state == StateActive && b.health > 0
}

// Place moves the body and sets its heading.
func (b *Body) Place(pos r2.Vec, heading float64) {
	b.Pos = pos
	b.Heading = heading
}

// hurt subtracts amount, clamps at zero and reports whether this call
// crossed from alive to dead.
func (b *Body) hurt(amount float64) (died bool) {
	if amount <= 0 {
		return false
	}
	b.health -= amount
	if b.health <= 0 {
		b.health = 0
		return true
	}
	return false
}

func (b *Body) activate() {
	b.epoch++
	b.state = StateActive
	b.health = b.maxHealth
}

func (b *Body) deactivate() {
	b.epoch++
	b.state = StateInactive
	b.health = 0
	b.Vel = r2.Vec{}
}
