package arena

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Bullet is a pooled cannon projectile.
type Bullet struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64
	Age    time.Duration

	active bool
}

func (b *Bullet) Active() bool { return b.active }

func (b *Bullet) SetActive(active bool) {
	b.active = active
	b.Age = 0
	if !active {
		b.Vel = r2.Vec{}
	}
}

// Explosion is a pooled visual effect. Blast explosions also kill nearby
// enemies after a delay.
type Explosion struct {
	Pos      r2.Vec
	Radius   float64
	Age      time.Duration
	Duration time.Duration
	Blast    bool

	active bool
}

func (e *Explosion) Active() bool { return e.active }

func (e *Explosion) SetActive(active bool) {
	e.active = active
	e.Age = 0
}

// Progress returns how far the effect is through its duration, 0..1.
func (e *Explosion) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	p := float64(e.Age) / float64(e.Duration)
	if p > 1 {
		return 1
	}
	return p
}
