package arena

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/pool"
)

// Aim limits: the cannon sweeps the upper half plane.
const (
	minAim = -math.Pi
	maxAim = 0
)

// Cannon is the player's machine gun.
type Cannon struct {
	Angle float64 // radians, -Pi/2 points straight up

	env     *core.Env
	cfg     config.CannonConfig
	origin  func() r2.Vec
	muzzle  float64
	bullets *pool.Pool[*Bullet]
	ready   time.Duration
	shots   int
}

func newCannon(env *core.Env, cfg config.CannonConfig, origin func() r2.Vec, muzzle float64) *Cannon {
	c := &Cannon{
		env:    env,
		cfg:    cfg,
		origin: origin,
		muzzle: muzzle,
		Angle:  -math.Pi / 2,
	}
	c.bullets = pool.New("bullets", func() *Bullet {
		return &Bullet{Radius: cfg.BulletRadius}
	}, pool.Options{Size: cfg.PoolSize, Growable: cfg.Growable, Prewarm: true})
	return c
}

// Turn rotates the aim by dir (-1 left, +1 right) at AimSpeed for dt.
func (c *Cannon) Turn(dir float64, dt time.Duration) {
	c.Angle = core.ClampF(c.Angle+dir*c.cfg.AimSpeed*dt.Seconds(), minAim, maxAim)
}

// AimAt rotates toward target, limited by AimSpeed for dt. It reports
// whether the aim is on target afterwards.
func (c *Cannon) AimAt(target r2.Vec, dt time.Duration) bool {
	want := core.ClampF(core.AngleTo(c.origin(), target), minAim, maxAim)
	step := c.cfg.AimSpeed * dt.Seconds()
	diff := want - c.Angle
	if math.Abs(diff) <= step {
		c.Angle = want
		return true
	}
	if diff > 0 {
		c.Angle += step
	} else {
		c.Angle -= step
	}
	return false
}

// Fire launches a bullet along the aim. It fails during the cooldown and
// when the bullet pool is exhausted.
func (c *Cannon) Fire() bool {
	now := c.env.Now()
	if now < c.ready {
		return false
	}
	b, ok := c.bullets.Acquire()
	if !ok {
		return false
	}
	dir := core.FromAngle(c.Angle)
	b.Pos = r2.Add(c.origin(), r2.Scale(c.muzzle, dir))
	b.Vel = r2.Scale(c.cfg.BulletSpeed, dir)
	c.ready = now + c.cfg.FireCooldown
	c.shots++
	c.env.Audio.PlayClip(core.ClipFire)
	return true
}

// Shots returns the number of bullets fired.
func (c *Cannon) Shots() int { return c.shots }

// Bullets returns the bullet pool.
func (c *Cannon) Bullets() *pool.Pool[*Bullet] { return c.bullets }

func (c *Cannon) reset() {
	c.bullets.Reset()
	c.Angle = -math.Pi / 2
	c.ready = 0
}
