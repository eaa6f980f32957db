// Package arena is the reference physics collaborator: 2-D kinematics for
// enemies and bullets, circle overlap collisions, and pooled explosion
// effects. It turns collisions into TakeDamage and GiveDamage calls and never
// touches pool internals beyond acquire and release.
package arena

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/pool"
	"github.com/vovakirdan/duckstorm/internal/registry"
	"github.com/vovakirdan/duckstorm/internal/spawn"
	"github.com/vovakirdan/duckstorm/internal/tasks"
)

// Kind is an enemy archetype bound to its pool settings.
type Kind struct {
	Archetype registry.Archetype
	Weight    float64
	Pool      pool.Options
}

// ContactType classifies a collision.
type ContactType int

const (
	ProjectileHit ContactType = iota // bullet vs enemy
	EnemyContact                     // enemy vs player
)

// Contact is one classified collision of this tick.
type Contact struct {
	Type   ContactType
	Enemy  *actor.Enemy
	Bullet *Bullet
}

// Arena owns every non-enemy-scheduler entity of a session.
type Arena struct {
	env    *core.Env
	cfg    config.Config
	bounds core.Bounds
	group  *tasks.Group

	player     *actor.Player
	cannon     *Cannon
	kinds      []Kind
	pools      []*pool.Pool[*actor.Enemy]
	explosions *pool.Pool[*Explosion]

	kills     int
	kamikazes int
}

// New builds the arena. Enemies created by its pools report to owner.
func New(env *core.Env, cfg config.Config, kinds []Kind, owner actor.Owner) *Arena {
	a := &Arena{
		env:    env,
		cfg:    cfg,
		bounds: core.Bounds{Max: r2.Vec{X: cfg.Arena.Width, Y: cfg.Arena.Height}},
		group:  env.Tasks.NewGroup("arena"),
		kinds:  kinds,
	}
	a.player = actor.NewPlayer(env, cfg.Player.Position.Vec(), cfg.Player.MaxHealth, cfg.Player.Radius)
	a.cannon = newCannon(env, cfg.Cannon, func() r2.Vec { return a.player.Pos }, cfg.Player.Radius)

	for _, k := range kinds {
		a.pools = append(a.pools, pool.New(k.Archetype.ID, func() *actor.Enemy {
			e := actor.NewEnemy(k.Archetype.ID, k.Archetype.Stats, env, owner)
			e.OnDeath(a.enemyDied)
			return e
		}, k.Pool))
	}

	a.explosions = pool.New("explosions", func() *Explosion {
		return &Explosion{}
	}, pool.Options{Size: cfg.Effects.PoolSize, Growable: true})
	return a
}

// Player returns the defended player.
func (a *Arena) Player() *actor.Player { return a.player }

// Cannon returns the player's gun.
func (a *Arena) Cannon() *Cannon { return a.cannon }

// Bounds returns the playfield rectangle.
func (a *Arena) Bounds() core.Bounds { return a.bounds }

// Kinds returns the configured enemy kinds in pool order.
func (a *Arena) Kinds() []Kind { return a.kinds }

// Sources returns the weighted enemy pools for the spawn scheduler.
func (a *Arena) Sources() []spawn.Source {
	out := make([]spawn.Source, len(a.kinds))
	for i, k := range a.kinds {
		out[i] = spawn.Source{Kind: k.Archetype.ID, Pool: a.pools[i], Weight: k.Weight}
	}
	return out
}

// Kills returns the number of enemies shot or blasted.
func (a *Arena) Kills() int { return a.kills }

// Kamikazes returns the number of enemies that reached the player.
func (a *Arena) Kamikazes() int { return a.kamikazes }

// EachEnemy calls fn for every active enemy, exploding ones included.
func (a *Arena) EachEnemy(fn func(kind int, e *actor.Enemy)) {
	for i, p := range a.pools {
		p.EachActive(func(e *actor.Enemy) { fn(i, e) })
	}
}

// EachBullet calls fn for every bullet in flight.
func (a *Arena) EachBullet(fn func(b *Bullet)) {
	a.cannon.bullets.EachActive(fn)
}

// EachExplosion calls fn for every running explosion.
func (a *Arena) EachExplosion(fn func(x *Explosion)) {
	a.explosions.EachActive(fn)
}

// Move integrates positions for dt. Enemies steer straight at the player;
// bullets expire by age or on leaving the arena.
func (a *Arena) Move(dt time.Duration) {
	sec := dt.Seconds()
	target := a.player.Pos

	a.EachEnemy(func(_ int, e *actor.Enemy) {
		if !e.IsAlive() {
			return
		}
		dir := core.Direction(e.Pos, target)
		e.Vel = r2.Scale(e.Stats().Speed, dir)
		e.Pos = r2.Add(e.Pos, r2.Scale(sec, e.Vel))
		if dir != (r2.Vec{}) {
			e.Heading = math.Atan2(dir.Y, dir.X)
		}
	})

	lifetime := a.cfg.Cannon.BulletLifetime
	a.cannon.bullets.EachActive(func(b *Bullet) {
		b.Age += dt
		b.Pos = r2.Add(b.Pos, r2.Scale(sec, b.Vel))
		if (lifetime > 0 && b.Age >= lifetime) || !a.bounds.Contains(b.Pos) {
			a.cannon.bullets.Release(b)
		}
	})

	a.explosions.EachActive(func(x *Explosion) {
		x.Age += dt
		if x.Age >= x.Duration {
			a.explosions.Release(x)
		}
	})
}

// Contacts classifies this tick's overlaps. A bullet hits at most one enemy.
func (a *Arena) Contacts() []Contact {
	var out []Contact
	a.cannon.bullets.EachActive(func(b *Bullet) {
		for _, p := range a.pools {
			hit := false
			p.EachActive(func(e *actor.Enemy) {
				if hit || !e.IsAlive() {
					return
				}
				if core.Overlaps(b.Pos, b.Radius, e.Pos, e.Radius) {
					out = append(out, Contact{Type: ProjectileHit, Enemy: e, Bullet: b})
					hit = true
				}
			})
			if hit {
				return
			}
		}
	})

	if a.player.IsAlive() {
		a.EachEnemy(func(_ int, e *actor.Enemy) {
			if e.IsAlive() && core.Overlaps(e.Pos, e.Radius, a.player.Pos, a.player.Radius) {
				out = append(out, Contact{Type: EnemyContact, Enemy: e})
			}
		})
	}
	return out
}

// Apply turns contacts into damage calls, in order. A bullet whose target
// was killed earlier in the same batch keeps flying.
func (a *Arena) Apply(contacts []Contact) {
	for _, c := range contacts {
		switch c.Type {
		case ProjectileHit:
			if !c.Bullet.Active() || !c.Enemy.IsAlive() {
				continue
			}
			a.cannon.bullets.Release(c.Bullet)
			a.explode(c.Bullet.Pos, c.Bullet.Radius*2, false)
			c.Enemy.TakeDamage(c.Enemy.Stats().DamageTaken)
		case EnemyContact:
			c.Enemy.GiveDamage()
		}
	}
}

// Reset clears bullets, explosions and pending blasts and re-centers the
// cannon. Enemy pools belong to the spawn scheduler and are reset there.
func (a *Arena) Reset() {
	a.group.Cancel()
	a.cannon.reset()
	a.explosions.Reset()
}

func (a *Arena) enemyDied(e *actor.Enemy, killed bool) {
	if !killed {
		a.kamikazes++
		a.explode(e.Pos, e.Radius, false)
		return
	}
	a.kills++
	a.explode(e.Pos, a.cfg.Effects.BlastRadius, true)

	center := e.Pos
	radius := a.cfg.Effects.BlastRadius
	if radius <= 0 {
		return
	}
	a.group.After(a.cfg.Effects.BlastDelay, func() {
		a.blast(center, radius)
	})
}

// blast kills every living enemy whose body reaches into the radius.
func (a *Arena) blast(center r2.Vec, radius float64) {
	var caught []*actor.Enemy
	a.EachEnemy(func(_ int, e *actor.Enemy) {
		if e.IsAlive() && core.Overlaps(center, radius, e.Pos, e.Radius) {
			caught = append(caught, e)
		}
	})
	for _, e := range caught {
		e.TakeDamage(math.MaxFloat64)
	}
}

func (a *Arena) explode(pos r2.Vec, radius float64, blast bool) {
	x, ok := a.explosions.Acquire()
	if !ok {
		return
	}
	x.Pos = pos
	x.Radius = radius
	x.Blast = blast
	x.Duration = a.cfg.Effects.ExplosionDuration
	if blast {
		a.env.Audio.PlayClip(core.ClipExplosion)
	}
}
