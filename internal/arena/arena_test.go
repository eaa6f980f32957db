package arena

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/pool"
	"github.com/vovakirdan/duckstorm/internal/registry"
)

type testOwner struct {
	score  int
	damage float64
}

func (o *testOwner) Playing() bool          { return true }
func (o *testOwner) AddScore(n int)         { o.score += n }
func (o *testOwner) DamagePlayer(d float64) { o.damage += d }

func newTestArena(t *testing.T) (*Arena, *core.Env, *testOwner) {
	t.Helper()
	env := core.NewEnv(3, nil)
	owner := &testOwner{}
	kinds := []Kind{{
		Archetype: registry.Archetype{ID: "duck", Stats: actor.DefaultStats()},
		Weight:    1,
		Pool:      pool.Options{Size: 4, Growable: true},
	}}
	return New(env, config.Default(), kinds, owner), env, owner
}

func spawnAt(t *testing.T, a *Arena, pos r2.Vec) *actor.Enemy {
	t.Helper()
	e, ok := a.Sources()[0].Pool.Acquire()
	if !ok {
		t.Fatal("enemy pool exhausted")
	}
	e.Place(pos, 0)
	return e
}

func TestEnemiesSteerAtPlayer(t *testing.T) {
	a, _, _ := newTestArena(t)
	e := spawnAt(t, a, r2.Vec{X: 40, Y: 0})

	a.Move(time.Second)
	if math.Abs(e.Pos.Y-2) > 1e-9 || math.Abs(e.Pos.X-40) > 1e-9 {
		t.Errorf("Pos = %v, expected (40, 2)", e.Pos)
	}
	if math.Abs(e.Heading-math.Pi/2) > 1e-9 {
		t.Errorf("Heading = %v, expected Pi/2", e.Heading)
	}
}

func TestCannonCooldown(t *testing.T) {
	a, env, _ := newTestArena(t)
	c := a.Cannon()

	if !c.Fire() {
		t.Fatal("first shot failed")
	}
	if c.Fire() {
		t.Error("second shot fired during cooldown")
	}
	env.Tasks.Advance(150 * time.Millisecond)
	if !c.Fire() {
		t.Error("shot after cooldown failed")
	}
	if c.Shots() != 2 {
		t.Errorf("Shots() = %d, expected 2", c.Shots())
	}
}

func TestBulletsExpire(t *testing.T) {
	a, _, _ := newTestArena(t)
	a.Cannon().Fire()
	if n := a.Cannon().Bullets().ActiveCount(); n != 1 {
		t.Fatalf("bullets in flight = %d, expected 1", n)
	}

	// Straight up at 40 units/s leaves the 40-unit arena before 2s.
	for i := 0; i < 20; i++ {
		a.Move(100 * time.Millisecond)
	}
	if n := a.Cannon().Bullets().ActiveCount(); n != 0 {
		t.Errorf("bullets in flight = %d, expected 0", n)
	}
}

func TestBulletLifetime(t *testing.T) {
	a, _, _ := newTestArena(t)
	a.cfg.Cannon.BulletLifetime = 200 * time.Millisecond
	a.Cannon().Fire()

	a.Move(100 * time.Millisecond)
	if a.Cannon().Bullets().ActiveCount() != 1 {
		t.Fatal("bullet expired early")
	}
	a.Move(100 * time.Millisecond)
	if a.Cannon().Bullets().ActiveCount() != 0 {
		t.Error("bullet outlived its lifetime")
	}
}

func TestProjectileHit(t *testing.T) {
	a, _, owner := newTestArena(t)
	e := spawnAt(t, a, r2.Vec{X: 40, Y: 30})

	a.Cannon().Fire()
	hits := 0
	for i := 0; i < 20 && hits == 0; i++ {
		a.Move(16 * time.Millisecond)
		contacts := a.Contacts()
		for _, c := range contacts {
			if c.Type == ProjectileHit {
				hits++
			}
		}
		a.Apply(contacts)
	}

	if hits != 1 {
		t.Fatalf("hits = %d, expected 1", hits)
	}
	if e.Health() != 500 {
		t.Errorf("Health() = %v, expected 500", e.Health())
	}
	if a.Cannon().Bullets().ActiveCount() != 0 {
		t.Error("bullet survived its hit")
	}
	if owner.score != 0 {
		t.Errorf("score = %d for a non-lethal hit", owner.score)
	}
	explosions := 0
	a.EachExplosion(func(*Explosion) { explosions++ })
	if explosions != 1 {
		t.Errorf("explosions = %d, expected 1", explosions)
	}
}

func TestSecondBulletSparedByDeadTarget(t *testing.T) {
	a, _, owner := newTestArena(t)
	e := spawnAt(t, a, r2.Vec{X: 40, Y: 30})
	e.TakeDamage(e.Stats().DamageTaken)

	bullets := a.Cannon().Bullets()
	first, ok1 := bullets.Acquire()
	second, ok2 := bullets.Acquire()
	if !ok1 || !ok2 {
		t.Fatal("bullet pool exhausted")
	}
	first.Pos, second.Pos = e.Pos, e.Pos

	a.Apply([]Contact{
		{Type: ProjectileHit, Enemy: e, Bullet: first},
		{Type: ProjectileHit, Enemy: e, Bullet: second},
	})

	if e.IsAlive() {
		t.Fatal("enemy survived the lethal hit")
	}
	if first.Active() {
		t.Error("first bullet should be spent")
	}
	if !second.Active() {
		t.Error("second bullet was spent on a dead enemy")
	}
	if owner.score != e.Stats().KillScore {
		t.Errorf("score = %d, expected %d", owner.score, e.Stats().KillScore)
	}
	explosions := 0
	a.EachExplosion(func(*Explosion) { explosions++ })
	if explosions != 2 {
		t.Errorf("explosions = %d, expected 2 (hit and blast)", explosions)
	}
}

func TestKillBlastsNeighbours(t *testing.T) {
	a, env, owner := newTestArena(t)
	first := spawnAt(t, a, r2.Vec{X: 10, Y: 10})
	near := spawnAt(t, a, r2.Vec{X: 12, Y: 10})
	far := spawnAt(t, a, r2.Vec{X: 30, Y: 10})

	first.TakeDamage(math.MaxFloat64)
	if a.Kills() != 1 {
		t.Fatalf("Kills() = %d, expected 1", a.Kills())
	}
	if !near.IsAlive() {
		t.Fatal("blast hit before its delay")
	}

	env.Tasks.Advance(500 * time.Millisecond)
	if near.IsAlive() {
		t.Error("neighbour survived the blast")
	}
	if !far.IsAlive() {
		t.Error("distant enemy caught in the blast")
	}
	if owner.score != 2000 {
		t.Errorf("score = %d, expected 2000", owner.score)
	}
}

func TestResetCancelsPendingBlast(t *testing.T) {
	a, env, _ := newTestArena(t)
	first := spawnAt(t, a, r2.Vec{X: 10, Y: 10})
	near := spawnAt(t, a, r2.Vec{X: 11, Y: 10})

	first.TakeDamage(math.MaxFloat64)
	a.Reset()
	env.Tasks.Advance(time.Second)

	if !near.IsAlive() {
		t.Error("blast fired after Reset")
	}
	explosions := 0
	a.EachExplosion(func(*Explosion) { explosions++ })
	if explosions != 0 {
		t.Errorf("explosions after Reset = %d, expected 0", explosions)
	}
}

func TestEnemyContactDamagesPlayer(t *testing.T) {
	a, _, owner := newTestArena(t)
	e := spawnAt(t, a, a.Player().Pos)

	contacts := a.Contacts()
	if len(contacts) != 1 || contacts[0].Type != EnemyContact {
		t.Fatalf("contacts = %+v, expected one enemy contact", contacts)
	}
	a.Apply(contacts)

	if owner.damage != 100 {
		t.Errorf("player damage = %v, expected 100", owner.damage)
	}
	if e.IsAlive() {
		t.Error("enemy survived its contact")
	}
	if a.Kamikazes() != 1 {
		t.Errorf("Kamikazes() = %d, expected 1", a.Kamikazes())
	}
}

func TestAimAt(t *testing.T) {
	a, _, _ := newTestArena(t)
	c := a.Cannon()
	target := r2.Vec{X: 60, Y: 18}
	want := core.AngleTo(a.Player().Pos, target)

	if c.AimAt(target, 10*time.Millisecond) {
		t.Fatal("aim reached a distant target in one short step")
	}
	for i := 0; i < 100; i++ {
		if c.AimAt(target, 16*time.Millisecond) {
			break
		}
	}
	if math.Abs(c.Angle-want) > 1e-9 {
		t.Errorf("Angle = %v, expected %v", c.Angle, want)
	}

	c.Turn(-1, time.Minute)
	if c.Angle != -math.Pi {
		t.Errorf("Angle after hard left = %v, expected -Pi", c.Angle)
	}
}
