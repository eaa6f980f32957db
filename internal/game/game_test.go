package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/core"
	_ "github.com/vovakirdan/duckstorm/internal/enemies"
	"github.com/vovakirdan/duckstorm/internal/session"
	"github.com/vovakirdan/duckstorm/internal/storage"
)

const tick = time.Second / 60

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func run(g *Game, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		g.Step(tick, core.NewInputFrame())
	}
}

func TestRoundLifecycle(t *testing.T) {
	store := storage.NewMemoryKV()
	g := New(config.Default(), Deps{Seed: 1, Store: store})

	var rounds []Round
	g.OnRoundEnd(func(r Round) { rounds = append(rounds, r) })

	g.Start()
	if g.State() != session.StateMenu {
		t.Fatalf("after Start state = %v, want Menu", g.State())
	}

	g.Step(tick, press(core.ActionConfirm))
	if g.State() != session.StatePlaying {
		t.Fatalf("state = %v, want Playing", g.State())
	}
	if !g.Spawner().Running() {
		t.Fatal("spawner should run while playing")
	}

	g.AddScore(500)
	g.DamagePlayer(1e9)
	if g.State() != session.StatePlaying {
		t.Fatal("game over must wait for the next update")
	}
	g.Step(tick, core.NewInputFrame())
	if g.State() != session.StateGameOver {
		t.Fatalf("state = %v, want GameOver", g.State())
	}

	if len(rounds) != 1 {
		t.Fatalf("rounds = %d, want 1", len(rounds))
	}
	if rounds[0].Score != 500 || !rounds[0].NewBest {
		t.Errorf("round = %+v, want score 500 and a new best", rounds[0])
	}
	if best, ok, _ := store.Get(session.BestScoreKey); !ok || best != 500 {
		t.Errorf("stored best = %d (%v), want 500", best, ok)
	}

	g.Step(tick, press(core.ActionConfirm))
	if g.State() != session.StateMenu {
		t.Fatalf("state = %v, want Menu", g.State())
	}
	if g.Spawner().Running() || g.Spawner().AliveCount() != 0 {
		t.Error("returning to the menu should stop the spawner and clear enemies")
	}
	if g.Arena().Player().Health() != g.Arena().Player().MaxHealth() {
		t.Error("player should be respawned at full health")
	}
}

func TestInputIgnoredOutsidePlay(t *testing.T) {
	g := New(config.Default(), Deps{Seed: 1})
	g.Start()

	// Fire in the menu starts the round instead of shooting.
	g.Step(tick, press(core.ActionFire))
	if g.State() != session.StatePlaying {
		t.Fatalf("state = %v, want Playing", g.State())
	}
	if g.Counters().Shots != 0 {
		t.Errorf("shots = %d, want 0", g.Counters().Shots)
	}

	g.Step(tick, press(core.ActionFire))
	if g.Counters().Shots != 1 {
		t.Errorf("shots = %d, want 1", g.Counters().Shots)
	}

	before := g.Arena().Cannon().Angle
	g.Step(tick, press(core.ActionLeft))
	if g.Arena().Cannon().Angle >= before {
		t.Error("left should decrease the aim angle")
	}
}

func TestAutopilotPlays(t *testing.T) {
	g := New(config.Default(), Deps{Seed: 42, Autopilot: true})
	g.Start()
	g.Step(tick, press(core.ActionConfirm))

	run(g, time.Minute)

	c := g.Counters()
	if c.Spawns < 5 {
		t.Errorf("spawns = %d, want at least the initial population", c.Spawns)
	}
	if c.Shots == 0 {
		t.Error("autopilot never fired")
	}
	if c.Kills == 0 {
		t.Error("autopilot never killed anything")
	}
	if g.State() == session.StatePlaying && g.Machine().Session().Score == 0 {
		t.Error("kills while playing should score")
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() *Game {
		g := New(config.Default(), Deps{Seed: 7, Autopilot: true})
		g.Start()
		g.Step(tick, press(core.ActionConfirm))
		run(g, 30*time.Second)
		return g
	}
	a, b := play(), play()
	if a.Snapshot() != b.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := New(config.Default(), Deps{Seed: 3})
	b := New(config.Default(), Deps{Seed: 3})
	a.Start()
	b.Start()
	a.Step(tick, press(core.ActionConfirm))

	run(a, 5*time.Second)
	if b.State() != session.StateMenu || b.Now() != 0 {
		t.Errorf("second session moved: state %v, now %v", b.State(), b.Now())
	}
	if b.Spawner().AliveCount() != 0 {
		t.Error("second session should have no enemies")
	}
}

func TestUnknownKindSkipped(t *testing.T) {
	cfg := config.Default()
	cfg.Enemies = append(cfg.Enemies, config.EnemyConfig{Kind: "dragon", PoolSize: 4})

	g := New(cfg, Deps{Seed: 1})
	if got := len(g.Arena().Kinds()); got != 2 {
		t.Errorf("kinds = %d, want 2", got)
	}
}

func TestConfigOverrides(t *testing.T) {
	zero := 0.0
	cfg := config.Default()
	cfg.Enemies = []config.EnemyConfig{
		{Kind: "duck", PoolSize: 4, Stats: &config.EnemyStats{MaxHealth: 200}},
		{Kind: "goose", PoolSize: 4, Weight: &zero},
	}

	g := New(cfg, Deps{Seed: 1})
	w := g.Spawner().Weights()
	if len(w) != 2 || w[0] != 1 || w[1] != 0 {
		t.Errorf("weights = %v, want [1 0]", w)
	}
	kinds := g.Arena().Kinds()
	if kinds[0].Archetype.Stats.MaxHealth != 200 {
		t.Errorf("duck max health = %v, want 200", kinds[0].Archetype.Stats.MaxHealth)
	}
	if kinds[0].Archetype.Stats.Speed == 0 {
		t.Error("unset overrides should keep archetype values")
	}
}

func TestSnapshot(t *testing.T) {
	g := New(config.Default(), Deps{Seed: 1})
	g.Start()
	g.Step(tick, press(core.ActionConfirm))

	s := g.Snapshot()
	if s.State != "Playing" {
		t.Errorf("state = %q, want Playing", s.State)
	}
	if s.Health != 1000 {
		t.Errorf("health = %v, want 1000", s.Health)
	}
	if s.MinPop != 5 || s.MaxPop != 7 {
		t.Errorf("population = %d/%d, want 5/7", s.MinPop, s.MaxPop)
	}
	if s.Alive < 1 {
		t.Errorf("alive = %d, want the first spawn", s.Alive)
	}
}
