// Package game assembles one playable session: arena physics, the enemy
// spawn scheduler and the state machine, all driven by a single fixed-step
// Step call from the platform layer.
package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/arena"
	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/pool"
	"github.com/vovakirdan/duckstorm/internal/registry"
	"github.com/vovakirdan/duckstorm/internal/session"
	"github.com/vovakirdan/duckstorm/internal/spawn"
	"github.com/vovakirdan/duckstorm/internal/telemetry"
)

// Deps are the collaborators a game talks to. Nil fields fall back to
// silent implementations.
type Deps struct {
	Audio core.Audio
	UI    core.UI
	Store session.BestScoreStore
	Log   *log.Logger
	Seed  int64

	// Autopilot aims at the closest enemy and fires whenever it is lined up.
	Autopilot bool
}

// Round summarizes one finished Playing period.
type Round struct {
	Score    int
	Best     int
	NewBest  bool
	Level    int
	Kills    int
	Duration time.Duration
}

// Game is one independent session.
type Game struct {
	env     *core.Env
	cfg     config.Config
	arena   *arena.Arena
	spawner *spawn.Scheduler
	machine *session.Machine

	autopilot bool
	counters  telemetry.Counters

	roundStart time.Duration
	roundKills int
	roundBest  int
	onRound    []func(Round)
}

// New builds a game from cfg. Enemy kinds that are not registered are
// skipped with a warning; an empty roster still yields a playable, if quiet,
// game.
func New(cfg config.Config, deps Deps) *Game {
	env := core.NewEnv(deps.Seed, deps.Log)
	if deps.Audio != nil {
		env.Audio = deps.Audio
	}
	if deps.UI != nil {
		env.UI = deps.UI
	}

	for _, issue := range config.Validate(cfg) {
		env.Log.Warn("config", "issue", issue)
	}

	kinds := buildKinds(env.Log, cfg.Enemies)
	if len(kinds) == 0 {
		env.Log.Warn("no enemy kinds configured")
	}

	g := &Game{env: env, cfg: cfg, autopilot: deps.Autopilot}
	g.arena = arena.New(env, cfg, kinds, g)
	g.spawner = spawn.New(env, spawnConfig(cfg), g.arena.Sources())
	g.machine = session.New(env, g.arena.Player(), round{g}, deps.Store)

	g.spawner.OnSpawn(func(*actor.Enemy) { g.counters.Spawns++ })
	g.spawner.OnEscalate(func(spawn.Difficulty) { g.counters.Escalations++ })
	g.spawner.OnWaveCleared(func(*spawn.Wave) { g.counters.WavesCleared++ })
	g.machine.OnTransition(g.transitioned)

	return g
}

// buildKinds resolves configured kinds against the registry.
func buildKinds(logger *log.Logger, enemies []config.EnemyConfig) []arena.Kind {
	var kinds []arena.Kind
	seen := make(map[string]bool)
	for _, ec := range enemies {
		arch, err := registry.Lookup(ec.Kind)
		if err != nil {
			logger.Warn("skipping enemy kind", "kind", ec.Kind, "err", err)
			continue
		}
		if seen[arch.ID] {
			logger.Warn("duplicate enemy kind", "kind", arch.ID)
			continue
		}
		seen[arch.ID] = true

		weight := arch.Weight
		if ec.Weight != nil {
			weight = *ec.Weight
		}
		if ec.Stats != nil {
			arch.Stats = overrideStats(arch.Stats, *ec.Stats)
		}
		kinds = append(kinds, arena.Kind{
			Archetype: arch,
			Weight:    weight,
			Pool: pool.Options{
				Size:     ec.PoolSize,
				Growable: ec.Growable,
				Prewarm:  ec.Prewarm,
			},
		})
	}
	return kinds
}

func overrideStats(s actor.Stats, o config.EnemyStats) actor.Stats {
	if o.MaxHealth > 0 {
		s.MaxHealth = o.MaxHealth
	}
	if o.Speed > 0 {
		s.Speed = o.Speed
	}
	if o.DamageTaken > 0 {
		s.DamageTaken = o.DamageTaken
	}
	if o.DamageGiven > 0 {
		s.DamageGiven = o.DamageGiven
	}
	if o.Radius > 0 {
		s.Radius = o.Radius
	}
	if o.KillScore > 0 {
		s.KillScore = o.KillScore
	}
	if o.ExplosionDuration > 0 {
		s.ExplosionDuration = o.ExplosionDuration
	}
	return s
}

func spawnConfig(cfg config.Config) spawn.Config {
	sc := cfg.Spawn
	return spawn.Config{
		Center:                     sc.Center.Vec(),
		Radius:                     sc.Radius,
		Target:                     cfg.Player.Position.Vec(),
		MinSpawnInterval:           sc.MinSpawnInterval,
		DifficultyIncreaseInterval: sc.DifficultyIncreaseInterval,
		MinCheckInterval:           sc.MinCheckInterval,
		InitialMin:                 sc.InitialMin,
		InitialMax:                 sc.InitialMax,
		MinStep:                    sc.MinStep,
		MaxStep:                    sc.MaxStep,
		ScaleMin:                   sc.ScaleMin,
		ScaleMax:                   sc.ScaleMax,
	}
}

// round adapts the spawner to the machine. Stopping a round also clears
// bullets, explosions and pending blasts.
type round struct{ g *Game }

func (r round) Start() { r.g.spawner.Start() }

func (r round) Stop() {
	r.g.spawner.Stop()
	r.g.arena.Reset()
}

// Start enters the main menu. Calling it twice is harmless.
func (g *Game) Start() {
	if g.machine.State() == session.StateNone {
		g.machine.GoTo(session.StateMenu)
	}
}

// Step advances the session by dt. The order is fixed: input, physics,
// collision classification, damage, pending state transition, then timers.
func (g *Game) Step(dt time.Duration, input core.InputFrame) {
	g.handleInput(dt, input)

	g.arena.Move(dt)
	g.arena.Apply(g.arena.Contacts())

	g.machine.Update()
	g.spawner.CheckWaves()

	g.env.Tasks.Advance(dt)
}

func (g *Game) handleInput(dt time.Duration, input core.InputFrame) {
	switch g.machine.State() {
	case session.StateMenu:
		if input.Has(core.ActionConfirm) || input.Has(core.ActionFire) {
			g.machine.GoTo(session.StatePlaying)
		}
	case session.StateGameOver:
		if input.Has(core.ActionConfirm) {
			g.machine.GoTo(session.StateMenu)
		}
	case session.StatePlaying:
		cannon := g.arena.Cannon()
		if input.Has(core.ActionLeft) {
			cannon.Turn(-1, dt)
		}
		if input.Has(core.ActionRight) {
			cannon.Turn(1, dt)
		}
		if input.Has(core.ActionFire) {
			cannon.Fire()
		}
		if g.autopilot {
			g.autoplay(dt)
		}
	}
}

func (g *Game) autoplay(dt time.Duration) {
	cannon := g.arena.Cannon()
	target, ok := g.spawner.ClosestEnemy(g.arena.Player().Pos)
	if !ok {
		return
	}
	if cannon.AimAt(target.Pos, dt) {
		cannon.Fire()
	}
}

func (g *Game) transitioned(from, to session.State) {
	switch to {
	case session.StatePlaying:
		g.roundStart = g.env.Now()
		g.roundKills = g.arena.Kills()
		g.roundBest = g.machine.Session().Best
	case session.StateGameOver:
		s := g.machine.Session()
		r := Round{
			Score:    s.Score,
			Best:     s.Best,
			NewBest:  s.Score > g.roundBest,
			Level:    g.spawner.Difficulty().Level,
			Kills:    g.arena.Kills() - g.roundKills,
			Duration: g.env.Now() - g.roundStart,
		}
		g.env.Log.Info("round over", "score", r.Score, "best", r.Best, "level", r.Level, "kills", r.Kills)
		for _, fn := range g.onRound {
			fn(r)
		}
	}
}

// OnRoundEnd registers fn to run each time a round reaches game over.
func (g *Game) OnRoundEnd(fn func(Round)) {
	g.onRound = append(g.onRound, fn)
}

// Playing reports whether a round is in progress. Part of actor.Owner.
func (g *Game) Playing() bool { return g.machine.Playing() }

// AddScore forwards kill scores to the state machine. Part of actor.Owner.
func (g *Game) AddScore(amount int) { g.machine.AddScore(amount) }

// DamagePlayer forwards contact damage to the state machine. Part of
// actor.Owner.
func (g *Game) DamagePlayer(amount float64) { g.machine.DamagePlayer(amount) }

// Env returns the session environment.
func (g *Game) Env() *core.Env { return g.env }

// Config returns the configuration the game was built from.
func (g *Game) Config() config.Config { return g.cfg }

// Arena returns the physics world.
func (g *Game) Arena() *arena.Arena { return g.arena }

// Spawner returns the enemy scheduler.
func (g *Game) Spawner() *spawn.Scheduler { return g.spawner }

// Machine returns the state machine.
func (g *Game) Machine() *session.Machine { return g.machine }

// State returns the current game state.
func (g *Game) State() session.State { return g.machine.State() }

// Now returns the session's virtual time.
func (g *Game) Now() time.Duration { return g.env.Now() }

// Counters returns cumulative event counts.
func (g *Game) Counters() telemetry.Counters {
	c := g.counters
	c.Kills = g.arena.Kills()
	c.Kamikazes = g.arena.Kamikazes()
	c.Shots = g.arena.Cannon().Shots()
	return c
}

// Snapshot samples the game for telemetry.
func (g *Game) Snapshot() telemetry.Snapshot {
	s := g.machine.Session()
	d := g.spawner.Difficulty()
	return telemetry.Snapshot{
		State:   s.State.String(),
		Score:   s.Score,
		Best:    s.Best,
		Health:  g.machine.Tracker().Health(),
		Level:   d.Level,
		MinPop:  d.MinPopulation,
		MaxPop:  d.MaxPopulation,
		Alive:   g.spawner.AliveCount(),
		Counter: g.Counters(),
	}
}

// String is a one-line status used by logs and the headless runner.
func (g *Game) String() string {
	s := g.machine.Session()
	return fmt.Sprintf("%s score=%d best=%d level=%d alive=%d",
		s.State, s.Score, s.Best, g.spawner.Difficulty().Level, g.spawner.AliveCount())
}
