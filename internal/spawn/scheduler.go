// Package spawn keeps a bounded, escalating population of enemies alive. It
// owns weighted enemy pools and drives three timed loops once started:
// initial population, difficulty escalation and minimum population checks.
package spawn

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/pool"
	"github.com/vovakirdan/duckstorm/internal/tasks"
)

// Source pairs an enemy pool with a raw selection weight.
type Source struct {
	Kind   string
	Pool   *pool.Pool[*actor.Enemy]
	Weight float64
}

// Config holds the spawner tunables.
type Config struct {
	Center r2.Vec  // spawn disk center
	Radius float64 // spawn disk radius
	Target r2.Vec  // new enemies face this point

	MinSpawnInterval           time.Duration
	DifficultyIncreaseInterval time.Duration // <= 0 disables escalation
	MinCheckInterval           time.Duration // <= 0 disables top-ups

	InitialMin int
	InitialMax int
	MinStep    int
	MaxStep    int

	// Per-spawn random scale range. ScaleMax <= 0 disables scaling.
	ScaleMin float64
	ScaleMax float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Radius:                     20,
		MinSpawnInterval:           300 * time.Millisecond,
		DifficultyIncreaseInterval: 30 * time.Second,
		MinCheckInterval:           3 * time.Second,
		InitialMin:                 5,
		InitialMax:                 7,
		MinStep:                    1,
		MaxStep:                    3,
		ScaleMin:                   0.5,
		ScaleMax:                   3,
	}
}

// Difficulty is the escalation state. It only grows while running.
type Difficulty struct {
	Level          int
	MinPopulation  int
	MaxPopulation  int
	LastEscalation time.Duration
}

// Scheduler is the enemy population manager of one session.
type Scheduler struct {
	env     *core.Env
	cfg     Config
	sources []Source
	weights []float64
	usable  bool
	pools   []*pool.Pool[*actor.Enemy]
	group   *tasks.Group

	running bool
	diff    Difficulty
	tracked []*actor.Enemy
	waves   []*Wave
	current *Wave

	onSpawn       []func(*actor.Enemy)
	onEscalate    []func(Difficulty)
	onWaveCleared []func(*Wave)
}

// New creates a stopped scheduler. Weights are normalized here, once.
// Configuration problems are logged and leave a scheduler that spawns
// nothing.
func New(env *core.Env, cfg Config, sources []Source) *Scheduler {
	s := &Scheduler{
		env:     env,
		cfg:     cfg,
		sources: sources,
		group:   env.Tasks.NewGroup("spawn"),
	}

	raw := make([]float64, len(sources))
	seen := make(map[*pool.Pool[*actor.Enemy]]bool)
	for i, src := range sources {
		if src.Pool == nil {
			env.Log.Warn("spawn source has no pool", "kind", src.Kind)
			continue
		}
		raw[i] = src.Weight
		if !seen[src.Pool] {
			seen[src.Pool] = true
			s.pools = append(s.pools, src.Pool)
			src.Pool.OnReset(s.prune)
		}
	}

	weights, negatives, ok := Normalize(raw)
	if negatives > 0 {
		env.Log.Warn("negative spawn weights clamped to zero", "count", negatives)
	}
	switch {
	case len(sources) == 0:
		env.Log.Warn("no spawn sources configured; nothing will spawn")
	case !ok:
		env.Log.Warn("spawn weights sum to zero; nothing will spawn", "sources", len(sources))
	}
	s.weights = weights
	s.usable = ok
	s.diff = Difficulty{MinPopulation: cfg.InitialMin, MaxPopulation: cfg.InitialMax}
	return s
}

// Weights returns a copy of the normalized weights in source order.
func (s *Scheduler) Weights() []float64 {
	return append([]float64(nil), s.weights...)
}

// OnSpawn registers a callback run for every spawned enemy.
func (s *Scheduler) OnSpawn(fn func(*actor.Enemy)) {
	s.onSpawn = append(s.onSpawn, fn)
}

// OnEscalate registers a callback run after each difficulty increase.
func (s *Scheduler) OnEscalate(fn func(Difficulty)) {
	s.onEscalate = append(s.onEscalate, fn)
}

// OnWaveCleared registers a callback run when a non-empty wave is defeated.
func (s *Scheduler) OnWaveCleared(fn func(*Wave)) {
	s.onWaveCleared = append(s.onWaveCleared, fn)
}

// Running reports whether Start has been called without a matching Stop.
func (s *Scheduler) Running() bool {
	return s.running
}

// Difficulty returns the current escalation state.
func (s *Scheduler) Difficulty() Difficulty {
	return s.diff
}

// Start resets difficulty to its initial values and launches the timed
// loops. Starting a running scheduler does nothing.
func (s *Scheduler) Start() {
	if s.running {
		s.env.Log.Debug("spawn scheduler already running")
		return
	}
	s.running = true
	s.diff = Difficulty{
		MinPopulation:  s.cfg.InitialMin,
		MaxPopulation:  s.cfg.InitialMax,
		LastEscalation: s.env.Now(),
	}
	s.env.Log.Info("spawn scheduler started", "min", s.diff.MinPopulation, "max", s.diff.MaxPopulation)

	s.burst(s.diff.MaxPopulation)
	s.group.Every(s.cfg.DifficultyIncreaseInterval, s.escalate)
	s.group.Every(s.cfg.MinCheckInterval, s.enforceMinimum)
}

// Stop cancels every pending loop, resets all pools and forgets tracked
// enemies and waves. It is safe to call at any time, any number of times.
func (s *Scheduler) Stop() {
	wasRunning := s.running
	s.running = false
	s.group.Cancel()
	for _, p := range s.pools {
		p.Reset()
	}
	s.tracked = s.tracked[:0]
	s.waves = nil
	s.current = nil
	if wasRunning {
		s.env.Log.Info("spawn scheduler stopped", "level", s.diff.Level)
	}
}

// SpawnOne places one enemy from a weighted random source inside the spawn
// disk. It refuses when stopped, at the population cap, when no source is
// usable, or when the chosen pool is exhausted.
func (s *Scheduler) SpawnOne() (*actor.Enemy, bool) {
	if !s.running || !s.usable {
		return nil, false
	}
	s.prune()
	if s.AliveCount() >= s.diff.MaxPopulation {
		s.env.Log.Debug("spawn skipped: population cap", "max", s.diff.MaxPopulation)
		return nil, false
	}

	pos := core.SampleDisk(s.env.Rand, s.cfg.Center, s.cfg.Radius)
	idx := Pick(s.weights, s.env.Rand.Float64())
	if idx < 0 {
		return nil, false
	}
	src := s.sources[idx]
	e, ok := src.Pool.Acquire()
	if !ok {
		s.env.Log.Debug("spawn skipped: pool exhausted", "kind", src.Kind, "pool", src.Pool.Name())
		return nil, false
	}

	e.Place(pos, core.AngleTo(pos, s.cfg.Target))
	if scale, ok := s.randomScale(); ok {
		e.ApplyScale(scale)
	}
	s.track(e)
	if s.current != nil {
		s.current.add(e)
	}
	for _, fn := range s.onSpawn {
		fn(e)
	}
	return e, true
}

// AliveCount returns the number of tracked enemies that are alive.
func (s *Scheduler) AliveCount() int {
	n := 0
	for _, e := range s.tracked {
		if e.IsAlive() {
			n++
		}
	}
	return n
}

// Enemies returns the living tracked enemies.
func (s *Scheduler) Enemies() []*actor.Enemy {
	out := make([]*actor.Enemy, 0, len(s.tracked))
	for _, e := range s.tracked {
		if e.IsAlive() {
			out = append(out, e)
		}
	}
	return out
}

// ClosestEnemy returns the living enemy nearest to pos.
func (s *Scheduler) ClosestEnemy(pos r2.Vec) (*actor.Enemy, bool) {
	var best *actor.Enemy
	bestDist := 0.0
	for _, e := range s.tracked {
		if !e.IsAlive() {
			continue
		}
		d := r2.Norm2(r2.Sub(e.Pos, pos))
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}

// Waves returns the waves that are not yet cleared, oldest first.
func (s *Scheduler) Waves() []*Wave {
	return append([]*Wave(nil), s.waves...)
}

// CheckWaves retires completed waves and reports the non-empty ones to the
// wave-cleared callbacks. The tick driver calls it after damage is applied.
func (s *Scheduler) CheckWaves() {
	s.prune()
	kept := s.waves[:0]
	for _, w := range s.waves {
		if !w.IsComplete() {
			kept = append(kept, w)
			continue
		}
		if w == s.current {
			s.current = nil
		}
		if w.Size() == 0 {
			continue
		}
		s.env.Log.Debug("wave cleared", "level", w.Level, "size", w.Size())
		for _, fn := range s.onWaveCleared {
			fn(w)
		}
	}
	s.waves = kept
}

// burst launches n spawns spaced by MinSpawnInterval, the first one now.
func (s *Scheduler) burst(n int) {
	if n <= 0 {
		return
	}
	w := &Wave{Level: s.diff.Level, StartedAt: s.env.Now(), planned: n}
	s.waves = append(s.waves, w)
	s.current = w
	s.group.Repeat(n, s.cfg.MinSpawnInterval, func(int) bool {
		if !s.running {
			return false
		}
		w.launched++
		s.SpawnOne()
		return true
	})
}

func (s *Scheduler) escalate() {
	s.diff.Level++
	s.diff.MinPopulation += s.cfg.MinStep
	s.diff.MaxPopulation += s.cfg.MaxStep
	s.diff.LastEscalation = s.env.Now()

	alive := s.AliveCount()
	s.env.Log.Info("difficulty increased",
		"level", s.diff.Level,
		"min", s.diff.MinPopulation,
		"max", s.diff.MaxPopulation,
		"alive", alive)
	for _, fn := range s.onEscalate {
		fn(s.diff)
	}

	s.burst(s.diff.MaxPopulation - alive)
}

func (s *Scheduler) enforceMinimum() {
	deficit := s.diff.MinPopulation - s.AliveCount()
	for i := 0; i < deficit; i++ {
		s.SpawnOne()
	}
}

func (s *Scheduler) randomScale() (float64, bool) {
	lo, hi := s.cfg.ScaleMin, s.cfg.ScaleMax
	if hi <= 0 {
		return 1, false
	}
	if lo <= 0 {
		lo = hi
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.env.Rand.Float64()*(hi-lo), true
}

// track adds e to the tracking list unless it is already there.
func (s *Scheduler) track(e *actor.Enemy) {
	for _, t := range s.tracked {
		if t == e {
			return
		}
	}
	s.tracked = append(s.tracked, e)
}

// prune drops tracked enemies that went back to their pool.
func (s *Scheduler) prune() {
	kept := s.tracked[:0]
	for _, e := range s.tracked {
		if e.Active() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.tracked); i++ {
		s.tracked[i] = nil
	}
	s.tracked = kept
}
