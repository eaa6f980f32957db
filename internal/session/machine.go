package session

import (
	"github.com/vovakirdan/duckstorm/internal/actor"
	"github.com/vovakirdan/duckstorm/internal/core"
)

// BestScoreKey is the persistence key of the best score.
const BestScoreKey = "best_score"

// Spawner is the part of the enemy scheduler the machine drives.
type Spawner interface {
	Start()
	Stop()
}

// BestScoreStore is the key-value persistence collaborator.
type BestScoreStore interface {
	Get(key string) (value int, ok bool, err error)
	Set(key string, value int) error
}

// TransitionFunc observes a completed transition.
type TransitionFunc func(from, to State)

// Machine is the game state machine. It also acts as the actor owner:
// enemies report kills and contact damage through it.
type Machine struct {
	env     *core.Env
	player  *actor.Player
	spawner Spawner
	store   BestScoreStore
	tracker *Tracker

	state       State
	best        int
	pendingOver bool
	onChange    []TransitionFunc
}

// New creates a machine in StateNone and loads the best score from store.
// A nil store disables persistence.
func New(env *core.Env, player *actor.Player, spawner Spawner, store BestScoreStore) *Machine {
	m := &Machine{
		env:     env,
		player:  player,
		spawner: spawner,
		store:   store,
		tracker: NewTracker(env.UI),
	}
	if store != nil {
		best, ok, err := store.Get(BestScoreKey)
		switch {
		case err != nil:
			env.Log.Warn("cannot load best score", "err", err)
		case ok:
			m.best = best
		}
	}
	player.OnDeath(func() {
		if m.state == StatePlaying {
			m.pendingOver = true
		}
	})
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Session returns a snapshot of state, score and best score.
func (m *Machine) Session() Session {
	return Session{State: m.state, Score: m.tracker.Score(), Best: m.best}
}

// Tracker returns the score and health tracker.
func (m *Machine) Tracker() *Tracker { return m.tracker }

// OnTransition registers an observer run after each completed transition.
func (m *Machine) OnTransition(fn TransitionFunc) {
	m.onChange = append(m.onChange, fn)
}

// GoTo performs the transition to state to. Requests outside the legal
// edges are ignored and return false.
func (m *Machine) GoTo(to State) bool {
	from := m.state
	if !CanTransition(from, to) {
		m.env.Log.Debug("ignored state transition", "from", from, "to", to)
		return false
	}

	switch to {
	case StateMenu:
		if from == StateGameOver {
			m.spawner.Stop()
			m.player.Respawn()
			m.tracker.Reset(m.player.Health())
			m.env.UI.HidePanel(core.PanelScoreboard)
		}
		m.env.UI.ShowPanel(core.PanelMenu)
		m.env.Audio.PlayLoop(core.ClipMenuMusic)
	case StatePlaying:
		m.pendingOver = false
		m.player.Respawn()
		m.tracker.Reset(m.player.Health())
		m.env.UI.HidePanel(core.PanelMenu)
		m.env.UI.ShowPanel(core.PanelHUD)
		m.env.Audio.StopLoop()
		m.env.Audio.PlayClip(core.ClipGameStart)
		m.state = to
		m.spawner.Start()
	case StateGameOver:
		m.pendingOver = false
		m.env.UI.HidePanel(core.PanelHUD)
		score, prev := m.tracker.Score(), m.best
		newBest := score > prev
		m.env.UI.ShowScoreboard(score, prev, newBest)
		if newBest {
			m.best = score
			m.persistBest()
		}
		m.env.Audio.PlayClip(core.ClipVictory)
	}
	m.state = to

	m.env.Log.Info("state changed", "from", from, "to", to)
	for _, fn := range m.onChange {
		fn(from, to)
	}
	return true
}

// Advance moves to the next state in the cycle.
func (m *Machine) Advance() bool {
	return m.GoTo(Next(m.state))
}

// Update applies a game over requested by player death during this tick.
// The tick driver calls it after collisions are resolved.
func (m *Machine) Update() {
	if m.pendingOver {
		m.pendingOver = false
		m.GoTo(StateGameOver)
	}
}

// Playing reports whether the session is in play.
func (m *Machine) Playing() bool {
	return m.state == StatePlaying
}

// AddScore credits a kill. Kills landing outside play do not count.
func (m *Machine) AddScore(amount int) {
	if m.state != StatePlaying {
		return
	}
	m.tracker.AddScore(amount)
}

// DamagePlayer forwards contact damage to the player and the tracker.
func (m *Machine) DamagePlayer(amount float64) {
	m.player.TakeDamage(amount)
	m.tracker.SetHealth(m.player.Health())
}

func (m *Machine) persistBest() {
	if m.store == nil {
		return
	}
	if err := m.store.Set(BestScoreKey, m.best); err != nil {
		m.env.Log.Warn("cannot save best score", "err", err, "score", m.best)
	}
}
