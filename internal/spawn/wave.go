package spawn

import (
	"time"

	"github.com/vovakirdan/duckstorm/internal/actor"
)

type member struct {
	enemy *actor.Enemy
	epoch uint64
}

// Wave groups the enemies launched by one burst. Membership is pinned to the
// activation epoch so a recycled enemy never counts for an old wave.
type Wave struct {
	Level     int
	StartedAt time.Duration

	planned  int
	launched int
	members  []member
}

// Size returns the number of enemies that joined the wave.
func (w *Wave) Size() int {
	return len(w.members)
}

// Planned returns the number of spawns the burst attempts.
func (w *Wave) Planned() int {
	return w.planned
}

// Launched returns the number of spawn attempts made so far, including the
// ones an exhausted pool turned down.
func (w *Wave) Launched() int {
	return w.launched
}

// Remaining returns the number of planned spawns not yet attempted.
func (w *Wave) Remaining() int {
	if w.launched >= w.planned {
		return 0
	}
	return w.planned - w.launched
}

// AliveCount returns how many members are still alive in the life they
// joined with.
func (w *Wave) AliveCount() int {
	n := 0
	for _, m := range w.members {
		if m.enemy.Epoch() == m.epoch && m.enemy.IsAlive() {
			n++
		}
	}
	return n
}

// IsComplete reports whether every planned spawn happened and no member is
// alive.
func (w *Wave) IsComplete() bool {
	return w.Remaining() == 0 && w.AliveCount() == 0
}

func (w *Wave) add(e *actor.Enemy) {
	w.members = append(w.members, member{enemy: e, epoch: e.Epoch()})
}
