// Package tasks runs time-keyed continuations on a single-threaded virtual
// clock. A task suspends by returning the delay until its next resumption;
// the owning tick driver advances the clock and the scheduler resumes every
// task that became due, in due-time order.
//
// Tasks belong to a Group. Cancelling a group bumps its generation and drops
// its pending tasks synchronously, so no callback registered before the
// cancellation can run afterwards.
package tasks

import "time"

// Step is a resumable continuation. It returns the delay until it wants to
// run again and whether it wants to run again at all.
type Step func() (next time.Duration, more bool)

type task struct {
	due     time.Duration
	seq     uint64
	hold    uint64 // Advance call the task must sit out, zero for none
	group   *Group
	gen     uint64
	step    Step
}

// Scheduler owns the virtual clock and all pending tasks of one session.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	tick    uint64
	tasks   []*task
	root    *Group
	running bool
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	s := &Scheduler{}
	s.root = s.NewGroup("root")
	return s
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of scheduled tasks across all groups.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// NewGroup creates a cancellation group bound to this scheduler.
func (s *Scheduler) NewGroup(name string) *Group {
	return &Group{s: s, name: name}
}

// Root returns the default group used by After and Every on the scheduler.
func (s *Scheduler) Root() *Group {
	return s.root
}

// After runs fn once after delay in the root group.
func (s *Scheduler) After(delay time.Duration, fn func()) {
	s.root.After(delay, fn)
}

// Advance moves the clock forward by dt and resumes every task that becomes
// due, including tasks rescheduled by earlier resumptions within the same
// window. The clock reads the due time of each task while it runs.
//
// A task that asks to resume with a zero delay is deferred to the next
// Advance call so a zero interval cannot spin forever within one tick.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.tick++
	target := s.now + dt

	s.running = true
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.remove(t)
		if t.gen != t.group.gen {
			continue
		}
		if t.due > s.now {
			s.now = t.due
		}

		next, more := t.step()
		if !more || t.gen != t.group.gen {
			continue
		}
		if next < 0 {
			next = 0
		}
		s.schedule(t, next)
	}
	s.running = false
	s.now = target
}

// Reset drops every pending task and invalidates every group.
func (s *Scheduler) Reset() {
	for _, t := range s.tasks {
		t.group.gen++
	}
	s.tasks = s.tasks[:0]
}

func (s *Scheduler) schedule(t *task, delay time.Duration) {
	s.seq++
	t.seq = s.seq
	t.due = s.now + delay
	t.hold = 0
	if s.running && delay == 0 {
		t.hold = s.tick
	}
	s.tasks = append(s.tasks, t)
}

// nextDue returns the earliest task due at or before target. Ties break on
// registration order.
func (s *Scheduler) nextDue(target time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.due > target {
			continue
		}
		if t.hold != 0 && t.hold == s.tick {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) remove(t *task) {
	for i, other := range s.tasks {
		if other == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

func (s *Scheduler) drop(g *Group) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.group != g {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}
