package tasks

import "time"

// Group scopes a set of tasks for cancellation. Every task records the
// group generation at registration and is skipped when that generation is
// stale.
type Group struct {
	s    *Scheduler
	name string
	gen  uint64
}

// Name returns the group label.
func (g *Group) Name() string {
	return g.name
}

// Generation returns the current cancellation generation.
func (g *Group) Generation() uint64 {
	return g.gen
}

// Go registers a raw continuation that first runs after delay.
func (g *Group) Go(delay time.Duration, step Step) {
	if delay < 0 {
		delay = 0
	}
	g.s.schedule(&task{group: g, gen: g.gen, step: step}, delay)
}

// After runs fn once after delay.
func (g *Group) After(delay time.Duration, fn func()) {
	g.Go(delay, func() (time.Duration, bool) {
		fn()
		return 0, false
	})
}

// Every runs fn each interval, first after one interval, until the group is
// cancelled. A non-positive interval registers nothing.
func (g *Group) Every(interval time.Duration, fn func()) {
	if interval <= 0 {
		return
	}
	g.Go(interval, func() (time.Duration, bool) {
		fn()
		return interval, true
	})
}

// Repeat runs fn n times: the first call happens synchronously, the rest are
// spaced by interval. fn receives the zero-based call index. Returns false
// from fn to stop early.
func (g *Group) Repeat(n int, interval time.Duration, fn func(i int) bool) {
	if n <= 0 {
		return
	}
	gen := g.gen
	if !fn(0) || n == 1 || gen != g.gen {
		return
	}
	i := 1
	g.Go(interval, func() (time.Duration, bool) {
		if !fn(i) {
			return 0, false
		}
		i++
		return interval, i < n
	})
}

// Cancel invalidates every task registered so far in this group and removes
// them from the scheduler.
func (g *Group) Cancel() {
	g.gen++
	g.s.drop(g)
}

// Pending returns the number of live tasks in this group.
func (g *Group) Pending() int {
	n := 0
	for _, t := range g.s.tasks {
		if t.group == g && t.gen == g.gen {
			n++
		}
	}
	return n
}
