// Package pool keeps reusable items alive for the lifetime of a session.
// Items are never freed: activation is the create signal and deactivation
// is the destroy signal.
package pool

// Item is anything a Pool can hold. The item owns its active flag so that
// entry and exit actions run inside SetActive.
type Item interface {
	Active() bool
	SetActive(active bool)
}

// Options configures a pool.
type Options struct {
	Size     int  // initial capacity; items beyond it need Growable
	Growable bool // allocate past Size when every item is active
	Prewarm  bool // build Size items up front instead of on demand
}

// Pool is a fixed-capacity or growable collection of items of one kind.
type Pool[T interface {
	comparable
	Item
}] struct {
	name    string
	factory func() T
	opts    Options
	items   []T
	index   map[T]int
	onReset []func()
}

// New creates a pool. A nil factory yields a pool that only holds items
// registered through Add.
func New[T interface {
	comparable
	Item
}](name string, factory func() T, opts Options) *Pool[T] {
	if opts.Size < 0 {
		opts.Size = 0
	}
	p := &Pool[T]{
		name:    name,
		factory: factory,
		opts:    opts,
		index:   make(map[T]int, opts.Size),
	}
	if opts.Prewarm && factory != nil {
		for len(p.items) < opts.Size {
			item := factory()
			item.SetActive(false)
			p.Add(item)
		}
	}
	return p
}

// Name returns the pool label.
func (p *Pool[T]) Name() string {
	return p.name
}

// Acquire returns the first inactive item, reactivated. When every item is
// active it allocates a new one if capacity or Growable allows; otherwise it
// returns false.
func (p *Pool[T]) Acquire() (T, bool) {
	for _, item := range p.items {
		if !item.Active() {
			item.SetActive(true)
			return item, true
		}
	}

	var zero T
	if p.factory == nil {
		return zero, false
	}
	if len(p.items) >= p.opts.Size && !p.opts.Growable {
		return zero, false
	}
	item := p.factory()
	if !p.Add(item) {
		return zero, false
	}
	item.SetActive(true)
	return item, true
}

// Release deactivates an item owned by this pool. It returns false for
// foreign or already inactive items.
func (p *Pool[T]) Release(item T) bool {
	if _, ok := p.index[item]; !ok || !item.Active() {
		return false
	}
	item.SetActive(false)
	return true
}

// Add registers an externally built item. Duplicates are refused.
func (p *Pool[T]) Add(item T) bool {
	if _, ok := p.index[item]; ok {
		return false
	}
	p.index[item] = len(p.items)
	p.items = append(p.items, item)
	return true
}

// Contains reports whether item is registered in this pool.
func (p *Pool[T]) Contains(item T) bool {
	_, ok := p.index[item]
	return ok
}

// OnReset registers a hook run after every Reset. Callers use it to clear
// their own lists that reference pooled items.
func (p *Pool[T]) OnReset(fn func()) {
	p.onReset = append(p.onReset, fn)
}

// Reset deactivates every item and runs the reset hooks.
func (p *Pool[T]) Reset() {
	for _, item := range p.items {
		if item.Active() {
			item.SetActive(false)
		}
	}
	for _, fn := range p.onReset {
		fn()
	}
}

// Len returns the number of items the pool owns.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// ActiveCount returns the number of active items.
func (p *Pool[T]) ActiveCount() int {
	n := 0
	for _, item := range p.items {
		if item.Active() {
			n++
		}
	}
	return n
}

// Each calls fn for every item in registration order.
func (p *Pool[T]) Each(fn func(T)) {
	for _, item := range p.items {
		fn(item)
	}
}

// EachActive calls fn for every active item in registration order.
func (p *Pool[T]) EachActive(fn func(T)) {
	for _, item := range p.items {
		if item.Active() {
			fn(item)
		}
	}
}
