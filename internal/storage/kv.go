package storage

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// KV is an integer key-value store. Every backend in this package
// satisfies session.BestScoreStore through it.
type KV interface {
	Get(key string) (value int, ok bool, err error)
	Set(key string, value int) error
}

// Backend names accepted by OpenKV.
const (
	BackendSQLite = "sqlite"
	BackendGdata  = "gdata"
	BackendMemory = "memory"
)

// OpenKV opens the named best-score backend. dbPath is used by the sqlite
// backend and appName by gdata. The returned closer must be called.
func OpenKV(backend, dbPath, appName string) (KV, io.Closer, error) {
	switch strings.ToLower(backend) {
	case "", BackendSQLite:
		st, err := Open(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	case BackendGdata:
		kv, err := OpenGdata(appName)
		if err != nil {
			return nil, nil, err
		}
		return kv, nopCloser{}, nil
	case BackendMemory:
		return NewMemoryKV(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// GdataKV keeps values in the per-user application data directory managed
// by gdata. Each key is a property of one object.
type GdataKV struct {
	m      *gdata.Manager
	object string
}

// OpenGdata opens the data directory of appName.
func OpenGdata(appName string) (*GdataKV, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata for %s: %w", appName, err)
	}
	return &GdataKV{m: m, object: "scores"}, nil
}

// Get reads key. A missing key is not an error.
func (g *GdataKV) Get(key string) (int, bool, error) {
	if !g.m.ObjectPropExists(g.object, key) {
		return 0, false, nil
	}
	data, err := g.m.LoadObjectProp(g.object, key)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, fmt.Errorf("storage: corrupt value for %q: %w", key, err)
	}
	return v, true, nil
}

// Set writes key.
func (g *GdataKV) Set(key string, value int) error {
	if err := g.m.SaveObjectProp(g.object, key, []byte(strconv.Itoa(value))); err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}

// MemoryKV is a process-local KV used by tests and throwaway sessions.
// It is safe for concurrent use.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]int)}
}

func (m *MemoryKV) Get(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
