// Package telemetry records per-window game statistics as CSV.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// Counters are cumulative event counts of one game.
type Counters struct {
	Spawns       int
	Kills        int
	Kamikazes    int
	Shots        int
	WavesCleared int
	Escalations  int
}

// Sub returns c - o field by field.
func (c Counters) Sub(o Counters) Counters {
	return Counters{
		Spawns:       c.Spawns - o.Spawns,
		Kills:        c.Kills - o.Kills,
		Kamikazes:    c.Kamikazes - o.Kamikazes,
		Shots:        c.Shots - o.Shots,
		WavesCleared: c.WavesCleared - o.WavesCleared,
		Escalations:  c.Escalations - o.Escalations,
	}
}

// Snapshot is the game state sampled at the end of a window.
type Snapshot struct {
	State   string
	Score   int
	Best    int
	Health  float64
	Level   int
	MinPop  int
	MaxPop  int
	Alive   int
	Counter Counters
}

// Window is one CSV row.
type Window struct {
	Index        int     `csv:"window"`
	EndSec       float64 `csv:"end_s"`
	State        string  `csv:"state"`
	Score        int     `csv:"score"`
	Best         int     `csv:"best"`
	Health       float64 `csv:"health"`
	Level        int     `csv:"level"`
	MinPop       int     `csv:"min_pop"`
	MaxPop       int     `csv:"max_pop"`
	Alive        int     `csv:"alive"`
	Spawns       int     `csv:"spawns"`
	Kills        int     `csv:"kills"`
	Kamikazes    int     `csv:"kamikazes"`
	Shots        int     `csv:"shots"`
	WavesCleared int     `csv:"waves_cleared"`
	Escalations  int     `csv:"escalations"`
}

// Writer appends windows to a CSV stream, writing the header once.
type Writer struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewWriter writes CSV rows to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Create opens path for writing, creating parent directories.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", path, err)
	}
	return &Writer{w: f, closer: f}, nil
}

// Write appends one window.
func (w *Writer) Write(win Window) error {
	records := []Window{win}
	if !w.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, w.w); err != nil {
			return fmt.Errorf("telemetry: writing window: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.w); err != nil {
		return fmt.Errorf("telemetry: writing window: %w", err)
	}
	return nil
}

// Close closes the underlying file, if any.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// Recorder turns a stream of snapshots into fixed-length windows.
type Recorder struct {
	w      *Writer
	every  time.Duration
	next   time.Duration
	last   Counters
	index  int
	latest Snapshot
	at     time.Duration
	ended  time.Duration // end of the last written window
}

// NewRecorder emits a window to w every period of game time.
func NewRecorder(w *Writer, every time.Duration) *Recorder {
	if every <= 0 {
		every = time.Second
	}
	return &Recorder{w: w, every: every, next: every}
}

// Observe records the snapshot taken at now and writes every window that
// ended at or before now.
func (r *Recorder) Observe(now time.Duration, snap Snapshot) error {
	r.latest, r.at = snap, now
	for now >= r.next {
		if err := r.emit(r.next, snap); err != nil {
			return err
		}
		r.next += r.every
	}
	return nil
}

// Flush writes a final partial window if anything happened since the last
// one.
func (r *Recorder) Flush() error {
	if r.at <= r.ended {
		return nil
	}
	return r.emit(r.at, r.latest)
}

// Windows returns the number of windows written.
func (r *Recorder) Windows() int {
	return r.index
}

func (r *Recorder) emit(end time.Duration, snap Snapshot) error {
	d := snap.Counter.Sub(r.last)
	r.last = snap.Counter
	win := Window{
		Index:        r.index,
		EndSec:       end.Seconds(),
		State:        snap.State,
		Score:        snap.Score,
		Best:         snap.Best,
		Health:       snap.Health,
		Level:        snap.Level,
		MinPop:       snap.MinPop,
		MaxPop:       snap.MaxPop,
		Alive:        snap.Alive,
		Spawns:       d.Spawns,
		Kills:        d.Kills,
		Kamikazes:    d.Kamikazes,
		Shots:        d.Shots,
		WavesCleared: d.WavesCleared,
		Escalations:  d.Escalations,
	}
	r.index++
	r.ended = end
	return r.w.Write(win)
}
