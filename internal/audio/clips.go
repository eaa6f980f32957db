// Package audio synthesizes the game's sound clips with beep and plays them
// through the system speaker. Nothing is loaded from disk.
package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/duckstorm/internal/core"
)

// note is one step of a clip. A zero frequency is noise.
type note struct {
	freq float64
	dur  time.Duration
}

var clipNotes = map[core.Clip][]note{
	core.ClipFire:        {{1320, 40 * time.Millisecond}},
	core.ClipEnemyHit:    {{660, 60 * time.Millisecond}},
	core.ClipEnemyDie:    {{440, 80 * time.Millisecond}, {220, 120 * time.Millisecond}},
	core.ClipEnemyAttack: {{180, 120 * time.Millisecond}},
	core.ClipPlayerHit:   {{0, 80 * time.Millisecond}, {110, 120 * time.Millisecond}},
	core.ClipExplosion:   {{0, 300 * time.Millisecond}},
	core.ClipGameStart: {
		{523.25, 100 * time.Millisecond},
		{659.25, 100 * time.Millisecond},
		{783.99, 150 * time.Millisecond},
	},
	core.ClipVictory: {
		{783.99, 120 * time.Millisecond},
		{987.77, 120 * time.Millisecond},
		{1174.66, 120 * time.Millisecond},
		{1567.98, 300 * time.Millisecond},
	},
	core.ClipMenuMusic: {
		{261.63, 250 * time.Millisecond},
		{329.63, 250 * time.Millisecond},
		{392.00, 250 * time.Millisecond},
		{329.63, 250 * time.Millisecond},
	},
}

// Duration returns the length of a clip, zero for unknown clips.
func Duration(c core.Clip) time.Duration {
	var d time.Duration
	for _, n := range clipNotes[c] {
		d += n.dur
	}
	return d
}

// Stream builds a fresh streamer for a clip at the given rate and volume
// (0..1). Every call returns an independent stream.
func Stream(c core.Clip, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := clipNotes[c]
	if !ok {
		return nil, fmt.Errorf("audio: no sound for clip %s", c)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for i, n := range notes {
		var src beep.Streamer
		if n.freq == 0 {
			src = &noise{rng: rand.New(rand.NewSource(int64(c)*31 + int64(i)))}
		} else {
			tone, err := generators.SineTone(rate, n.freq)
			if err != nil {
				return nil, fmt.Errorf("audio: cannot build tone for %s: %w", c, err)
			}
			src = tone
		}
		total := rate.N(n.dur)
		parts = append(parts, &fade{
			streamer: beep.Take(total, src),
			total:    total,
			edge:     rate.N(5 * time.Millisecond),
		})
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// newVolume maps a linear 0..1 volume onto effects.Volume. math.Log2(0) is
// -Inf, so zero becomes silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// noise is an endless white-noise source.
type noise struct {
	rng *rand.Rand
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// fade ramps the first and last edge samples of a fixed-length stream to
// avoid clicks between notes.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
	edge     int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.edge > 0 {
			if f.pos < f.edge {
				vol = float64(f.pos) / float64(f.edge)
			} else if rem := f.total - f.pos; rem < f.edge {
				vol = float64(rem) / float64(f.edge)
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }
