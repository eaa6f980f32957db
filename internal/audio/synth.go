package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/duckstorm/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Synth implements core.Audio on the system speaker. Before Init succeeds
// every call is a no-op, so a machine without a sound device still plays.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	loop        *beep.Ctrl
	loopClip    core.Clip
	volume      float64
	initialized bool
	log         *log.Logger
}

var _ core.Audio = (*Synth)(nil)

// NewSynth creates a synth with a master volume in 0..1.
func NewSynth(volume float64, logger *log.Logger) *Synth {
	return &Synth{
		mixer:  &beep.Mixer{},
		volume: core.ClampF(volume, 0, 1),
		log:    logger,
	}
}

// Init opens the speaker and starts the mixer.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences everything.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.loop = nil
	s.initialized = false
}

// PlayClip mixes a one-shot clip in.
func (s *Synth) PlayClip(c core.Clip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || c == core.ClipNone {
		return
	}
	st, err := Stream(c, sampleRate, s.volume)
	if err != nil {
		s.log.Debug("clip skipped", "clip", c, "err", err)
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// PlayLoop replaces the background loop. Asking for the loop that is
// already playing does not restart it.
func (s *Synth) PlayLoop(c core.Clip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	if s.loop != nil && !s.loop.Paused && s.loopClip == c {
		return
	}
	st, err := Stream(c, sampleRate, s.volume*0.5)
	if err != nil {
		s.log.Debug("loop skipped", "clip", c, "err", err)
		return
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(st)
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len())), Paused: false}

	speaker.Lock()
	if s.loop != nil {
		s.loop.Paused = true
		s.loop.Streamer = nil
	}
	s.mixer.Add(ctrl)
	speaker.Unlock()
	s.loop = ctrl
	s.loopClip = c
}

// StopLoop stops the background loop.
func (s *Synth) StopLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loop == nil {
		return
	}
	speaker.Lock()
	s.loop.Paused = true
	s.loop.Streamer = nil
	speaker.Unlock()
	s.loop = nil
}
