package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// SampleRate used for the speaker and all cues
const SampleRate = beep.SampleRate(44100)

// Options configures the player
type Options struct {
	Enabled bool
	Volume  float64 // 0..1
}

// Player plays short feedback cues through the system speaker
// A player whose speaker failed to open stays silent; Play never blocks
type Player struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
	muted       atomic.Bool
	logger      *log.Logger

	// play is swapped in tests to capture streamers
	play func(beep.Streamer)
}

// NewPlayer opens the speaker when enabled
// Failure is logged and yields a silent player
func NewPlayer(opts Options, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		volume: clampVolume(opts.Volume),
		logger: logger,
		play:   func(s beep.Streamer) { speaker.Play(s) },
	}
	if !opts.Enabled {
		return p
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		logger.Printf("WARN: audio disabled: %v", errors.Wrap(err, "speaker init"))
		return p
	}
	p.initialized = true
	return p
}

// Silent returns a player that never produces sound
func Silent() *Player {
	return &Player{play: func(beep.Streamer) {}, logger: log.Default()}
}

// Play queues s and reports whether it was sent to the speaker
func (p *Player) Play(s Sound) bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted.Load() {
		return false
	}
	streamer := Synthesize(s, SampleRate, p.volume)
	if streamer == nil {
		return false
	}
	p.play(streamer)
	return true
}

// ToggleMute flips the mute flag and returns the new state
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return muted
}

// IsMuted reports the mute flag
func (p *Player) IsMuted() bool { return p.muted.Load() }

// Enabled reports whether the speaker was opened
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close stops playback and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
