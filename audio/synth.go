package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates square and saw waves; sine uses beep generators
type oscillator struct {
	freq  float64
	phase float64
	wave  WaveType
	rate  beep.SampleRate
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// tone returns an endless streamer for the given wave
func tone(rate beep.SampleRate, freq float64, wave WaveType) beep.Streamer {
	if wave == WaveSine {
		if s, err := generators.SineTone(rate, freq); err == nil {
			return s
		}
	}
	return &oscillator{freq: freq, wave: wave, rate: rate}
}

// envelope applies linear attack and release to a finite stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack, release int) beep.Streamer {
	if attack+release > total {
		attack, release = total/2, total/2
	}
	return &envelope{streamer: s, attack: attack, release: release, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release {
			vol = float64(remaining) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// renderNote builds one finite, shaped voice
func renderNote(rate beep.SampleRate, n note) beep.Streamer {
	total := rate.N(n.duration)
	shaped := newEnvelope(
		beep.Take(total, tone(rate, n.freq, n.wave)),
		total, rate.N(noteAttack), rate.N(noteRelease),
	)
	return newVolume(shaped, n.gain)
}

// Synthesize returns the finite streamer for s at the given master volume
// Returns nil for SoundNone
func Synthesize(s Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := cues[s]
	if !ok || len(notes) == 0 {
		return nil
	}
	voices := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		voices = append(voices, renderNote(rate, n))
	}
	return newVolume(beep.Seq(voices...), volume)
}

// sampleCount returns the number of samples Synthesize produces for s
func sampleCount(s Sound, rate beep.SampleRate) int {
	total := 0
	for _, n := range cues[s] {
		total += rate.N(n.duration)
	}
	return total
}
