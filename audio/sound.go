package audio

import "time"

// Sound identifies a feedback cue
type Sound uint8

const (
	SoundNone Sound = iota
	SoundCreate
	SoundDelete
	SoundConnect
	SoundReject
	SoundToggle
)

func (s Sound) String() string {
	switch s {
	case SoundCreate:
		return "create"
	case SoundDelete:
		return "delete"
	case SoundConnect:
		return "connect"
	case SoundReject:
		return "reject"
	case SoundToggle:
		return "toggle"
	}
	return "none"
}

// note is one voice of a cue, played in sequence with the others
type note struct {
	freq     float64
	duration time.Duration
	wave     WaveType
	gain     float64
}

// Attack and release applied to every note
const (
	noteAttack  = 4 * time.Millisecond
	noteRelease = 30 * time.Millisecond
)

var cues = map[Sound][]note{
	SoundCreate: {
		{freq: 660, duration: 60 * time.Millisecond, wave: WaveSine, gain: 0.8},
	},
	SoundDelete: {
		{freq: 330, duration: 50 * time.Millisecond, wave: WaveSine, gain: 0.8},
		{freq: 220, duration: 70 * time.Millisecond, wave: WaveSine, gain: 0.8},
	},
	SoundConnect: {
		{freq: 523.25, duration: 50 * time.Millisecond, wave: WaveSine, gain: 0.7},
		{freq: 783.99, duration: 80 * time.Millisecond, wave: WaveSine, gain: 0.7},
	},
	SoundReject: {
		{freq: 110, duration: 90 * time.Millisecond, wave: WaveSaw, gain: 0.5},
	},
	SoundToggle: {
		{freq: 880, duration: 30 * time.Millisecond, wave: WaveSquare, gain: 0.3},
	},
}

// Duration returns the total length of s
func (s Sound) Duration() time.Duration {
	var d time.Duration
	for _, n := range cues[s] {
		d += n.duration
	}
	return d
}
