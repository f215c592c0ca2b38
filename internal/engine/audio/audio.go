// Package audio plays sound cues alongside window animations.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Sweep pitch range in Hz.
const (
	sweepLow  = 220.0
	sweepHigh = 660.0
	sweepGain = 0.3
)

// Player mixes animation cues onto the speaker.
type Player struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0

	mixer *beep.Mixer
	cue   *beep.Buffer // nil plays a synthesized sweep
}

// New creates a player at the given volume.
func New(volume float64) *Player {
	return &Player{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}

// Initialized reports whether Init succeeded.
func (p *Player) Initialized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (p *Player) Volume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volume
}

// LoadCue decodes a WAV cue played instead of the synthesized sweep.
func (p *Player) LoadCue(r io.Reader) error {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		s = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: p.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)

	p.mu.Lock()
	p.cue = buf
	p.mu.Unlock()
	return nil
}

// HasCue reports whether a WAV cue is loaded.
func (p *Player) HasCue() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cue != nil
}

// Play starts the cue for an animation lasting d. Rising sweeps accompany
// appearing windows.
func (p *Player) Play(d time.Duration, rising bool) error {
	p.mu.RLock()
	initialized, vol, cue := p.initialized, p.volume, p.cue
	p.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}

	var s beep.Streamer
	if cue != nil {
		s = cue.Streamer(0, cue.Len())
	} else {
		s = Sweep(p.sampleRate, d, rising)
	}

	speaker.Lock()
	p.mixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToExp(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// Sweep returns a sine tone gliding through the cue pitch range over d,
// faded in and out.
func Sweep(sr beep.SampleRate, d time.Duration, rising bool) beep.Streamer {
	n := sr.N(d)
	from, to := sweepHigh, sweepLow
	if rising {
		from, to = to, from
	}

	var phase float64
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= n {
			return 0, false
		}
		k := 0
		for ; k < len(samples) && i < n; k, i = k+1, i+1 {
			t := float64(i) / float64(n)
			phase += 2 * math.Pi * (from + (to-from)*t) / float64(sr)
			v := sweepGain * math.Sin(math.Pi*t) * math.Sin(phase)
			samples[k] = [2]float64{v, v}
		}
		return k, true
	})
}

// volumeToExp converts a 0-1 volume to the base 2 exponent effects.Volume
// expects.
func volumeToExp(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
