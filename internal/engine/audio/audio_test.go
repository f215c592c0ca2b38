package audio

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
	}

	for _, tt := range tests {
		if got := volumeToExp(tt.vol); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("volumeToExp(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
}

func TestSetVolume(t *testing.T) {
	p := New(2)
	if p.Volume() != 1.0 {
		t.Errorf("volume = %f, want 1.0 (clamped)", p.Volume())
	}

	p.SetVolume(0.5)
	if p.Volume() != 0.5 {
		t.Errorf("volume = %f, want 0.5", p.Volume())
	}

	p.SetVolume(-1.0)
	if p.Volume() != 0.0 {
		t.Errorf("volume = %f, want 0.0 (clamped)", p.Volume())
	}
}

func TestPlayNeedsInit(t *testing.T) {
	if err := New(1).Play(time.Second, true); err == nil {
		t.Error("expected error before Init")
	}
}

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for _, v := range buf[:k] {
			peak = max(peak, math.Abs(v[0]))
		}
		n += k
		if !ok {
			return n, peak
		}
	}
}

func TestSweepLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	for _, rising := range []bool{false, true} {
		n, peak := drain(Sweep(sr, 250*time.Millisecond, rising))
		if n != 2000 {
			t.Errorf("rising=%v: %d samples, want 2000", rising, n)
		}
		if peak > sweepGain+1e-9 || peak == 0 {
			t.Errorf("rising=%v: peak %f, want within (0, %f]", rising, peak, sweepGain)
		}
	}
}

func TestLoadCueResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, Sweep(format.SampleRate, 100*time.Millisecond, true), format); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	p := New(1)
	if err := p.LoadCue(bytes.NewReader(data)); err != nil {
		t.Fatal(err)
	}
	if !p.HasCue() {
		t.Fatal("cue not loaded")
	}
	want := DefaultSampleRate.N(100 * time.Millisecond)
	if got := p.cue.Len(); got < want*95/100 || got > want*105/100 {
		t.Errorf("cue length = %d samples, want about %d", got, want)
	}
}

func TestLoadCueRejectsGarbage(t *testing.T) {
	if err := New(1).LoadCue(bytes.NewReader([]byte("not a wav file"))); err == nil {
		t.Error("expected decode error")
	}
}
