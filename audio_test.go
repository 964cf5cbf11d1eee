package gameloop

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestBounceTone(t *testing.T) {
	samples := drain(NewBounceTone(SampleRate, 660, 150*time.Millisecond))
	if want := SampleRate.N(150 * time.Millisecond); len(samples) != want {
		t.Fatalf("len = %d, want %d", len(samples), want)
	}
	peakHead, peakTail := 0.0, 0.0
	for i, s := range samples {
		if math.IsNaN(s[0]) || math.Abs(s[0]) > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v, want finite mono in [-1, 1]", i, s)
		}
		if i < len(samples)/10 {
			peakHead = max(peakHead, math.Abs(s[0]))
		} else if i > len(samples)*9/10 {
			peakTail = max(peakTail, math.Abs(s[0]))
		}
	}
	if peakTail >= peakHead {
		t.Errorf("tail peak %v >= head peak %v, want decay", peakTail, peakHead)
	}
}

func TestBounceToneEnds(t *testing.T) {
	s := NewBounceTone(SampleRate, 440, time.Millisecond)
	drain(s)
	if n, ok := s.Stream(make([][2]float64, 8)); n != 0 || ok {
		t.Errorf("Stream after end = (%d, %v), want (0, false)", n, ok)
	}
	if s.Err() != nil {
		t.Errorf("Err = %v", s.Err())
	}
}

func TestDecodeSoundUnsupported(t *testing.T) {
	_, err := decodeSound("beep.ogg", io.NopCloser(strings.NewReader("")))
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("err = %v, want unsupported format", err)
	}
}

func TestResourcesSoundFallback(t *testing.T) {
	r := NewResources(t.TempDir(), log.New(io.Discard))
	buf := r.Sound("missing.wav")
	if buf.Len() == 0 {
		t.Fatal("fallback buffer is empty")
	}
	if buf.Len() != SampleRate.N(fallbackToneDuration) {
		t.Errorf("fallback len = %d, want %d", buf.Len(), SampleRate.N(fallbackToneDuration))
	}
	if r.Sound("missing.wav") != buf {
		t.Error("second lookup should hit the cache")
	}
	if r.Sound("") == nil {
		t.Error("empty key should yield the fallback tone")
	}
}

func TestResourcesSoundWavResampled(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "tone.wav"))
	if err != nil {
		t.Fatal(err)
	}
	const srcRate = beep.SampleRate(22050)
	format := beep.Format{SampleRate: srcRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, NewBounceTone(srcRate, 440, 100*time.Millisecond), format); err != nil {
		t.Fatalf("wav.Encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	r := NewResources(dir, log.New(io.Discard))
	buf := r.Sound("tone.wav")
	want := SampleRate.N(100 * time.Millisecond)
	if got := buf.Len(); got < want-10 || got > want+10 {
		t.Errorf("len = %d, want about %d after resampling", got, want)
	}
	if buf.Format().SampleRate != SampleRate {
		t.Errorf("SampleRate = %v, want %v", buf.Format().SampleRate, SampleRate)
	}
}

func TestResourcesPath(t *testing.T) {
	r := NewResources("assets", nil)
	if got := r.path("a.png"); got != filepath.Join("assets", "a.png") {
		t.Errorf("path = %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "x", "a.png")
	if got := r.path(abs); got != abs {
		t.Errorf("absolute path = %q, want unchanged", got)
	}
	if got := NewResources("", nil).path("a.png"); got != "a.png" {
		t.Errorf("empty dir path = %q", got)
	}
}

func TestFallbackColorRange(t *testing.T) {
	r := NewResources("", nil)
	for range 100 {
		c := r.fallbackColor()
		for _, ch := range []float64{c.R, c.G, c.B} {
			if ch < 0.25 || ch > 1 {
				t.Fatalf("channel %v out of [0.25, 1]", ch)
			}
		}
		if c.A != 1 {
			t.Fatalf("alpha = %v, want 1", c.A)
		}
	}
}

func TestSoundBankBeforeInit(t *testing.T) {
	r := NewResources("", log.New(io.Discard))
	b := NewSoundBank(r, 0)
	b.PlaySound("anything.wav")
	b.SetMuted(true)
	b.Close()
	if len(r.sounds) != 0 {
		t.Errorf("sounds loaded before Init: %d", len(r.sounds))
	}
}
