package gameloop

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate the speaker runs at. Decoded sounds are resampled
// to it.
const SampleRate = beep.SampleRate(44100)

// SoundBank plays resource sounds through a single mixer on the speaker.
// It implements SoundPlayer.
type SoundBank struct {
	mu          sync.Mutex
	res         *Resources
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	logger      *log.Logger
}

// NewSoundBank creates a bank that resolves keys through res. volume is in
// beep's exponential units: 0 is unchanged, -1 halves, 1 doubles.
func NewSoundBank(res *Resources, volume float64) *SoundBank {
	return &SoundBank{
		res:    res,
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: res.logger,
	}
}

// Init opens the audio device and starts the mixer. Calling it again is a
// no-op.
func (b *SoundBank) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (b *SoundBank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.initialized = false
}

// SetMuted silences sounds started after the call.
func (b *SoundBank) SetMuted(muted bool) {
	b.mu.Lock()
	b.muted = muted
	b.mu.Unlock()
}

// PlaySound starts the sound stored under key. Unknown keys play the
// fallback tone. Does nothing before Init.
func (b *SoundBank) PlaySound(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	buf := b.res.Sound(key)
	s := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   b.volume,
		Silent:   b.muted,
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// bounceTone is a sine whose amplitude decays exponentially to silence.
type bounceTone struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
}

// NewBounceTone returns a short decaying sine at freq Hz lasting d. It is
// the sound played when a resource cannot be loaded.
func NewBounceTone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return &bounceTone{sr: sr, freq: freq, total: sr.N(d)}
}

func (g *bounceTone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 30)
		v := 0.4 * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *bounceTone) Err() error { return nil }
