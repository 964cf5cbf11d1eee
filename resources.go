package gameloop

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	fallbackToneFreq     = 660
	fallbackToneDuration = 150 * time.Millisecond
)

// Resources caches textures and sounds by key, where a key is a file path
// relative to Dir. Anything that fails to load is replaced by a generated
// stand-in (a solid random-color texture, the bounce tone) so a missing
// asset never stops the game.
//
// Resources is used from the game goroutine only.
type Resources struct {
	// Dir is prepended to relative keys.
	Dir string

	textures map[string]*ebiten.Image
	sounds   map[string]*beep.Buffer
	rng      *rand.Rand
	logger   *log.Logger
}

// NewResources creates an empty cache. logger may be nil.
func NewResources(dir string, logger *log.Logger) *Resources {
	if logger == nil {
		logger = log.Default()
	}
	return &Resources{
		Dir:      dir,
		textures: make(map[string]*ebiten.Image),
		sounds:   make(map[string]*beep.Buffer),
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger:   logger,
	}
}

func (r *Resources) path(key string) string {
	if r.Dir == "" || filepath.IsAbs(key) {
		return key
	}
	return filepath.Join(r.Dir, key)
}

// Texture returns the image for key, loading it on first use. w and h size
// the stand-in when key is empty or cannot be decoded; non-positive sizes
// use 100x100.
func (r *Resources) Texture(key string, w, h int) *ebiten.Image {
	if img, ok := r.textures[key]; ok {
		return img
	}
	var img *ebiten.Image
	if key != "" {
		var err error
		img, _, err = ebitenutil.NewImageFromFile(r.path(key))
		if err != nil {
			r.logger.Warn("texture fallback", "key", key, "err", err)
			img = nil
		}
	}
	if img == nil {
		if w <= 0 || h <= 0 {
			w, h = defaultTextureSize, defaultTextureSize
		}
		img = ebiten.NewImage(w, h)
		img.Fill(r.fallbackColor().RGBA())
	}
	r.textures[key] = img
	return img
}

// fallbackColor picks an opaque color with every channel in [0.25, 1] so
// stand-ins stay visible on a dark background.
func (r *Resources) fallbackColor() Color {
	ch := func() float64 { return 0.25 + 0.75*r.rng.Float64() }
	return Color{ch(), ch(), ch(), 1}
}

// Sound returns the buffered samples for key at SampleRate, loading on first
// use. Empty keys, missing files and undecodable data yield the bounce tone.
func (r *Resources) Sound(key string) *beep.Buffer {
	if buf, ok := r.sounds[key]; ok {
		return buf
	}
	buf, err := r.loadSound(key)
	if err != nil {
		if key != "" {
			r.logger.Warn("sound fallback", "key", key, "err", err)
		}
		buf = toneBuffer()
	}
	r.sounds[key] = buf
	return buf
}

func (r *Resources) loadSound(key string) (*beep.Buffer, error) {
	if key == "" {
		return nil, fmt.Errorf("gameloop: sound: empty key")
	}
	f, err := os.Open(r.path(key))
	if err != nil {
		return nil, fmt.Errorf("gameloop: sound %s: %w", key, err)
	}
	defer f.Close()
	return decodeSound(key, f)
}

// decodeSound picks a decoder by file extension and buffers the whole
// stream, resampled to SampleRate.
func decodeSound(key string, rc io.ReadCloser) (*beep.Buffer, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(key)); ext {
	case ".wav":
		s, format, err = wav.Decode(rc)
	case ".mp3":
		s, format, err = mp3.Decode(rc)
	default:
		return nil, fmt.Errorf("gameloop: sound %s: unsupported format %q", key, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("gameloop: sound %s: %w", key, err)
	}
	defer s.Close()

	out := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(out)
	var src beep.Streamer = s
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, s)
	}
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("gameloop: sound %s: %w", key, err)
	}
	return buf, nil
}

func toneBuffer() *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(NewBounceTone(SampleRate, fallbackToneFreq, fallbackToneDuration))
	return buf
}
