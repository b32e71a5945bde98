// Package audio plays procedurally generated cues for game events.
package audio

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"tilesnake/internal/game"
)

// maxVoices bounds concurrently playing cues so that fast eating does not
// stack players without limit.
const maxVoices = 4

// Subscriber is the event source cues are bound to.
type Subscriber interface {
	Subscribe(t game.EventType, fn game.EventHandler)
}

// System owns the oto context. A nil *System is valid and silent.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	voices int32
	cache  map[Kind][]byte
}

// New opens the audio device. The device becomes usable asynchronously;
// cues requested before it is ready are dropped.
func New(volume float64) (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	a := &System{
		ctx:    ctx,
		ready:  ready,
		volume: clamp01(volume),
		cache:  make(map[Kind][]byte),
	}
	for _, k := range []Kind{SoundEat, SoundTurn, SoundCleared, SoundStart} {
		a.cache[k] = Generate(k)
	}
	return a, nil
}

// Attach binds cues to session events.
func (a *System) Attach(s Subscriber) {
	if a == nil {
		return
	}
	s.Subscribe(game.EventFoodEaten, func(game.Event) { a.Play(SoundEat) })
	s.Subscribe(game.EventDirectionChanged, func(game.Event) { a.Play(SoundTurn) })
	s.Subscribe(game.EventFieldCleared, func(game.Event) { a.Play(SoundCleared) })
}

// Play starts kind without blocking the caller.
func (a *System) Play(kind Kind) {
	if a == nil {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	samples := a.cache[kind]
	if len(samples) == 0 {
		return
	}
	if atomic.AddInt32(&a.voices, 1) > maxVoices {
		atomic.AddInt32(&a.voices, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&a.voices, -1)
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
