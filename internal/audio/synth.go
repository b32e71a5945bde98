package audio

import (
	"encoding/binary"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 4 * ChannelCount // float32 LE per channel
)

// Kind identifies a sound cue.
type Kind int

const (
	SoundEat Kind = iota
	SoundTurn
	SoundCleared
	SoundStart
)

// Generate renders kind as interleaved stereo float32 LE samples.
func Generate(kind Kind) []byte {
	switch kind {
	case SoundEat:
		return encode(eatCue())
	case SoundTurn:
		return encode(turnCue())
	case SoundCleared:
		return encode(arpeggio([]float64{440, 554.37, 659.25, 880, 1108.73}, 0.09))
	case SoundStart:
		return encode(arpeggio([]float64{329.63, 440, 659.25}, 0.07))
	}
	return nil
}

// envelope is an ADSR shape; attack, decay and release are fractions of
// the note length.
type envelope struct {
	attack, decay, sustain, release float64
}

func (e envelope) at(p float64) float64 {
	switch {
	case p < e.attack:
		return p / e.attack
	case p < e.attack+e.decay:
		return 1 - (p-e.attack)/e.decay*(1-e.sustain)
	case p < 1-e.release:
		return e.sustain
	}
	return e.sustain * (1 - (p-(1-e.release))/e.release)
}

// saturate folds peaks back under 1 without a hard clip.
func saturate(x float64) float64 {
	switch {
	case x > 1:
		return 1 - 0.5/x
	case x < -1:
		return -1 - 0.5/x
	}
	return x - x*x*x/3
}

// fmTone is a two-operator FM sine at time t.
func fmTone(t, carrier, ratio, index float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * ratio * t)
	return math.Sin(2*math.Pi*carrier*t + index*mod)
}

// render fills seconds of mono signal from fn(t, progress).
func render(seconds float64, fn func(t, p float64) float64) []float64 {
	n := int(seconds * SampleRate)
	out := make([]float64, n)
	for i := range out {
		out[i] = fn(float64(i)/SampleRate, float64(i)/float64(n))
	}
	return out
}

// encode saturates a mono mix and duplicates it onto every channel.
func encode(mix []float64) []byte {
	buf := make([]byte, len(mix)*frameBytes)
	for i, s := range mix {
		bits := math.Float32bits(float32(saturate(s)))
		for ch := 0; ch < ChannelCount; ch++ {
			binary.LittleEndian.PutUint32(buf[i*frameBytes+ch*4:], bits)
		}
	}
	return buf
}

// eatCue is a short FM pop rising in pitch.
func eatCue() []float64 {
	env := envelope{attack: 0.01, decay: 0.5, release: 0.1}
	return render(0.09, func(t, p float64) float64 {
		a := env.at(p)
		freq := 480 + 720*p
		return fmTone(t, freq, 2, 3.5*a)*a*0.5 + math.Sin(2*math.Pi*freq*3*t)*a*0.06
	})
}

// turnCue is a faint falling tick.
func turnCue() []float64 {
	env := envelope{attack: 0.004, decay: 0.55, release: 0.1}
	return render(0.04, func(t, p float64) float64 {
		return fmTone(t, 1400-700*p, 1, 0.6) * env.at(p) * 0.18
	})
}

// arpeggio starts each note step seconds after the previous one and lets
// all of them ring out together.
func arpeggio(notes []float64, step float64) []float64 {
	env := envelope{attack: 0.003, decay: 0.65, sustain: 0.04, release: 0.28}
	offset := int(step * SampleRate)
	mix := make([]float64, len(notes)*offset+int(0.25*SampleRate))
	for k, freq := range notes {
		start := k * offset
		n := len(mix) - start
		for j := 0; j < n; j++ {
			t := float64(start+j) / SampleRate
			a := env.at(float64(j) / float64(n))
			mix[start+j] += fmTone(t, freq, 3.5, 5.5*a)*a*0.28 + math.Sin(2*math.Pi*freq*2*t)*a*0.07
		}
	}
	return mix
}
