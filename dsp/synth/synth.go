// Package synth renders deterministic multi-tone test waveforms from a tone
// plan. All tones share unit amplitude and zero phase; the sum is scaled by
// the tone count so the waveform stays inside [-1, 1] regardless of how many
// tones a channel carries.
package synth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-wavecheck/dsp/buffer"
	"github.com/cwbudde/algo-wavecheck/dsp/core"
	"github.com/cwbudde/algo-wavecheck/tone"
)

// MultitoneInto overwrites dst with the normalized sum of sinusoids at the
// given frequencies. The length of dst sets the sample count.
func MultitoneInto(dst []float64, freqs []int, sampleRate int) error {
	if len(freqs) == 0 {
		return fmt.Errorf("synth: at least one frequency required")
	}
	if sampleRate <= 0 {
		return fmt.Errorf("synth: sample rate must be > 0: %d", sampleRate)
	}

	core.Zero(dst)

	for _, f := range freqs {
		step := 2 * math.Pi * float64(f) / float64(sampleRate)
		for s := range dst {
			dst[s] += math.Sin(step * float64(s))
		}
	}

	vecmath.ScaleBlock(dst, dst, 1/float64(len(freqs)))

	return nil
}

// Multitone renders a normalized multi-tone waveform into a new slice.
func Multitone(freqs []int, sampleRate, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("synth: samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	if err := MultitoneInto(out, freqs, sampleRate); err != nil {
		return nil, err
	}

	return out, nil
}

// Render synthesizes every channel of the plan into a freshly allocated
// matrix with the given per-channel sample count.
func Render(p *tone.Plan, samples int) (*buffer.Matrix, error) {
	m, err := buffer.NewMatrix(p.Channels(), samples)
	if err != nil {
		return nil, err
	}

	for c := 0; c < p.Channels(); c++ {
		if err := MultitoneInto(m.Channel(c), p.Channel(c), p.SampleRate); err != nil {
			return nil, err
		}
	}

	return m, nil
}
