package tone

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-wavecheck/audio"
)

// ErrInsufficientBandwidth reports that the band above audio.MinToneHz is
// too narrow to give every requested tone and channel a distinct frequency.
var ErrInsufficientBandwidth = errors.New("tone: not enough bandwidth for requested tone layout")

// DefaultToleranceHz is the accuracy of integer tone frequencies throughout
// this module: two frequencies at most this far apart count as the same tone.
const DefaultToleranceHz = 1

// Plan assigns every channel an ascending comb of target frequencies inside
// [audio.MinToneHz, SampleRate/2). Tones on a channel are spaced deltaF
// apart; each next channel's comb is shifted up by deltaC = deltaF per
// channel slot, keeping all combs interleaved and disjoint.
type Plan struct {
	SampleRate int

	freqs [][]int
}

// NewPlan computes the tone layout for the given stream parameters.
// Both spacings are integer divisions; if either comes out non-positive the
// layout cannot be represented and ErrInsufficientBandwidth is returned
// rather than a degraded plan.
func NewPlan(channels, sampleRate, tonesPerChannel int) (*Plan, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("tone: channels must be > 0: %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("tone: sample rate must be > 0: %d", sampleRate)
	}
	if tonesPerChannel <= 0 {
		return nil, fmt.Errorf("tone: tones per channel must be > 0: %d", tonesPerChannel)
	}

	deltaF := (sampleRate/2 - audio.MinToneHz) / tonesPerChannel
	deltaC := deltaF / (channels + 1)
	if deltaF <= 0 || deltaC <= 0 {
		return nil, fmt.Errorf("%w: %d tones on %d channels at %d Hz leave spacings %d and %d Hz",
			ErrInsufficientBandwidth, tonesPerChannel, channels, sampleRate, deltaF, deltaC)
	}

	freqs := make([][]int, channels)
	for c := range freqs {
		row := make([]int, tonesPerChannel)
		for i := range row {
			row[i] = audio.MinToneHz + i*deltaF + c*deltaC
		}
		freqs[c] = row
	}

	return &Plan{SampleRate: sampleRate, freqs: freqs}, nil
}

// Channels returns the number of planned channels.
func (p *Plan) Channels() int {
	return len(p.freqs)
}

// TonesPerChannel returns the comb length shared by all channels.
func (p *Plan) TonesPerChannel() int {
	if len(p.freqs) == 0 {
		return 0
	}
	return len(p.freqs[0])
}

// Channel returns channel c's frequencies in ascending order.
func (p *Plan) Channel(c int) []int {
	return p.freqs[c]
}
