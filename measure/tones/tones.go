// Package tones detects the discrete tones present in a captured waveform.
//
// A Detector slices the capture into half-overlapping power-of-two windows,
// takes the magnitude spectrum of each, and records one frequency per run of
// bins rising above an adaptive threshold of half the in-band maximum. The
// per-window results merge under a small tolerance, so a tone seen by many
// windows is still reported once. A noise floor keeps silence and idle
// channels from producing detections.
package tones

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-wavecheck/audio"
	"github.com/cwbudde/algo-wavecheck/dsp/core"
	"github.com/cwbudde/algo-wavecheck/dsp/spectrum"
	"github.com/cwbudde/algo-wavecheck/dsp/window"
	"github.com/cwbudde/algo-wavecheck/tone"
)

const (
	// DefaultMaxTones caps how many distinct tones one scan reports.
	DefaultMaxTones = 64

	// DefaultNoiseFloor is the smallest adaptive threshold treated as
	// signal. Windows whose in-band maximum stays below twice this value
	// count as silent.
	DefaultNoiseFloor = 5.0
)

// Config parametrizes a Detector. The zero value of every field except
// SampleRate selects the default the analyzer tool runs with.
type Config struct {
	// SampleRate of the waveform in Hz. Required.
	SampleRate int

	// Window applied before the transform. Defaults to Hann.
	Window window.Type

	// MinFreqHz bounds the analyzed band from below. Defaults to
	// audio.MinToneHz.
	MinFreqHz int

	// NoiseFloor is the minimum usable threshold. Defaults to
	// DefaultNoiseFloor.
	NoiseFloor float64

	// MaxTones caps the detected list. Defaults to DefaultMaxTones.
	MaxTones int

	// ToleranceHz merges detections closer than this. Defaults to
	// tone.DefaultToleranceHz.
	ToleranceHz int
}

// Detection accumulates what a scan saw on one channel.
type Detection struct {
	// Freqs holds the distinct detected frequencies in order of appearance.
	Freqs []int

	// Threshold is the largest per-window threshold that beat the noise
	// floor, 0 when every window was silent.
	Threshold float64

	// Windows counts the analysis windows taken from the capture.
	Windows int

	// Dropped counts detections discarded once Freqs reached MaxTones.
	Dropped int
}

// Detector owns the transform plan and scratch buffers for one window
// length. Buffers are built on first use and rebuilt when the length
// changes, so one detector serves every channel of a capture.
type Detector struct {
	cfg Config

	winLen    int
	coeffs    []float64
	plan      *algofft.Plan[complex128]
	input     []complex128
	output    []complex128
	scratch   []float64
	magnitude []float64
}

// NewDetector fills config defaults and returns a detector with no scratch
// allocated yet.
func NewDetector(cfg Config) (*Detector, error) {
	cfg = normalizeConfig(cfg)
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("tones: sample rate must be > 0: %d", cfg.SampleRate)
	}

	return &Detector{cfg: cfg}, nil
}

// Analyze detects the tones present in one window. The window length must be
// a power of two. The returned threshold is half the in-band magnitude
// maximum, or 0 for a window below the noise floor. The input is never
// mutated.
func (d *Detector) Analyze(win []float64) ([]int, float64, error) {
	peaks, threshold, _, err := d.analyzeWindow(win)
	return peaks, threshold, err
}

// Scan slides half-overlapping windows across wave and merges the per-window
// detections. The window length is twice the smallest power of two covering
// half a second, and half a second at each end of the capture is skipped. A
// capture too short for a single window yields an empty Detection.
func (d *Detector) Scan(wave []float64) (Detection, error) {
	slide := nextPowerOf2(d.cfg.SampleRate / 2)
	winLen := 2 * slide
	offset := d.cfg.SampleRate / 2

	var det Detection

	for i := offset; i+winLen < len(wave)-offset; i += slide {
		peaks, threshold, dropped, err := d.analyzeWindow(wave[i : i+winLen])
		if err != nil {
			return Detection{}, err
		}

		det.Windows++
		det.Dropped += dropped

		if threshold > det.Threshold {
			det.Threshold = threshold
		}

		for _, f := range peaks {
			var drop bool

			det.Freqs, drop = appendTone(det.Freqs, f, d.cfg.ToleranceHz, d.cfg.MaxTones)
			if drop {
				det.Dropped++
			}
		}
	}

	return det, nil
}

func (d *Detector) analyzeWindow(win []float64) ([]int, float64, int, error) {
	if err := d.ensure(len(win)); err != nil {
		return nil, 0, 0, err
	}

	core.CopyInto(d.scratch, win)

	if err := window.ApplyCoefficientsInPlace(d.scratch, d.coeffs); err != nil {
		return nil, 0, 0, err
	}

	for i, v := range d.scratch {
		d.input[i] = complex(v, 0)
	}

	if err := d.plan.Forward(d.output, d.input); err != nil {
		return nil, 0, 0, fmt.Errorf("tones: forward transform: %w", err)
	}

	spectrum.MagnitudeInto(d.magnitude, d.output[:d.winLen/2+1])

	peaks, threshold, dropped := d.extractPeaks()

	return peaks, threshold, dropped, nil
}

// extractPeaks walks the in-band bins left to right and closes one candidate
// per contiguous run above the threshold. A run still open at the band edge
// is discarded.
func (d *Detector) extractPeaks() ([]int, float64, int) {
	n := d.winLen
	minBin := d.cfg.MinFreqHz * n / d.cfg.SampleRate
	limit := n / 2 // Nyquist bin excluded

	maxMag := 0.0
	for bin := minBin; bin < limit; bin++ {
		if d.magnitude[bin] > maxMag {
			maxMag = d.magnitude[bin]
		}
	}

	threshold := maxMag / 2
	if threshold < d.cfg.NoiseFloor {
		return nil, 0, 0
	}

	var (
		peaks   []int
		dropped int
		inRun   bool
		peakBin int
		peakVal float64
	)

	for bin := minBin; bin < limit; bin++ {
		v := d.magnitude[bin]

		switch {
		case v > threshold && !inRun:
			inRun = true
			peakBin = bin
			peakVal = v
		case v > threshold && v > peakVal:
			peakBin = bin
			peakVal = v
		case v <= threshold && inRun:
			inRun = false

			var drop bool

			peaks, drop = appendTone(peaks, d.cfg.SampleRate*peakBin/n, d.cfg.ToleranceHz, d.cfg.MaxTones)
			if drop {
				dropped++
			}
		}
	}

	return peaks, threshold, dropped
}

func (d *Detector) ensure(n int) error {
	if n == d.winLen && d.plan != nil {
		return nil
	}

	if n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("tones: window length must be a power of two: %d", n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return fmt.Errorf("tones: %d point transform: %w", n, err)
	}

	d.plan = plan
	d.coeffs = window.Generate(d.cfg.Window, n, window.WithPeriodic())
	d.input = core.EnsureComplexLen(d.input, n)
	d.output = core.EnsureComplexLen(d.output, n)
	d.scratch = core.EnsureLen(d.scratch, n)
	d.magnitude = core.EnsureLen(d.magnitude, n/2+1)
	d.winLen = n

	return nil
}

// appendTone adds f to freqs unless an entry within tol Hz already exists or
// the list holds max entries. The second return reports a capacity drop.
func appendTone(freqs []int, f, tol, max int) ([]int, bool) {
	if tone.Contains(freqs, f, tol) {
		return freqs, false
	}

	if len(freqs) >= max {
		return freqs, true
	}

	return append(freqs, f), false
}

func normalizeConfig(cfg Config) Config {
	if cfg.Window == 0 {
		cfg.Window = window.TypeHann
	}

	if cfg.MinFreqHz <= 0 {
		cfg.MinFreqHz = audio.MinToneHz
	}

	if cfg.NoiseFloor <= 0 {
		cfg.NoiseFloor = DefaultNoiseFloor
	}

	if cfg.MaxTones <= 0 {
		cfg.MaxTones = DefaultMaxTones
	}

	if cfg.ToleranceHz <= 0 {
		cfg.ToleranceHz = tone.DefaultToleranceHz
	}

	return cfg
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
