// Package audio describes the PCM streams exchanged between the wavegen and
// wavecheck tools: channel layout, sample format, duration, and the tone
// count the stream is expected to carry. It also holds the floors both tools
// agree on, so that a generated file is always analyzable.
package audio

import (
	"fmt"
	"io"
)

const (
	// MinToneHz is the lowest frequency ever planned or reported. Tones
	// below it fall outside the analyzed band.
	MinToneHz = 200

	// MinDurationSec is the shortest capture that still fits at least one
	// analysis window after the start/end margins are skipped.
	MinDurationSec = 3
)

// Format describes one PCM stream. The generator fills every field from its
// arguments; the decoder fills Channels, SampleRate, BitsPerSample,
// SamplesPerChannel, and DurationSec from the container header, leaving
// TonesPerChannel to the caller.
type Format struct {
	Channels          int
	SampleRate        int
	BitsPerSample     int
	DurationSec       int
	TonesPerChannel   int
	SamplesPerChannel int
}

// NewFormat builds a generation-side Format, deriving the per-channel sample
// count from the duration.
func NewFormat(channels, sampleRate, bits, durationSec, tonesPerChannel int) Format {
	return Format{
		Channels:          channels,
		SampleRate:        sampleRate,
		BitsPerSample:     bits,
		DurationSec:       durationSec,
		TonesPerChannel:   tonesPerChannel,
		SamplesPerChannel: sampleRate * durationSec,
	}
}

// Validate checks a generation-side Format. Decoded formats are validated by
// the container codec instead, which accepts a wider bit-depth set.
func (f Format) Validate() error {
	if f.Channels <= 0 {
		return fmt.Errorf("audio: channels must be > 0: %d", f.Channels)
	}
	if f.SampleRate < 2*MinToneHz {
		return fmt.Errorf("audio: sample rate must be >= %d Hz: %d", 2*MinToneHz, f.SampleRate)
	}
	if f.BitsPerSample != 16 && f.BitsPerSample != 32 {
		return fmt.Errorf("audio: bits per sample must be 16 or 32: %d", f.BitsPerSample)
	}
	if f.DurationSec < MinDurationSec {
		return fmt.Errorf("audio: duration must be >= %d s: %d", MinDurationSec, f.DurationSec)
	}
	if f.TonesPerChannel <= 0 {
		return fmt.Errorf("audio: tones per channel must be > 0: %d", f.TonesPerChannel)
	}
	return nil
}

// BytesPerSample returns the storage size of one sample.
func (f Format) BytesPerSample() int {
	return f.BitsPerSample / 8
}

// BlockAlign returns the size of one interleaved frame in bytes.
func (f Format) BlockAlign() int {
	return f.Channels * f.BytesPerSample()
}

// ByteRate returns the stream data rate in bytes per second.
func (f Format) ByteRate() int {
	return f.SampleRate * f.BlockAlign()
}

// DataSize returns the size of the interleaved PCM payload in bytes.
func (f Format) DataSize() int {
	return f.SamplesPerChannel * f.BlockAlign()
}

// Describe writes a one-field-per-line parameter summary, the form both
// tools log to stderr before doing any work. The tone line is omitted when
// no tone count is set.
func (f Format) Describe(w io.Writer) {
	fmt.Fprintf(w, "* Channels: %d\n", f.Channels)
	fmt.Fprintf(w, "* Sample rate: %d Hz\n", f.SampleRate)
	fmt.Fprintf(w, "* Bits per sample: S%d_LE\n", f.BitsPerSample)
	fmt.Fprintf(w, "* Duration: %d seconds\n", f.DurationSec)
	if f.TonesPerChannel > 0 {
		fmt.Fprintf(w, "* Frequencies per channel: %d\n", f.TonesPerChannel)
	}
}
