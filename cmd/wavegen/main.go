// Command wavegen writes a WAV audio file carrying known sine frequencies to
// the standard output.
//
// Usage:
//
//	wavegen [-c channels] [-r rate] [-b bits] [-d seconds] [-f tones] > play.wav
//
// Every channel carries its own set of tones, spread across the usable band
// by the same plan the analyzer rebuilds when asked to verify a capture.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-wavecheck/audio"
	"github.com/cwbudde/algo-wavecheck/dsp/pcm"
	"github.com/cwbudde/algo-wavecheck/dsp/synth"
	"github.com/cwbudde/algo-wavecheck/tone"
	"github.com/cwbudde/algo-wavecheck/wav"
)

const (
	defaultChannels = 2
	defaultRate     = 48000
	defaultBits     = 32
	defaultDuration = 10
	defaultTones    = 4
)

func main() {
	channels := flag.Int("c", defaultChannels, "number of channels")
	rate := flag.Int("r", defaultRate, "sampling rate in Hz")
	bits := flag.Int("b", defaultBits, "bits per sample (16 or 32)")
	duration := flag.Int("d", defaultDuration, "duration in seconds")
	tonesPerChan := flag.Int("f", defaultTones, "number of frequencies per channel")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unknown extra arguments: %s\n", flag.Args()[0])
		flag.Usage()
		os.Exit(1)
	}

	f := audio.NewFormat(*channels, *rate, *bits, *duration, *tonesPerChan)
	if err := f.Validate(); err != nil {
		die(err)
	}

	fmt.Fprintln(os.Stderr, "Generating audio file with following parameters:")
	f.Describe(os.Stderr)
	fmt.Fprintln(os.Stderr)

	p, err := tone.NewPlan(f.Channels, f.SampleRate, f.TonesPerChannel)
	if err != nil {
		die(err)
	}

	logFreqs(os.Stderr, p)

	m, err := synth.Render(p, f.SamplesPerChannel)
	if err != nil {
		die(err)
	}

	data, err := pcm.Interleave(m, f.BitsPerSample)
	if err != nil {
		die(err)
	}

	if err := wav.Encode(os.Stdout, f, data); err != nil {
		die(err)
	}
}

func logFreqs(w io.Writer, p *tone.Plan) {
	for c := 0; c < p.Channels(); c++ {
		fmt.Fprintf(w, "Frequencies on channel %d:\n", c)
		for i, f := range p.Channel(c) {
			fmt.Fprintf(w, "* %d/ %d Hz\n", i, f)
		}
	}
	fmt.Fprintln(w)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: wavegen [flags] > play.wav\n\n")
	fmt.Fprintf(os.Stderr, "Generates a WAV audio file on the standard output, with a number of known\n")
	fmt.Fprintf(os.Stderr, "frequencies added on each channel. Listening to this file is discouraged,\n")
	fmt.Fprintf(os.Stderr, "as pure sinewaves are as mathematically beautiful as unpleasant to the ear.\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
