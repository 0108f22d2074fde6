// Command wavecheck analyzes a WAV capture on the standard input and reports
// the tones present on each channel.
//
// Usage:
//
//	wavecheck [-f tones] < record.wav
//
// Without -f it lists every detected frequency. With -f it rebuilds the tone
// plan a generator with the same stream parameters would have used, prints an
// ok/KO verdict per expected tone, and flags any spurious detections.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-wavecheck/dsp/pcm"
	"github.com/cwbudde/algo-wavecheck/measure/tones"
	"github.com/cwbudde/algo-wavecheck/tone"
	"github.com/cwbudde/algo-wavecheck/wav"
)

func main() {
	expected := flag.Int("f", 0, "number of expected frequencies per channel (0 reports detections only)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unknown extra arguments: %s\n", flag.Args()[0])
		flag.Usage()
		os.Exit(1)
	}
	if *expected < 0 {
		fmt.Fprintf(os.Stderr, "expected frequency count must be >= 0: %d\n", *expected)
		os.Exit(1)
	}

	f, data, err := wav.Decode(os.Stdin)
	if err != nil {
		die(err)
	}
	f.TonesPerChannel = *expected

	if f.BitsPerSample != 32 {
		fmt.Fprintln(os.Stderr, "FYI: Untested behavior")
	}

	fmt.Fprintln(os.Stderr, "Analyzing audio file with following parameters:")
	f.Describe(os.Stderr)
	fmt.Fprintln(os.Stderr)

	d, err := tones.NewDetector(tones.Config{SampleRate: f.SampleRate})
	if err != nil {
		die(err)
	}

	dets := make([]tones.Detection, f.Channels)
	var (
		wave    []float64
		dropped int
	)
	for c := range dets {
		wave, err = pcm.Channel(wave, data, c, f)
		if err != nil {
			die(err)
		}
		dets[c], err = d.Scan(wave)
		if err != nil {
			die(err)
		}
		dropped += dets[c].Dropped
	}
	if dropped > 0 {
		fmt.Fprintln(os.Stderr, "Maximum number of detected frequencies reached")
	}

	if f.TonesPerChannel == 0 {
		report(os.Stdout, dets)
		return
	}

	p, err := tone.NewPlan(f.Channels, f.SampleRate, f.TonesPerChannel)
	if err != nil {
		die(err)
	}
	compare(os.Stdout, p, dets)
}

func report(w io.Writer, dets []tones.Detection) {
	for c, det := range dets {
		fmt.Fprintf(w, "Frequencies found on channel %d (max threshold: %.1f):\n", c, det.Threshold)
		if len(det.Freqs) == 0 {
			fmt.Fprintln(w, "None.")
		}
		for _, f := range det.Freqs {
			fmt.Fprintf(w, "* %d Hz\n", f)
		}
	}
}

func compare(w io.Writer, p *tone.Plan, dets []tones.Detection) {
	for c, det := range dets {
		prefix := ""
		if len(det.Freqs) == 0 {
			prefix = "empty, "
		}
		fmt.Fprintf(w, "Frequencies expected on channel %d (%smax threshold: %.1f):\n", c, prefix, det.Threshold)

		cmp := tone.Compare(p.Channel(c), det.Freqs, tone.DefaultToleranceHz)
		for i, m := range cmp.Tones {
			fmt.Fprintf(w, "* %d/ %d Hz: ", i, m.FreqHz)
			switch {
			case !m.Found:
				fmt.Fprintln(w, "KO")
			case m.DeltaHz != 0:
				fmt.Fprintf(w, "ok (%+d Hz)\n", m.DeltaHz)
			default:
				fmt.Fprintln(w, "ok")
			}
		}

		if len(cmp.Spurious) > 0 {
			fmt.Fprintf(w, "Frequencies *not* expected on channel %d:\n", c)
			for _, f := range cmp.Spurious {
				fmt.Fprintf(w, "*    %d Hz: spurious\n", f)
			}
		}
	}
	fmt.Fprintln(w)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: wavecheck [flags] < record.wav\n\n")
	fmt.Fprintf(os.Stderr, "Analyzes a WAV audio file on the standard input and exposes its major\n")
	fmt.Fprintf(os.Stderr, "frequencies. The audio parameters are taken from the container header;\n")
	fmt.Fprintf(os.Stderr, "up to %d frequencies can be discovered per channel. With -f set, the\n", tones.DefaultMaxTones)
	fmt.Fprintf(os.Stderr, "tone plan of a generator run with the same parameters is checked against\n")
	fmt.Fprintf(os.Stderr, "the capture.\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
