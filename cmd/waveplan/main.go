// Command waveplan prints the tone layout and analysis geometry for a set of
// stream parameters, without generating any audio.
//
// Usage:
//
//	waveplan [-c channels] [-r rate] [-f tones] [-d seconds]
//
// The layout shown is exactly what wavegen would synthesize and what
// wavecheck -f would expect, so the tool doubles as a dry-run check that a
// parameter choice leaves enough bandwidth for the requested tones.
//
// Examples:
//
//	waveplan
//	waveplan -r 16000 -f 8
//	waveplan -c 4 -r 44100 -f 6 -d 30
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-wavecheck/audio"
	"github.com/cwbudde/algo-wavecheck/tone"
)

func main() {
	channels := flag.Int("c", 2, "number of channels")
	rate := flag.Int("r", 48000, "sampling rate in Hz")
	tonesPerChan := flag.Int("f", 4, "number of frequencies per channel")
	duration := flag.Int("d", 10, "duration in seconds")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: waveplan [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the tone layout wavegen would synthesize for the given stream\n")
		fmt.Fprintf(os.Stderr, "parameters, and the windowing wavecheck would analyze it with.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unknown extra arguments: %s\n", flag.Args()[0])
		flag.Usage()
		os.Exit(1)
	}

	f := audio.NewFormat(*channels, *rate, 32, *duration, *tonesPerChan)
	if err := f.Validate(); err != nil {
		die(err)
	}

	p, err := tone.NewPlan(f.Channels, f.SampleRate, f.TonesPerChannel)
	if err != nil {
		die(err)
	}

	fmt.Printf("Layout for %d channels at %d Hz, %d tones per channel:\n\n",
		f.Channels, f.SampleRate, f.TonesPerChannel)
	printLayout(p)
	fmt.Println()
	printGeometry(f)
}

func printLayout(p *tone.Plan) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Channel\tFrequencies [Hz]\n")
	fmt.Fprintf(tw, "-------\t----------------\n")
	for c := 0; c < p.Channels(); c++ {
		var sb strings.Builder
		for i, f := range p.Channel(c) {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", f)
		}
		fmt.Fprintf(tw, "%d\t%s\n", c, sb.String())
	}
	if err := tw.Flush(); err != nil {
		die(err)
	}
}

func printGeometry(f audio.Format) {
	slide := nextPowerOf2(f.SampleRate / 2)
	win := 2 * slide
	offset := f.SampleRate / 2

	windows := 0
	for i := offset; i+win < f.SamplesPerChannel-offset; i += slide {
		windows++
	}

	fmt.Printf("Analysis: %d-sample window (%.2f s), slide %d, %d windows over %d s\n",
		win, float64(win)/float64(f.SampleRate), slide, windows, f.DurationSec)
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

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
