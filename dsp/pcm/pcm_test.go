package pcm

import (
	"bytes"
	"math"
	"testing"

	"github.com/cwbudde/algo-wavecheck/audio"
	"github.com/cwbudde/algo-wavecheck/dsp/buffer"
	"github.com/cwbudde/algo-wavecheck/internal/testutil"
)

func newMatrix(t *testing.T, rows ...[]float64) *buffer.Matrix {
	t.Helper()

	m, err := buffer.NewMatrix(len(rows), len(rows[0]))
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}

	for c, row := range rows {
		copy(m.Channel(c), row)
	}

	return m
}

func TestInterleave16KnownBytes(t *testing.T) {
	m := newMatrix(t,
		[]float64{1, 0},
		[]float64{-1, 0.5},
	)

	got, err := Interleave(m, 16)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}

	want := []byte{
		0xFF, 0x7F, // frame 0, channel 0: 32767
		0x01, 0x80, // frame 0, channel 1: -32767
		0x00, 0x00, // frame 1, channel 0: 0
		0x00, 0x40, // frame 1, channel 1: 16384
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("bytes = % X, want % X", got, want)
	}
}

func TestInterleave32KnownBytes(t *testing.T) {
	m := newMatrix(t, []float64{1, -1, 0.25})

	got, err := Interleave(m, 32)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}

	want := []byte{
		0xFF, 0xFF, 0xFF, 0x7F, // 2147483647
		0x01, 0x00, 0x00, 0x80, // -2147483647
		0x00, 0x00, 0x00, 0x20, // 536870912
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("bytes = % X, want % X", got, want)
	}
}

func TestInterleave24KnownBytes(t *testing.T) {
	m := newMatrix(t, []float64{1, -1, -0.5})

	got, err := Interleave(m, 24)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}

	want := []byte{
		0xFF, 0xFF, 0x7F, // 8388607
		0x01, 0x00, 0x80, // -8388607
		0x00, 0x00, 0xC0, // -4194304
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("bytes = % X, want % X", got, want)
	}
}

func TestInterleaveRejectsUnsupportedDepth(t *testing.T) {
	m := newMatrix(t, []float64{0})

	for _, bits := range []int{0, 8, 12, 64} {
		if _, err := Interleave(m, bits); err == nil {
			t.Fatalf("Interleave(%d bits): expected error", bits)
		}
	}
}

func TestChannelRoundTrip(t *testing.T) {
	const sampleRate = 48000

	src := testutil.DeterministicSine(997, sampleRate, 0.8, 480)

	for _, bits := range []int{16, 24, 32} {
		m := newMatrix(t, src)

		data, err := Interleave(m, bits)
		if err != nil {
			t.Fatalf("Interleave(%d bits): %v", bits, err)
		}

		f := audio.Format{Channels: 1, SampleRate: sampleRate, BitsPerSample: bits}

		got, err := Channel(nil, data, 0, f)
		if err != nil {
			t.Fatalf("Channel(%d bits): %v", bits, err)
		}
		if len(got) != len(src) {
			t.Fatalf("len = %d, want %d", len(got), len(src))
		}

		tol := 1.0 / float64(int64(1)<<(bits-1)-1)
		testutil.RequireSliceNearlyEqual(t, got, src, tol)
	}
}

func TestChannelSeparation(t *testing.T) {
	rows := [][]float64{
		{0.25, 0.25, 0.25, 0.25},
		{-0.5, -0.5, -0.5, -0.5},
		{0.75, 0.75, 0.75, 0.75},
	}

	m := newMatrix(t, rows...)

	data, err := Interleave(m, 24)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}

	f := audio.Format{Channels: 3, SampleRate: 8000, BitsPerSample: 24}

	for c, want := range rows {
		got, err := Channel(nil, data, c, f)
		if err != nil {
			t.Fatalf("Channel(%d): %v", c, err)
		}

		testutil.RequireSliceNearlyEqual(t, got, want, 1e-6)
	}
}

func TestChannelReusesDst(t *testing.T) {
	m := newMatrix(t, []float64{0.1, 0.2, 0.3})

	data, err := Interleave(m, 16)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}

	f := audio.Format{Channels: 1, SampleRate: 8000, BitsPerSample: 16}
	dst := make([]float64, 3)

	got, err := Channel(dst, data, 0, f)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	if &got[0] != &dst[0] {
		t.Fatal("expected dst backing array to be reused")
	}
}

func TestChannelNegative24BitSignExtension(t *testing.T) {
	// One frame of packed S24_3LE holding -8388607.
	data := []byte{0x01, 0x00, 0x80}
	f := audio.Format{Channels: 1, SampleRate: 8000, BitsPerSample: 24}

	got, err := Channel(nil, data, 0, f)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}

	if math.Abs(got[0]+1) > 1e-12 {
		t.Fatalf("sample = %v, want -1", got[0])
	}
}

func TestChannelRejectsBadInput(t *testing.T) {
	f := audio.Format{Channels: 2, SampleRate: 48000, BitsPerSample: 16}

	if _, err := Channel(nil, make([]byte, 8), 2, f); err == nil {
		t.Fatal("expected error for channel out of range")
	}

	if _, err := Channel(nil, make([]byte, 7), 0, f); err == nil {
		t.Fatal("expected error for ragged frame data")
	}

	bad := f
	bad.BitsPerSample = 8
	if _, err := Channel(nil, make([]byte, 8), 0, bad); err == nil {
		t.Fatal("expected error for unsupported depth")
	}
}
