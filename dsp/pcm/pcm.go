// Package pcm converts between normalized float waveforms and interleaved
// little-endian integer PCM. Depths of 16, 24, and 32 bits per sample are
// supported; 24-bit samples use the packed 3-byte layout (S24_3LE).
package pcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-wavecheck/audio"
	"github.com/cwbudde/algo-wavecheck/dsp/buffer"
	"github.com/cwbudde/algo-wavecheck/dsp/core"
)

// fullScale returns the largest positive sample value for a bit depth. The
// same factor scales both directions, so quantize and extract are inverse
// up to rounding.
func fullScale(bits int) (float64, error) {
	switch bits {
	case 16:
		return math.MaxInt16, nil
	case 24:
		return 1<<23 - 1, nil
	case 32:
		return math.MaxInt32, nil
	default:
		return 0, fmt.Errorf("pcm: unsupported bits per sample: %d", bits)
	}
}

// Interleave quantizes every channel of m to the given depth and packs the
// samples into frame-interleaved little-endian bytes. Each sample x is
// mapped to round(x * fullScale); inputs outside [-1, 1] are a caller
// precondition violation and are not checked.
func Interleave(m *buffer.Matrix, bits int) ([]byte, error) {
	scale, err := fullScale(bits)
	if err != nil {
		return nil, err
	}

	channels := m.Channels()
	bytesPer := bits / 8
	out := make([]byte, channels*m.SamplesPerChannel()*bytesPer)

	for c := 0; c < channels; c++ {
		row := m.Channel(c)
		for s, x := range row {
			v := int32(math.Round(x * scale))
			putSample(out[(s*channels+c)*bytesPer:], v, bits)
		}
	}

	return out, nil
}

// Channel extracts channel ch from interleaved PCM data and normalizes it to
// [-1, 1] floats. dst is reused when its capacity suffices; the returned
// slice holds one value per frame.
func Channel(dst []float64, data []byte, ch int, f audio.Format) ([]float64, error) {
	scale, err := fullScale(f.BitsPerSample)
	if err != nil {
		return nil, err
	}
	if ch < 0 || ch >= f.Channels {
		return nil, fmt.Errorf("pcm: channel %d out of range [0, %d)", ch, f.Channels)
	}

	frame := f.BlockAlign()
	if frame <= 0 || len(data)%frame != 0 {
		return nil, fmt.Errorf("pcm: %d data bytes not a multiple of the %d byte frame", len(data), frame)
	}

	n := len(data) / frame
	dst = core.EnsureLen(dst, n)

	bytesPer := f.BytesPerSample()
	for s := 0; s < n; s++ {
		dst[s] = float64(getSample(data[s*frame+ch*bytesPer:], f.BitsPerSample))
	}

	vecmath.ScaleBlock(dst, dst, 1/scale)

	return dst, nil
}

func putSample(dst []byte, v int32, bits int) {
	switch bits {
	case 16:
		binary.LittleEndian.PutUint16(dst, uint16(int16(v)))
	case 24:
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
		dst[2] = byte(v >> 16)
	case 32:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	}
}

func getSample(src []byte, bits int) int32 {
	switch bits {
	case 16:
		return int32(int16(binary.LittleEndian.Uint16(src)))
	case 24:
		v := int32(src[0]) | int32(src[1])<<8 | int32(src[2])<<16
		if v&0x800000 != 0 {
			v -= 1 << 24
		}
		return v
	case 32:
		return int32(binary.LittleEndian.Uint32(src))
	}
	return 0
}
