// Package wav reads and writes the 44-byte linear PCM container shared by
// the generator and the analyzer. The codec is deliberately explicit: every
// header field is packed and checked by offset instead of going through a
// general RIFF chunk walker, so the wire layout is visible in one screen of
// code.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-wavecheck/audio"
)

const headerSize = 44

var (
	// ErrCorrupt reports a header that is not a usable PCM capture.
	ErrCorrupt = errors.New("wav: corrupt header")
	// ErrTruncated reports a payload shorter than the header declares.
	ErrTruncated = errors.New("wav: truncated audio data")
)

// Encode writes the container header followed by the interleaved payload.
// The riff length field counts the full header, matching the files the
// analyzer is expected to accept.
func Encode(w io.Writer, f audio.Format, data []byte) error {
	var h [headerSize]byte

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(headerSize+len(data)))
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1)
	binary.LittleEndian.PutUint16(h[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(f.ByteRate()))
	binary.LittleEndian.PutUint16(h[32:34], uint16(f.BlockAlign()))
	binary.LittleEndian.PutUint16(h[34:36], uint16(f.BitsPerSample))
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(len(data)))

	if _, err := w.Write(h[:]); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("wav: write payload: %w", err)
	}

	return nil
}

// Decode reads one container from r and returns the stream description plus
// the interleaved payload, trimmed to whole frames. The returned format
// carries the duration and per-channel sample count derived from the data
// length; TonesPerChannel is unknown to the container and left zero. Bytes
// past the declared data length are not consumed.
func Decode(r io.Reader) (audio.Format, []byte, error) {
	var h [headerSize]byte

	if _, err := io.ReadFull(r, h[:]); err != nil {
		return audio.Format{}, nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}

	for _, tag := range []struct {
		off  int
		want string
	}{
		{0, "RIFF"},
		{8, "WAVE"},
		{12, "fmt "},
		{36, "data"},
	} {
		if got := string(h[tag.off : tag.off+4]); got != tag.want {
			return audio.Format{}, nil, fmt.Errorf("%w: %q where %q expected", ErrCorrupt, got, tag.want)
		}
	}

	if code := binary.LittleEndian.Uint16(h[20:22]); code != 1 {
		return audio.Format{}, nil, fmt.Errorf("%w: format code %d, linear PCM required", ErrCorrupt, code)
	}

	channels := int(binary.LittleEndian.Uint16(h[22:24]))
	sampleRate := int(binary.LittleEndian.Uint32(h[24:28]))
	bits := int(binary.LittleEndian.Uint16(h[34:36]))
	dataLen := int(binary.LittleEndian.Uint32(h[40:44]))

	if channels == 0 || sampleRate == 0 || dataLen == 0 || dataLen%channels != 0 {
		return audio.Format{}, nil, fmt.Errorf("%w: %d channels, %d Hz, %d data bytes",
			ErrCorrupt, channels, sampleRate, dataLen)
	}
	if bits != 16 && bits != 24 && bits != 32 {
		return audio.Format{}, nil, fmt.Errorf("%w: %d bits per sample", ErrCorrupt, bits)
	}

	f := audio.Format{
		Channels:      channels,
		SampleRate:    sampleRate,
		BitsPerSample: bits,
	}
	f.SamplesPerChannel = dataLen / f.BlockAlign()
	f.DurationSec = f.SamplesPerChannel / sampleRate

	if f.DurationSec < audio.MinDurationSec {
		return audio.Format{}, nil, fmt.Errorf("%w: audio too short (%d seconds)", ErrCorrupt, f.DurationSec)
	}

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return audio.Format{}, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	return f, data[:f.DataSize()], nil
}
