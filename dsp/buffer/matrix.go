package buffer

import "fmt"

// Matrix is a channel-indexed collection of equally sized sample rows.
type Matrix struct {
	data     []float64
	channels int
	samples  int
}

// NewMatrix returns a zero-filled matrix with the given dimensions.
func NewMatrix(channels, samplesPerChannel int) (*Matrix, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("buffer: channels must be > 0: %d", channels)
	}
	if samplesPerChannel <= 0 {
		return nil, fmt.Errorf("buffer: samples per channel must be > 0: %d", samplesPerChannel)
	}

	return &Matrix{
		data:     make([]float64, channels*samplesPerChannel),
		channels: channels,
		samples:  samplesPerChannel,
	}, nil
}

// Channels returns the number of rows.
func (m *Matrix) Channels() int {
	return m.channels
}

// SamplesPerChannel returns the length of each row.
func (m *Matrix) SamplesPerChannel() int {
	return m.samples
}

// Channel returns channel c's row. The slice aliases the matrix storage and
// its capacity is clipped to the row, so growing it cannot touch a
// neighbouring channel.
func (m *Matrix) Channel(c int) []float64 {
	start := c * m.samples
	return m.data[start : start+m.samples : start+m.samples]
}

// Zero clears every row.
func (m *Matrix) Zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}
