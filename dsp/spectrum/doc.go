// Package spectrum derives real-valued magnitude spectra from complex FFT
// bins. It does not implement the FFT itself; it consumes the bins an
// external transform produced.
package spectrum
