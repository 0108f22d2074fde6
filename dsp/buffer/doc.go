// Package buffer provides per-channel sample storage for batch processing.
// A Matrix owns one fixed-size float64 row per channel, carved from a single
// backing allocation, so a top-level driver holds exactly one object per
// stream and releases all channels together.
package buffer
