// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and planar/interleaved sample layout conversions
// Package audio provides fundamental audio types and utilities for streaming playback.
//
// This package defines core types used throughout the cadence library:
//   - Format: Describes audio stream format (codec, sample rate, channels, bit depth)
//
// It also provides utilities for moving samples between layouts and widths:
//   - planar ↔ interleaved layout conversions
//   - int16/24-bit ↔ float32 sample conversions
//
// Example:
//
//	format := audio.Format{
//	    Codec:      "opus",
//	    SampleRate: 48000,
//	    Channels:   2,
//	    BitDepth:   16,
//	}
//
//	// Interleave two planar channels into L,R,L,R,... order
//	interleaved := audio.Interleave([][]float32{left, right})
package audio
