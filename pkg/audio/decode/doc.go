// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interface and implementations for PCM, Opus, FLAC, MP3
// Package decode provides audio decoders for various codecs.
//
// Supports: PCM (16-bit and 24-bit), Opus, FLAC, MP3
//
// All decoders implement the Decoder interface and output planar float32
// samples in [-1, 1] along with the decoder's native sample rate. Decode
// failures are reported as *Error so callers can distinguish a bad packet
// from other failures.
//
// Example:
//
//	decoder, err := decode.New(format)
//	<-decoder.Ready()
//	result, err := decoder.Decode(packet)
package decode
