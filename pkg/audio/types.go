// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and sample layout conversions
package audio

// Format describes audio stream format
type Format struct {
	Codec       string
	SampleRate  int
	Channels    int
	BitDepth    int
	CodecHeader []byte // For FLAC, Opus, etc.
}

// Interleave converts planar channel data to interleaved frame order.
// out[i*channels+c] = channels[c][i]. All channel slices must have equal
// length; the shortest channel bounds the output.
func Interleave(channels [][]float32) []float32 {
	n := len(channels)
	if n == 0 {
		return nil
	}

	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < frames {
			frames = len(ch)
		}
	}

	out := make([]float32, frames*n)
	for c, ch := range channels {
		for i := 0; i < frames; i++ {
			out[i*n+c] = ch[i]
		}
	}
	return out
}

// Deinterleave converts interleaved samples back to planar channel data.
// The inverse of Interleave: channels[c][i] = samples[i*channels+c].
// Trailing samples that do not fill a whole frame are dropped.
func Deinterleave(samples []float32, channels int) [][]float32 {
	if channels <= 0 {
		return nil
	}

	frames := len(samples) / channels
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
		for i := 0; i < frames; i++ {
			out[c][i] = samples[i*channels+c]
		}
	}
	return out
}

// SampleFromInt16 converts an int16 PCM sample to float32 in [-1, 1)
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / 32768.0
}

// SampleToInt16 converts a float32 sample to int16 PCM with clipping
func SampleToInt16(sample float32) int16 {
	scaled := sample * 32767.0
	if scaled > 32767.0 {
		return 32767
	}
	if scaled < -32768.0 {
		return -32768
	}
	return int16(scaled)
}

// SampleFrom24Bit converts 24-bit packed bytes (little-endian) to float32
func SampleFrom24Bit(b [3]byte) float32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return float32(val) / 8388608.0
}

// SampleFromBits converts an integer sample of the given bit depth to float32
func SampleFromBits(sample int32, bits int) float32 {
	return float32(sample) / float32(int32(1)<<(bits-1))
}
