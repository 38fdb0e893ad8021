// ABOUTME: PCM audio decoder
// ABOUTME: Decodes interleaved 16-bit and 24-bit PCM to planar float32
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
)

// PCMDecoder decodes interleaved little-endian PCM packets
type PCMDecoder struct {
	format audio.Format
	ready  chan struct{}
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}

	if format.Channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}

	return &PCMDecoder{
		format: format,
		ready:  readyNow(),
	}, nil
}

// Ready reports construction-time readiness
func (d *PCMDecoder) Ready() <-chan struct{} {
	return d.ready
}

// Decode converts interleaved PCM bytes to planar float32 samples
func (d *PCMDecoder) Decode(packet []byte) (*Result, error) {
	bytesPerSample := d.format.BitDepth / 8
	frameBytes := bytesPerSample * d.format.Channels

	if len(packet)%frameBytes != 0 {
		return nil, &Error{
			Codec: "pcm",
			Err:   fmt.Errorf("packet length %d is not a multiple of frame size %d", len(packet), frameBytes),
		}
	}

	frames := len(packet) / frameBytes
	channels := make([][]float32, d.format.Channels)
	for c := range channels {
		channels[c] = make([]float32, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < d.format.Channels; c++ {
			off := (i*d.format.Channels + c) * bytesPerSample
			if d.format.BitDepth == 24 {
				b := [3]byte{packet[off], packet[off+1], packet[off+2]}
				channels[c][i] = audio.SampleFrom24Bit(b)
			} else {
				sample := int16(binary.LittleEndian.Uint16(packet[off:]))
				channels[c][i] = audio.SampleFromInt16(sample)
			}
		}
	}

	return &Result{
		Channels:   channels,
		SampleRate: d.format.SampleRate,
	}, nil
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
