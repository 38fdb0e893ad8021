// ABOUTME: Opus audio decoder
// ABOUTME: Decodes Opus packets to planar float32 samples
package decode

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// maxOpusFrame is the largest Opus frame: 120ms at 48kHz
const maxOpusFrame = 5760

// OpusDecoder decodes Opus audio
type OpusDecoder struct {
	decoder *opus.Decoder
	format  audio.Format
	ready   chan struct{}
}

// NewOpus creates a new Opus decoder
func NewOpus(format audio.Format) (Decoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus decoder: %s", format.Codec)
	}

	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &OpusDecoder{
		decoder: dec,
		format:  format,
		ready:   readyNow(),
	}, nil
}

// Ready reports construction-time readiness
func (d *OpusDecoder) Ready() <-chan struct{} {
	return d.ready
}

// Decode converts one Opus packet to planar float32 samples
func (d *OpusDecoder) Decode(packet []byte) (*Result, error) {
	pcm := make([]float32, maxOpusFrame*d.format.Channels)

	n, err := d.decoder.DecodeFloat32(packet, pcm)
	if err != nil {
		return nil, &Error{Codec: "opus", Err: err}
	}

	// The library returns interleaved samples; n is per-channel
	interleaved := pcm[:n*d.format.Channels]

	return &Result{
		Channels:   audio.Deinterleave(interleaved, d.format.Channels),
		SampleRate: d.format.SampleRate,
	}, nil
}

// Close releases decoder resources
func (d *OpusDecoder) Close() error {
	return nil
}
