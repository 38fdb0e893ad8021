// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes self-contained FLAC segments to planar float32 samples
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLACDecoder decodes FLAC audio. Each packet must be a self-contained FLAC
// stream (fLaC marker, STREAMINFO, frames), which is how segment-based
// streaming typically delivers it.
type FLACDecoder struct {
	ready chan struct{}
}

// NewFLAC creates a new FLAC decoder
func NewFLAC(format audio.Format) (Decoder, error) {
	if format.Codec != "flac" {
		return nil, fmt.Errorf("invalid codec for FLAC decoder: %s", format.Codec)
	}

	return &FLACDecoder{ready: readyNow()}, nil
}

// Ready reports construction-time readiness
func (d *FLACDecoder) Ready() <-chan struct{} {
	return d.ready
}

// Decode converts a FLAC segment to planar float32 samples
func (d *FLACDecoder) Decode(packet []byte) (*Result, error) {
	stream, err := flac.New(bytes.NewReader(packet))
	if err != nil {
		return nil, &Error{Codec: "flac", Err: err}
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	bits := int(stream.Info.BitsPerSample)

	out := make([][]float32, channels)

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &Error{Codec: "flac", Err: err}
		}

		if len(frame.Subframes) != channels {
			return nil, &Error{
				Codec: "flac",
				Err:   fmt.Errorf("frame has %d subframes, stream declares %d channels", len(frame.Subframes), channels),
			}
		}

		for c, sub := range frame.Subframes {
			for _, sample := range sub.Samples {
				out[c] = append(out[c], audio.SampleFromBits(sample, bits))
			}
		}
	}

	return &Result{
		Channels:   out,
		SampleRate: int(stream.Info.SampleRate),
	}, nil
}

// Close releases decoder resources
func (d *FLACDecoder) Close() error {
	return nil
}
