// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes self-contained MP3 segments to planar float32 samples
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MP3 audio. Each packet must be a self-contained MP3
// segment starting at a frame header; go-mp3 always emits 16-bit stereo.
type MP3Decoder struct {
	ready chan struct{}
}

// NewMP3 creates a new MP3 decoder
func NewMP3(format audio.Format) (Decoder, error) {
	if format.Codec != "mp3" {
		return nil, fmt.Errorf("invalid codec for MP3 decoder: %s", format.Codec)
	}

	return &MP3Decoder{ready: readyNow()}, nil
}

// Ready reports construction-time readiness
func (d *MP3Decoder) Ready() <-chan struct{} {
	return d.ready
}

// Decode converts an MP3 segment to planar float32 samples
func (d *MP3Decoder) Decode(packet []byte) (*Result, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(packet))
	if err != nil {
		return nil, &Error{Codec: "mp3", Err: err}
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, &Error{Codec: "mp3", Err: err}
	}

	// go-mp3 output is interleaved 16-bit LE stereo
	const channels = 2
	frames := len(raw) / (2 * channels)

	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			sample := int16(binary.LittleEndian.Uint16(raw[(i*channels+c)*2:]))
			out[c][i] = audio.SampleFromInt16(sample)
		}
	}

	return &Result{
		Channels:   out,
		SampleRate: dec.SampleRate(),
	}, nil
}

// Close releases decoder resources
func (d *MP3Decoder) Close() error {
	return nil
}
