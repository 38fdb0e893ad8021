// ABOUTME: Decoder interface definition
// ABOUTME: Common interface and error type for all audio decoders
package decode

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
)

// Result holds one decoded packet: planar per-channel samples plus the
// decoder's native sample rate.
type Result struct {
	// Channels is planar sample data, one slice per channel, equal lengths
	Channels [][]float32

	// SampleRate is the decoder's native rate in Hz
	SampleRate int
}

// Frames returns the number of per-channel samples in the result
func (r *Result) Frames() int {
	if len(r.Channels) == 0 {
		return 0
	}
	return len(r.Channels[0])
}

// Decoder decodes audio packets to planar float32 samples
type Decoder interface {
	// Ready returns a channel closed once the decoder is ready to accept
	// packets. Safe to receive from repeatedly; it never closes twice.
	Ready() <-chan struct{}

	// Decode converts one encoded packet to planar samples.
	// Returns *Error if the packet is malformed.
	Decode(packet []byte) (*Result, error)

	// Close releases decoder resources
	Close() error
}

// Error reports a packet the decoder rejected
type Error struct {
	Codec string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s decode failed: %v", e.Codec, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a decoder for the format's codec
func New(format audio.Format) (Decoder, error) {
	switch format.Codec {
	case "pcm":
		return NewPCM(format)
	case "opus":
		return NewOpus(format)
	case "flac":
		return NewFLAC(format)
	case "mp3":
		return NewMP3(format)
	default:
		return nil, fmt.Errorf("unsupported codec: %s", format.Codec)
	}
}

// readyNow returns an already-closed readiness channel for decoders that
// are usable as soon as they are constructed.
func readyNow() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
