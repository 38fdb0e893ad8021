// ABOUTME: Audio sink interface definition
// ABOUTME: Common interface for scheduled playback backends
package output

import "time"

// Buffer is planar multi-channel audio ready for playback
type Buffer struct {
	// Channels is planar sample data, one slice per channel
	Channels [][]float32

	// Frames is the number of per-channel samples
	Frames int

	// SampleRate in Hz
	SampleRate int
}

// ChannelCount returns the number of channels in the buffer
func (b Buffer) ChannelCount() int {
	return len(b.Channels)
}

// Duration returns the play time the buffer spans
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames) * time.Second / time.Duration(b.SampleRate)
}

// Sink represents an audio output device with scheduled playback
type Sink interface {
	// Schedule queues a buffer to start playing at the given time in the
	// sink's time base. Fire-and-forget: completion is not reported.
	Schedule(buf Buffer, at time.Duration) error

	// CurrentTime returns the sink's current time
	CurrentTime() time.Duration

	// SetGain sets output gain in [0.0, 1.0], applied to all subsequently
	// scheduled buffers
	SetGain(gain float64)

	// Close releases output resources
	Close() error
}

// clampGain bounds a gain value to [0.0, 1.0]
func clampGain(gain float64) float64 {
	if gain < 0 {
		return 0
	}
	if gain > 1 {
		return 1
	}
	return gain
}
