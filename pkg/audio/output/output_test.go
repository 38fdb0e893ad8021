// ABOUTME: Tests for audio sink types
// ABOUTME: Tests buffer duration math and gain clamping
package output

import (
	"testing"
	"time"
)

func TestBufferDuration(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		rate     int
		expected time.Duration
	}{
		{"one tick at 48k", 960, 48000, 20 * time.Millisecond},
		{"half second at 44.1k", 22050, 44100, 500 * time.Millisecond},
		{"empty", 0, 48000, 0},
		{"zero rate", 960, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Buffer{Frames: tt.frames, SampleRate: tt.rate}
			if got := buf.Duration(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBufferChannelCount(t *testing.T) {
	buf := Buffer{Channels: [][]float32{{0}, {0}}}
	if buf.ChannelCount() != 2 {
		t.Errorf("expected 2 channels, got %d", buf.ChannelCount())
	}
}

func TestClampGain(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.7, 0.7},
		{1, 1},
		{1.5, 1},
	}

	for _, tt := range tests {
		if got := clampGain(tt.input); got != tt.expected {
			t.Errorf("clampGain(%f): expected %f, got %f", tt.input, tt.expected, got)
		}
	}
}
