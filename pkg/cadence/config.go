// ABOUTME: Player configuration
// ABOUTME: Defines Config defaults and the format mismatch policy
package cadence

import "time"

// FormatPolicy controls what happens when a decoded packet's format does
// not match the format latched from the first packet.
type FormatPolicy int

const (
	// FormatPolicyIgnore keeps playing with the latched format. Mismatched
	// packets are appended as-is.
	FormatPolicyIgnore FormatPolicy = iota

	// FormatPolicyStrict makes Feed return an error on a mismatched packet.
	// The backlog is left untouched.
	FormatPolicyStrict
)

// Config holds player configuration. The zero value is usable; missing
// fields take defaults.
type Config struct {
	// Encoding is a codec hint passed through for decode setup. It has no
	// effect on scheduling math.
	Encoding string

	// Channels is the channel count assumed until the first decode latches
	// the real format (default: 2)
	Channels int

	// SampleRate is the rate in Hz assumed until the first decode latches
	// the real format (default: 48000)
	SampleRate int

	// FlushInterval is the scheduler tick period (default: 20ms)
	FlushInterval time.Duration

	// FormatPolicy selects mismatch handling after the format is latched
	// (default: FormatPolicyIgnore)
	FormatPolicy FormatPolicy
}

// withDefaults fills unset fields
func (c Config) withDefaults() Config {
	if c.Channels == 0 {
		c.Channels = 2
	}
	if c.SampleRate == 0 {
		c.SampleRate = 48000
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = 20 * time.Millisecond
	}
	return c
}
