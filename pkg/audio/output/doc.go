// ABOUTME: Audio output package for scheduled playback
// ABOUTME: Provides Sink interface and oto implementation
// Package output provides scheduled audio playback sinks.
//
// A Sink accepts planar float32 buffers tagged with a start time in the
// sink's own time base and renders them at that time. The oto backend is
// the default cross-platform implementation.
//
// Example:
//
//	sink := output.NewOto()
//	err := sink.Open(48000, 2)
//	err = sink.Schedule(buf, sink.CurrentTime())
package output
