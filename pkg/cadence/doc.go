// ABOUTME: High-level Cadence streaming playback API
// ABOUTME: Provides the Player jitter buffer and flush scheduler
// Package cadence buffers decoded audio arriving in irregular bursts and
// re-emits it to a sink as a smooth, continuously scheduled stream.
//
// A Player sits between a decode.Decoder and an output.Sink. Feed pushes
// encoded packets through the decoder into an interleaved sample backlog;
// a fixed-period flush loop carves complete frames out of the backlog and
// schedules them back-to-back against a virtual clock that never runs
// behind the sink but never double-books.
//
// Example:
//
//	decoder, err := decode.New(format)
//	sink := output.NewOto()
//	err = sink.Open(48000, 2)
//
//	player := cadence.NewPlayer(decoder, sink, cadence.Config{})
//	err = player.Feed(packet)
//	player.SetVolume(0.8)
//	defer player.Destroy()
package cadence
