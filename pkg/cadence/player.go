// ABOUTME: Streaming playback player
// ABOUTME: Feeds decoded packets into the backlog and flushes whole frames on a tick
package cadence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/decode"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/output"
	"github.com/google/uuid"
)

// ErrClosed is returned by Feed after Destroy has begun
var ErrClosed = errors.New("cadence: player closed")

// State is the player's position in its lifecycle
type State int

const (
	// StateIdle means no packet has been fed yet
	StateIdle State = iota

	// StateBuffering means the backlog holds less than one full frame
	StateBuffering

	// StatePlaying means the flush loop is emitting buffers
	StatePlaying

	// StateDraining means teardown has begun
	StateDraining

	// StateClosed is terminal; no further feed or flush is accepted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuffering:
		return "buffering"
	case StatePlaying:
		return "playing"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stats tracks playback metrics
type Stats struct {
	PacketsFed       int64
	DecodeFailures   int64
	BuffersScheduled int64
	FramesEmitted    int64
	UnderrunTicks    int64
	ClockClamps      int64
	SamplesBuffered  int
}

// Player buffers decoded audio and schedules it contiguously onto a sink
type Player struct {
	id      string
	config  Config
	decoder decode.Decoder
	sink    output.Sink

	mu      sync.Mutex
	backlog *Backlog
	format  audio.Format // latched from first decode
	latched bool
	state   State
	stats   Stats

	// Virtual clock: next buffer's start time in the sink's time base.
	// Owned by the flush loop.
	startTime time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	destroy  sync.Once
	closeErr error
}

// NewPlayer creates a player and starts its flush loop
func NewPlayer(decoder decode.Decoder, sink output.Sink, config Config) *Player {
	ctx, cancel := context.WithCancel(context.Background())

	p := &Player{
		id:      uuid.New().String(),
		config:  config.withDefaults(),
		decoder: decoder,
		sink:    sink,
		backlog: NewBacklog(),
		state:   StateIdle,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	log.Printf("Player %s created: %dHz %dch default, flush every %v",
		p.id, p.config.SampleRate, p.config.Channels, p.config.FlushInterval)

	go p.run()

	return p
}

// Feed decodes one packet and appends it to the backlog. Nil or empty
// packets are silently dropped (best-effort streaming tolerates lost
// input). A decode failure is returned to the caller; backlog and clock
// are left untouched.
func (p *Player) Feed(packet []byte) error {
	if len(packet) == 0 {
		return nil
	}

	p.mu.Lock()
	if p.state >= StateDraining {
		p.mu.Unlock()
		return ErrClosed
	}
	p.mu.Unlock()

	<-p.decoder.Ready()

	res, err := p.decoder.Decode(packet)
	if err != nil {
		p.mu.Lock()
		p.stats.DecodeFailures++
		p.mu.Unlock()
		return err
	}

	interleaved := audio.Interleave(res.Channels)

	p.mu.Lock()
	defer p.mu.Unlock()

	// Decode may have completed after teardown started; discard the result
	if p.state >= StateDraining {
		return ErrClosed
	}

	if !p.latched {
		p.format = audio.Format{
			Codec:      p.config.Encoding,
			SampleRate: res.SampleRate,
			Channels:   len(res.Channels),
		}
		p.latched = true
		log.Printf("Player %s latched format: %dHz, %d channels", p.id, p.format.SampleRate, p.format.Channels)
	} else if res.SampleRate != p.format.SampleRate || len(res.Channels) != p.format.Channels {
		if p.config.FormatPolicy == FormatPolicyStrict {
			return fmt.Errorf("format changed mid-stream: %dHz %dch -> %dHz %dch",
				p.format.SampleRate, p.format.Channels, res.SampleRate, len(res.Channels))
		}
	}

	p.backlog.Append(interleaved)
	p.stats.PacketsFed++

	if p.state == StateIdle {
		p.state = StateBuffering
	}

	return nil
}

// SetVolume sets playback volume in [0.0, 1.0], passed through to the sink
func (p *Player) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	p.sink.SetGain(level)
}

// State returns the player's current lifecycle state
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Stats returns a snapshot of playback metrics
func (p *Player) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.SamplesBuffered = p.backlog.Len()
	return s
}

// Format returns the latched stream format and whether one has been latched
func (p *Player) Format() (audio.Format, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.format, p.latched
}

// Destroy stops the flush loop, discards the backlog, and closes the sink.
// Idempotent: repeated calls return the first result.
func (p *Player) Destroy() error {
	p.destroy.Do(func() {
		p.mu.Lock()
		p.state = StateDraining
		p.mu.Unlock()

		// Stop the timer before anything else so no new flush starts
		p.cancel()
		<-p.done

		p.mu.Lock()
		p.backlog.Reset()
		p.state = StateClosed
		p.mu.Unlock()

		p.closeErr = p.sink.Close()
		log.Printf("Player %s destroyed", p.id)
	})
	return p.closeErr
}

// run drives the flush loop on a fixed tick
func (p *Player) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.flush()
		}
	}
}

// flush carves all complete frames out of the backlog and schedules them
// as one contiguous buffer against the virtual clock.
func (p *Player) flush() {
	p.mu.Lock()

	if p.state >= StateDraining {
		p.mu.Unlock()
		return
	}

	rate := p.config.SampleRate
	channels := p.config.Channels
	if p.latched {
		rate = p.format.SampleRate
		channels = p.format.Channels
	}

	// Per-channel samples in one tick's worth of audio
	frameSamples := int(int64(rate) * int64(p.config.FlushInterval) / int64(time.Second))
	frameSize := frameSamples * channels
	if frameSize <= 0 {
		p.mu.Unlock()
		return
	}

	fullFrames := p.backlog.Len() / frameSize
	if fullFrames == 0 {
		// Underrun: nothing emitted, no clock advance, nothing discarded
		p.stats.UnderrunTicks++
		if p.state == StatePlaying {
			p.state = StateBuffering
		}
		p.mu.Unlock()
		return
	}

	totalSamples := fullFrames * frameSize
	outFrames := frameSamples * fullFrames
	samples := p.backlog.Take(totalSamples)

	// Never schedule behind the sink's clock; clamping forward trades a
	// one-time gap for correct ordering after a stall.
	at := p.startTime
	if now := p.sink.CurrentTime(); at < now {
		at = now
		p.stats.ClockClamps++
	}
	p.startTime = at + time.Duration(outFrames)*time.Second/time.Duration(rate)

	p.state = StatePlaying
	p.stats.BuffersScheduled++
	p.stats.FramesEmitted += int64(outFrames)
	p.mu.Unlock()

	buf := output.Buffer{
		Channels:   audio.Deinterleave(samples, channels),
		Frames:     outFrames,
		SampleRate: rate,
	}

	if err := p.sink.Schedule(buf, at); err != nil {
		log.Printf("Player %s schedule failed: %v", p.id, err)
	}
}
