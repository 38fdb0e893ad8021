// ABOUTME: Oto-based audio sink implementation
// ABOUTME: Schedules planar buffers onto a persistent oto PCM stream
package output

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// Oto sink implementation using the oto library
type Oto struct {
	ctx        context.Context
	cancel     context.CancelFunc
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	epoch      time.Time
	queue      chan scheduledBuffer
	wg         sync.WaitGroup

	mu    sync.RWMutex
	gain  float64
	ready bool
}

type scheduledBuffer struct {
	buf Buffer
	at  time.Duration
}

// NewOto creates a new Oto sink
func NewOto() *Oto {
	ctx, cancel := context.WithCancel(context.Background())

	return &Oto{
		ctx:    ctx,
		cancel: cancel,
		gain:   1.0,
	}
}

// Open initializes the output device. The sink's clock starts here.
func (o *Oto) Open(sampleRate, channels int) error {
	// oto allows one context per process; reuse on matching format
	if o.otoCtx != nil {
		if o.sampleRate == sampleRate && o.channels == channels {
			log.Printf("Audio output already initialized with same format, reusing context")
			return nil
		}
		return fmt.Errorf("oto does not support reinitialization (%dHz %dch -> %dHz %dch)",
			o.sampleRate, o.channels, sampleRate, channels)
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.epoch = time.Now()
	o.queue = make(chan scheduledBuffer, 16)

	// Persistent player reading from a pipe keeps playback continuous
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.mu.Lock()
	o.ready = true
	o.mu.Unlock()

	o.wg.Add(1)
	go o.writeLoop()

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Schedule queues a buffer to play at the given sink time
func (o *Oto) Schedule(buf Buffer, at time.Duration) error {
	o.mu.RLock()
	ready := o.ready
	o.mu.RUnlock()
	if !ready {
		return fmt.Errorf("output not initialized")
	}

	if buf.SampleRate != o.sampleRate || buf.ChannelCount() != o.channels {
		log.Printf("Warning: buffer format %dHz %dch does not match output %dHz %dch",
			buf.SampleRate, buf.ChannelCount(), o.sampleRate, o.channels)
	}

	select {
	case o.queue <- scheduledBuffer{buf: buf, at: at}:
		return nil
	case <-o.ctx.Done():
		return fmt.Errorf("output closed")
	}
}

// CurrentTime returns time elapsed since the sink was opened
func (o *Oto) CurrentTime() time.Duration {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if !o.ready {
		return 0
	}
	return time.Since(o.epoch)
}

// SetGain sets output gain in [0.0, 1.0]
func (o *Oto) SetGain(gain float64) {
	gain = clampGain(gain)

	o.mu.Lock()
	o.gain = gain
	o.mu.Unlock()

	log.Printf("Gain set to %.2f", gain)
}

// writeLoop renders scheduled buffers at their start time
func (o *Oto) writeLoop() {
	defer o.wg.Done()

	for {
		select {
		case <-o.ctx.Done():
			return
		case item := <-o.queue:
			if wait := item.at - time.Since(o.epoch); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-o.ctx.Done():
					timer.Stop()
					return
				}
			}
			o.write(item.buf)
		}
	}
}

// write interleaves a planar buffer, applies gain, and feeds the pipe
func (o *Oto) write(buf Buffer) {
	o.mu.RLock()
	gain := o.gain
	o.mu.RUnlock()

	out := make([]byte, buf.Frames*o.channels*2)
	for i := 0; i < buf.Frames; i++ {
		for c := 0; c < o.channels; c++ {
			var sample float32
			if c < len(buf.Channels) && i < len(buf.Channels[c]) {
				sample = buf.Channels[c][i] * float32(gain)
			}
			s16 := audio.SampleToInt16(sample)
			binary.LittleEndian.PutUint16(out[(i*o.channels+c)*2:], uint16(s16))
		}
	}

	// Blocks until oto consumes the bytes, keeping the pipe ordered
	if _, err := o.pipeWriter.Write(out); err != nil && err != io.ErrClosedPipe {
		log.Printf("pipe write failed: %v", err)
	}
}

// Close releases output resources
func (o *Oto) Close() error {
	o.cancel()
	o.wg.Wait()

	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
	}

	o.mu.Lock()
	o.ready = false
	o.mu.Unlock()

	return nil
}
