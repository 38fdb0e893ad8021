// ABOUTME: Entry point for the Cadence streaming player
// ABOUTME: Parses CLI flags and wires decoder, sink, player, and feed sources
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cadence-Audio/cadence-go/internal/server"
	"github.com/Cadence-Audio/cadence-go/internal/ui"
	"github.com/Cadence-Audio/cadence-go/internal/version"
	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/decode"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/output"
	"github.com/Cadence-Audio/cadence-go/pkg/cadence"
)

var (
	file       = flag.String("file", "", "Input file to stream ('-' for stdin)")
	chunkSize  = flag.Int("chunk", 3840, "Bytes per packet when streaming a file")
	serve      = flag.Bool("serve", false, "Accept packets over websocket instead of reading a file")
	port       = flag.Int("port", 8937, "Port for the websocket feed server")
	name       = flag.String("name", "", "Feed service name (default: hostname-cadence)")
	enableMDNS = flag.Bool("mdns", true, "Advertise the feed server via mDNS")
	codec      = flag.String("codec", "pcm", "Packet codec: pcm, opus, mp3, flac")
	sampleRate = flag.Int("rate", 48000, "Default sample rate in Hz")
	channels   = flag.Int("channels", 2, "Default channel count")
	bitDepth   = flag.Int("bit-depth", 16, "PCM bit depth (16 or 24)")
	flushMs    = flag.Int("flush-ms", 20, "Flush interval in milliseconds")
	volume     = flag.Int("volume", 100, "Initial volume (0-100)")
	logFile    = flag.String("log-file", "cadence-player.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	log.Printf("%s %s starting", version.Product, version.Version)

	format := audio.Format{
		Codec:      *codec,
		SampleRate: *sampleRate,
		Channels:   *channels,
		BitDepth:   *bitDepth,
	}

	decoder, err := decode.New(format)
	if err != nil {
		log.Fatalf("failed to create decoder: %v", err)
	}
	defer decoder.Close()

	sink := output.NewOto()
	if err := sink.Open(*sampleRate, *channels); err != nil {
		log.Fatalf("failed to open audio output: %v", err)
	}

	player := cadence.NewPlayer(decoder, sink, cadence.Config{
		Encoding:      *codec,
		Channels:      *channels,
		SampleRate:    *sampleRate,
		FlushInterval: time.Duration(*flushMs) * time.Millisecond,
	})
	defer func() { _ = player.Destroy() }()

	player.SetVolume(float64(*volume) / 100.0)

	var feedServer *server.Server
	feedAddr := ""
	if *serve {
		serviceName := *name
		if serviceName == "" {
			hostname, _ := os.Hostname()
			serviceName = hostname + "-cadence"
		}

		feedServer = server.New(server.Config{
			Port:       *port,
			Name:       serviceName,
			EnableMDNS: *enableMDNS,
		}, player)

		if err := feedServer.Start(); err != nil {
			log.Fatalf("feed server failed: %v", err)
		}
		defer feedServer.Stop()
		feedAddr = fmt.Sprintf(":%d/cadence", *port)
	} else if *file != "" {
		go streamFile(player, *file, *chunkSize)
	} else {
		flag.Usage()
		os.Exit(2)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if useTUI {
		runTUI(player, feedAddr, sigChan)
	} else {
		<-sigChan
		log.Printf("Shutting down")
	}
}

// streamFile feeds a file to the player in fixed-size packets, pacing
// writes so ingest stays bursty but roughly real-time.
func streamFile(player *cadence.Player, path string, chunk int) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			log.Printf("failed to open input: %v", err)
			return
		}
		defer f.Close()
		r = f
	}

	buf := make([]byte, chunk)
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if feedErr := player.Feed(buf[:n]); feedErr != nil {
				log.Printf("feed failed: %v", feedErr)
			}
		}
		if err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				log.Printf("read failed: %v", err)
			}
			log.Printf("Input exhausted")
			return
		}

		time.Sleep(10 * time.Millisecond)
	}
}

// runTUI drives the status display until quit
func runTUI(player *cadence.Player, feedAddr string, sigChan chan os.Signal) {
	volCtrl := ui.NewVolumeControl()
	program, err := ui.Run(volCtrl)
	if err != nil {
		log.Fatalf("failed to start TUI: %v", err)
	}

	done := make(chan struct{})

	// Poll player state into the TUI
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				stats := player.Stats()

				rate := *sampleRate
				chans := *channels
				codecName := ""
				if format, latched := player.Format(); latched {
					rate = format.SampleRate
					chans = format.Channels
					codecName = *codec
				}

				backlogMs := 0
				if rate > 0 && chans > 0 {
					backlogMs = stats.SamplesBuffered * 1000 / (rate * chans)
				}

				program.Send(ui.StatusMsg{
					State:          player.State().String(),
					Codec:          codecName,
					SampleRate:     rate,
					Channels:       chans,
					PacketsFed:     stats.PacketsFed,
					BuffersOut:     stats.BuffersScheduled,
					FramesEmitted:  stats.FramesEmitted,
					UnderrunTicks:  stats.UnderrunTicks,
					ClockClamps:    stats.ClockClamps,
					DecodeFailures: stats.DecodeFailures,
					BacklogSamples: stats.SamplesBuffered,
					BacklogMs:      backlogMs,
					FeedAddr:       feedAddr,
				})
			}
		}
	}()

	// Apply TUI volume changes and external signals
	go func() {
		for {
			select {
			case <-done:
				return
			case change := <-volCtrl.Changes:
				player.SetVolume(float64(change.Volume) / 100.0)
			case <-volCtrl.Quit:
				program.Quit()
			case <-sigChan:
				program.Quit()
			}
		}
	}()

	if _, err := program.Run(); err != nil {
		log.Printf("TUI error: %v", err)
	}
	close(done)
}
