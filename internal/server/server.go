// ABOUTME: WebSocket packet-feed server
// ABOUTME: Accepts binary audio packets from producers and feeds the player
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Cadence-Audio/cadence-go/internal/discovery"
	"github.com/Cadence-Audio/cadence-go/pkg/cadence"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Config holds feed server configuration
type Config struct {
	Port       int
	Name       string
	EnableMDNS bool
}

// Server accepts packets over websocket and feeds them to a player.
// One producer at a time is expected; additional connections simply feed
// the same backlog.
type Server struct {
	config   Config
	serverID string

	upgrader   websocket.Upgrader
	httpServer *http.Server
	mux        *http.ServeMux

	player      *cadence.Player
	mdnsManager *discovery.Manager

	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a feed server for the given player
func New(config Config, player *cadence.Player) *Server {
	mux := http.NewServeMux()

	s := &Server{
		config:   config,
		serverID: uuid.New().String(),
		mux:      mux,
		player:   player,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Designed for trusted local networks; non-browser
				// producers send no Origin header at all
				return true
			},
		},
	}

	mux.HandleFunc("/cadence", s.handleWebSocket)

	return s
}

// Start begins listening for producers
func (s *Server) Start() error {
	log.Printf("Feed server starting: %s (ID: %s)", s.config.Name, s.serverID)

	if s.config.EnableMDNS {
		s.mdnsManager = discovery.NewManager(discovery.Config{
			ServiceName: s.config.Name,
			Port:        s.config.Port,
		})

		if err := s.mdnsManager.Advertise(); err != nil {
			log.Printf("Failed to start mDNS advertisement: %v", err)
		}
	}

	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("WebSocket feed listening on %s", addr)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Give the listener a moment to surface bind errors
	select {
	case err := <-errChan:
		return fmt.Errorf("feed server failed: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// handleWebSocket feeds binary messages from one producer connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	log.Printf("Producer connected: %s", remote)

	s.wg.Add(1)
	defer s.wg.Done()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Producer %s disconnected: %v", remote, err)
			return
		}

		if msgType != websocket.BinaryMessage {
			continue
		}

		if err := s.player.Feed(data); err != nil {
			if errors.Is(err, cadence.ErrClosed) {
				return
			}
			// Bad packets are the producer's problem; keep streaming
			log.Printf("Dropped packet from %s: %v", remote, err)
		}
	}
}

// Stop shuts the server down. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		log.Printf("Feed server stopping")

		if s.mdnsManager != nil {
			s.mdnsManager.Stop()
		}

		if s.httpServer != nil {
			if err := s.httpServer.Close(); err != nil {
				log.Printf("HTTP server close failed: %v", err)
			}
		}

		s.wg.Wait()
	})
}
