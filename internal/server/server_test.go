// ABOUTME: Tests for the websocket packet-feed server
// ABOUTME: Tests producer connections feeding the player over websocket
package server

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/decode"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/output"
	"github.com/Cadence-Audio/cadence-go/pkg/cadence"
	"github.com/gorilla/websocket"
)

// nullSink discards everything; the feed tests only exercise ingest
type nullSink struct {
	mu     sync.Mutex
	closed bool
}

func (s *nullSink) Schedule(buf output.Buffer, at time.Duration) error { return nil }
func (s *nullSink) CurrentTime() time.Duration                         { return 0 }
func (s *nullSink) SetGain(gain float64)                               {}
func (s *nullSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func newTestServer(t *testing.T) (*Server, *cadence.Player, *httptest.Server) {
	t.Helper()

	decoder, err := decode.NewPCM(audio.Format{
		Codec:      "pcm",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   16,
	})
	if err != nil {
		t.Fatalf("NewPCM failed: %v", err)
	}

	player := cadence.NewPlayer(decoder, &nullSink{}, cadence.Config{FlushInterval: time.Hour})

	srv := New(Config{Name: "test-feed"}, player)
	ts := httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		ts.Close()
		srv.Stop()
		_ = player.Destroy()
	})

	return srv, player, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/cadence"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition never met")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestFeedOverWebSocket(t *testing.T) {
	_, player, ts := newTestServer(t)

	conn := dial(t, ts)
	defer conn.Close()

	// One stereo 16-bit frame
	packet := []byte{0x00, 0x40, 0x00, 0xC0}
	if err := conn.WriteMessage(websocket.BinaryMessage, packet); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	waitFor(t, func() bool { return player.Stats().PacketsFed == 1 })

	if player.Stats().SamplesBuffered != 2 {
		t.Errorf("expected 2 buffered samples, got %d", player.Stats().SamplesBuffered)
	}
}

func TestTextMessagesIgnored(t *testing.T) {
	_, player, ts := newTestServer(t)

	conn := dial(t, ts)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	packet := []byte{0x00, 0x40, 0x00, 0xC0}
	if err := conn.WriteMessage(websocket.BinaryMessage, packet); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	waitFor(t, func() bool { return player.Stats().PacketsFed == 1 })
}

func TestBadPacketKeepsConnectionOpen(t *testing.T) {
	_, player, ts := newTestServer(t)

	conn := dial(t, ts)
	defer conn.Close()

	// 3 bytes is not a whole stereo 16-bit frame; decode fails
	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02, 0x03}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	// A good packet afterwards still lands
	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x00, 0x40, 0x00, 0xC0}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	waitFor(t, func() bool { return player.Stats().PacketsFed == 1 })

	if player.Stats().DecodeFailures != 1 {
		t.Errorf("expected 1 decode failure, got %d", player.Stats().DecodeFailures)
	}
}
