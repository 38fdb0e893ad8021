// ABOUTME: Bubbletea model for the player status TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Stream
	state      string
	codec      string
	sampleRate int
	channels   int

	// Playback
	volume int

	// Stats
	packetsFed     int64
	buffersOut     int64
	framesEmitted  int64
	underrunTicks  int64
	clockClamps    int64
	decodeFailures int64
	backlogSamples int
	backlogMs      int

	// Feed
	feedAddr string

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int

	volumeCtrl *VolumeControl
}

// StatusMsg updates TUI state
type StatusMsg struct {
	State          string
	Codec          string
	SampleRate     int
	Channels       int
	Volume         int
	PacketsFed     int64
	BuffersOut     int64
	FramesEmitted  int64
	UnderrunTicks  int64
	ClockClamps    int64
	DecodeFailures int64
	BacklogSamples int
	BacklogMs      int
	FeedAddr       string
}

// VolumeChangeMsg requests a volume change from the player
type VolumeChangeMsg struct {
	Volume int
}

// QuitMsg requests application shutdown
type QuitMsg struct{}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStreamInfo()
	s += m.renderControls()
	s += m.renderStats()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders playback state
func (m Model) renderHeader() string {
	state := m.state
	if state == "" {
		state = "idle"
	}

	feed := "local"
	if m.feedAddr != "" {
		feed = m.feedAddr
	}

	return fmt.Sprintf(`┌─ Cadence Player ─────────────────────────────────────┐
│ State:  %-45s │
│ Feed:   %-45s │
├──────────────────────────────────────────────────────┤
`, state, feed)
}

// renderStreamInfo renders the latched stream format
func (m Model) renderStreamInfo() string {
	if m.codec == "" {
		return "│ No stream                                            │\n"
	}

	return fmt.Sprintf("│ Format: %s %dHz %s%-25s │\n",
		m.codec, m.sampleRate, channelName(m.channels), "")
}

// renderControls renders volume and backlog depth
func (m Model) renderControls() string {
	volumeBar := renderBar(m.volume, 100, 10)

	return fmt.Sprintf("│                                                      │\n"+
		"│ Volume:  [%s] %d%%%-28s │\n"+
		"│ Backlog: %dms (%d samples)%-20s │\n",
		volumeBar, m.volume, "",
		m.backlogMs, m.backlogSamples, "")
}

// renderStats renders playback statistics
func (m Model) renderStats() string {
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Stats:  Fed: %d  Out: %d  Underruns: %d%-9s │
│                                                      │
`, m.packetsFed, m.buffersOut, m.underrunTicks, "")
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ ↑/↓:Volume  d:Debug  q:Quit                          │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders debug information
func (m Model) renderDebug() string {
	return fmt.Sprintf(`│ DEBUG:                                               │
│   Frames emitted: %d                                │
│   Clock clamps:   %d                                │
│   Decode failures: %d                               │
`, m.framesEmitted, m.clockClamps, m.decodeFailures)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume += 5
		if m.volume > 100 {
			m.volume = 100
		}
		m.sendVolume()
	case "down":
		m.volume -= 5
		if m.volume < 0 {
			m.volume = 0
		}
		m.sendVolume()
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// sendVolume pushes the current volume to the player
func (m Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume}:
	default:
	}
}

// applyStatus updates model from a status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Codec != "" {
		m.codec = msg.Codec
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
	}
	if msg.Volume != 0 {
		m.volume = msg.Volume
	}
	if msg.FeedAddr != "" {
		m.feedAddr = msg.FeedAddr
	}

	m.packetsFed = msg.PacketsFed
	m.buffersOut = msg.BuffersOut
	m.framesEmitted = msg.FramesEmitted
	m.underrunTicks = msg.UnderrunTicks
	m.clockClamps = msg.ClockClamps
	m.decodeFailures = msg.DecodeFailures
	m.backlogSamples = msg.BacklogSamples
	m.backlogMs = msg.BacklogMs
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}
