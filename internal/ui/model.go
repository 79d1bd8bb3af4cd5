// ABOUTME: Bubbletea model for the now-playing view
// ABOUTME: Defines playback state, key handling and rendering
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pollInterval is how often the view samples the playback state
const pollInterval = 50 * time.Millisecond

// Player is the part of a loaded sound the view needs
type Player interface {
	IsPlaying() bool
}

// Model represents the TUI state
type Model struct {
	player  Player
	control *Control

	// Sound
	name       string
	sampleRate int
	channels   int
	bitDepth   int
	frames     int
	duration   time.Duration

	// Playback
	playing   bool
	startedAt time.Time
	elapsed   time.Duration
	plays     int
	lastErr   string

	// Dimensions
	width  int
	height int
}

// tickMsg triggers a playback state poll
type tickMsg time.Time

// StatusMsg updates TUI state
type StatusMsg struct {
	Name       string
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
	Duration   time.Duration

	// Started reports a successful Play
	Started bool
	Err     error
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts polling
func (m Model) Init() tea.Cmd {
	return tick()
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
	case tickMsg:
		m.poll(time.Time(msg))
		return m, tick()
	}

	return m, nil
}

// poll samples the player
func (m *Model) poll(now time.Time) {
	if m.player == nil {
		return
	}
	playing := m.player.IsPlaying()
	if playing {
		m.elapsed = now.Sub(m.startedAt)
		if m.duration > 0 && m.elapsed > m.duration {
			m.elapsed = m.duration
		}
	} else if m.playing {
		m.elapsed = m.duration
	}
	m.playing = playing
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(54)
)

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderFormat())
	b.WriteString(m.renderProgress())
	if m.lastErr != "" {
		b.WriteString(errStyle.Render("Error: "+truncate(m.lastErr, 46)) + "\n")
	}
	b.WriteString(m.renderHelp())

	return boxStyle.Render(b.String())
}

// renderHeader renders the file name and state
func (m Model) renderHeader() string {
	state := "Stopped"
	if m.playing {
		state = "Playing"
	} else if m.plays > 0 {
		state = "Finished"
	}
	return titleStyle.Render(truncate(m.name, 40)) + "\n" +
		labelStyle.Render("Status: ") + state + "\n\n"
}

// renderFormat renders the stream format
func (m Model) renderFormat() string {
	if m.sampleRate == 0 {
		return labelStyle.Render("Format: ") + "unknown\n"
	}
	return fmt.Sprintf("%s%dHz %s %d-bit PCM\n%s%d\n",
		labelStyle.Render("Format: "), m.sampleRate, channelName(m.channels), m.bitDepth,
		labelStyle.Render("Frames: "), m.frames)
}

// renderProgress renders elapsed time against the duration
func (m Model) renderProgress() string {
	value := 0
	if m.duration > 0 {
		value = int(m.elapsed * 100 / m.duration)
	}
	return fmt.Sprintf("\n[%s] %s / %s\n\n",
		renderBar(value, 100, 30), formatDuration(m.elapsed), formatDuration(m.duration))
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return labelStyle.Render("space:Play  q:Quit")
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.control != nil {
			select {
			case m.control.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case " ", "space", "p":
		if m.playing {
			return m, nil
		}
		if m.control != nil {
			select {
			case m.control.Play <- PlayMsg{}:
			default:
			}
		}
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Name != "" {
		m.name = msg.Name
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.bitDepth = msg.BitDepth
		m.frames = msg.Frames
		m.duration = msg.Duration
	}
	if msg.Started {
		m.playing = true
		m.startedAt = time.Now()
		m.elapsed = 0
		m.plays++
		m.lastErr = ""
	}
	if msg.Err != nil {
		m.lastErr = msg.Err.Error()
	}
}

// Utility functions
func renderBar(value, max, width int) string {
	if value > max {
		value = max
	}
	if value < 0 {
		value = 0
	}
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", minutes, seconds)
}
