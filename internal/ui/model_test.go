// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, polling, key handling and rendering helpers
package ui

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakePlayer struct {
	playing atomic.Bool
}

func (p *fakePlayer) IsPlaying() bool {
	return p.playing.Load()
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil, nil)

	if model.playing {
		t.Error("expected playing to be false initially")
	}
	if model.plays != 0 {
		t.Errorf("expected no plays, got %d", model.plays)
	}
}

func TestStatusMsgFormat(t *testing.T) {
	model := NewModel(nil, nil)

	model.applyStatus(StatusMsg{
		Name:       "tone.wav",
		SampleRate: 44100,
		Channels:   2,
		BitDepth:   16,
		Frames:     250,
		Duration:   5 * time.Millisecond,
	})

	if model.name != "tone.wav" {
		t.Errorf("expected name 'tone.wav', got '%s'", model.name)
	}
	if model.sampleRate != 44100 || model.channels != 2 || model.bitDepth != 16 {
		t.Errorf("unexpected format: %dHz %dch %d-bit", model.sampleRate, model.channels, model.bitDepth)
	}
	if model.frames != 250 {
		t.Errorf("expected 250 frames, got %d", model.frames)
	}
}

func TestStatusMsgStarted(t *testing.T) {
	model := NewModel(nil, nil)
	model.lastErr = "old"

	model.applyStatus(StatusMsg{Started: true})
	model.applyStatus(StatusMsg{Started: true})

	if !model.playing {
		t.Error("expected playing after start")
	}
	if model.plays != 2 {
		t.Errorf("expected 2 plays, got %d", model.plays)
	}
	if model.lastErr != "" {
		t.Errorf("expected error cleared, got %q", model.lastErr)
	}
}

func TestStatusMsgError(t *testing.T) {
	model := NewModel(nil, nil)
	model.applyStatus(StatusMsg{Err: errors.New("device write failed")})

	if model.lastErr != "device write failed" {
		t.Errorf("unexpected error %q", model.lastErr)
	}
}

func TestPollTracksPlayer(t *testing.T) {
	player := &fakePlayer{}
	model := NewModel(player, nil)
	model.applyStatus(StatusMsg{SampleRate: 44100, Channels: 2, BitDepth: 16, Duration: time.Second})

	player.playing.Store(true)
	model.applyStatus(StatusMsg{Started: true})
	model.poll(model.startedAt.Add(400 * time.Millisecond))

	if !model.playing {
		t.Fatal("expected playing while player plays")
	}
	if model.elapsed != 400*time.Millisecond {
		t.Errorf("expected 400ms elapsed, got %v", model.elapsed)
	}

	// elapsed never passes the duration
	model.poll(model.startedAt.Add(3 * time.Second))
	if model.elapsed != time.Second {
		t.Errorf("expected elapsed clamped to 1s, got %v", model.elapsed)
	}

	player.playing.Store(false)
	model.poll(time.Now())
	if model.playing {
		t.Error("expected stopped after player finished")
	}
}

func TestTickKeepsPolling(t *testing.T) {
	model := NewModel(&fakePlayer{}, nil)

	_, cmd := model.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected another tick to be scheduled")
	}
}

func TestQuitKey(t *testing.T) {
	control := NewControl()
	model := NewModel(nil, control)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	select {
	case <-control.Quit:
	default:
		t.Error("expected quit request on control channel")
	}
}

func TestPlayKey(t *testing.T) {
	control := NewControl()
	model := NewModel(nil, control)

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})

	select {
	case <-control.Play:
	default:
		t.Error("expected play request on control channel")
	}
}

func TestPlayKeyIgnoredWhilePlaying(t *testing.T) {
	control := NewControl()
	model := NewModel(nil, control)
	model.playing = true

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

	select {
	case <-control.Play:
		t.Error("expected no play request while playing")
	default:
	}
}

func TestViewBeforeResize(t *testing.T) {
	model := NewModel(nil, nil)
	if model.View() != "Loading..." {
		t.Errorf("expected loading view, got %q", model.View())
	}
}

func TestViewShowsSound(t *testing.T) {
	model := NewModel(nil, nil)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model = updated.(Model)
	model.applyStatus(StatusMsg{Name: "tone.wav", SampleRate: 44100, Channels: 2, BitDepth: 16, Frames: 250})

	view := model.View()
	for _, want := range []string{"tone.wav", "44100Hz Stereo 16-bit PCM", "Stopped", "q:Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"this is longer than allowed", 10, "this is..."},
		{"", 10, ""},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

func TestChannelNameFunction(t *testing.T) {
	tests := []struct {
		channels int
		expected string
	}{
		{1, "Mono"},
		{2, "Stereo"},
		{6, "6ch"},
	}

	for _, tt := range tests {
		if got := channelName(tt.channels); got != tt.expected {
			t.Errorf("channelName(%d) = %q, expected %q", tt.channels, got, tt.expected)
		}
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(50, 100, 10); got != "█████░░░░░" {
		t.Errorf("unexpected bar %q", got)
	}
	if got := renderBar(150, 100, 4); got != "████" {
		t.Errorf("expected full bar when over max, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00.0"},
		{1500 * time.Millisecond, "0:01.5"},
		{61 * time.Second, "1:01.0"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.d, got, tt.expected)
		}
	}
}
