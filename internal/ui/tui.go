// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the now-playing view
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PlayMsg asks for the sound to be played again
type PlayMsg struct{}

// QuitMsg asks for the sound to be unloaded and the program to exit
type QuitMsg struct{}

// Control holds channels for user commands coming out of the TUI
type Control struct {
	Play chan PlayMsg
	Quit chan QuitMsg
}

// NewControl creates a new control handler
func NewControl() *Control {
	return &Control{
		Play: make(chan PlayMsg, 1),
		Quit: make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(player Player, control *Control) Model {
	return Model{
		player:  player,
		control: control,
	}
}

// Run creates the TUI program; the caller starts it
func Run(player Player, control *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(player, control), tea.WithAltScreen())
	return p, nil
}
