//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"errors"

	"github.com/gtRZync/wav-player/pkg/audio"
)

var errPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio output implementation (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Device {
	return &PortAudio{}
}

// Open initializes PortAudio
func (p *PortAudio) Open(format audio.Format, onDone func()) error {
	return errPortAudioDisabled
}

// Prepare hands a buffer to PortAudio
func (p *PortAudio) Prepare(buf []byte) error {
	return errPortAudioDisabled
}

// Submit starts playback
func (p *PortAudio) Submit() error {
	return errPortAudioDisabled
}

// Reset stops playback
func (p *PortAudio) Reset() error {
	return errPortAudioDisabled
}

// Unprepare releases the buffer
func (p *PortAudio) Unprepare() error {
	return errPortAudioDisabled
}

// Close releases resources
func (p *PortAudio) Close() error {
	return nil
}
