// ABOUTME: Audio output device interface definition
// ABOUTME: Single-buffer asynchronous playback contract shared by all backends
package output

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/gtRZync/wav-player/pkg/audio"
)

var (
	// ErrNotOpen is returned when a device is used before Open or after Close
	ErrNotOpen = errors.New("output: device not open")

	// ErrNotPrepared is returned by Submit when no buffer is prepared
	ErrNotPrepared = errors.New("output: buffer not prepared")

	// ErrStillPlaying is returned when the prepared buffer is still queued
	ErrStillPlaying = errors.New("output: buffer still playing")
)

// Device represents one asynchronous audio output binding.
//
// A device plays at most one prepared buffer at a time. Every successful
// Submit produces exactly one call of the completion callback passed to
// Open, including when the buffer is cut short by Reset. A failed Submit
// produces none. The callback may run on any goroutine or native audio
// thread, must not call back into the device, and never runs after Close
// returns.
type Device interface {
	// Open binds the device to an output stream for format
	Open(format audio.Format, onDone func()) error

	// Prepare hands buf to the device; buf must stay untouched until Unprepare
	Prepare(buf []byte) error

	// Submit starts playing the prepared buffer from the beginning
	Submit() error

	// Reset stops playback immediately, discarding the queued buffer
	Reset() error

	// Unprepare releases the prepared buffer
	Unprepare() error

	// Close releases the output stream
	Close() error
}

// Factory creates unopened devices
type Factory func() Device

var backends = map[string]Factory{
	"oto":       NewOto,
	"malgo":     NewMalgo,
	"portaudio": NewPortAudio,
}

// DefaultBackend is used when no backend is configured
const DefaultBackend = "oto"

// Lookup returns the factory for a named backend
func Lookup(name string) (Factory, error) {
	if name == "" {
		name = DefaultBackend
	}
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown output backend %q (available: %v)", name, Backends())
	}
	return f, nil
}

// Backends returns the registered backend names
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// notifier delivers exactly one completion per armed submission
type notifier struct {
	onDone  func()
	pending atomic.Bool
}

// arm marks a submission as outstanding
func (n *notifier) arm() {
	n.pending.Store(true)
}

// outstanding reports whether a submission has not completed yet
func (n *notifier) outstanding() bool {
	return n.pending.Load()
}

// fire runs the completion callback if a submission is outstanding.
// Concurrent callers race on the flag, so only one of them delivers it.
func (n *notifier) fire() {
	if n.pending.CompareAndSwap(true, false) && n.onDone != nil {
		n.onDone()
	}
}

// disarm drops an outstanding submission without notifying
func (n *notifier) disarm() {
	n.pending.Store(false)
}
