// ABOUTME: Error taxonomy for the playback engine
// ABOUTME: Typed load and play failures wrapping parser and device errors
package sound

import (
	"errors"
	"fmt"
)

var (
	// ErrHandleClosed is returned by Play after Unload started
	ErrHandleClosed = errors.New("sound: handle unloaded")

	// ErrDrainTimeout is returned by Unload when the pending completion did
	// not arrive in time and the device was torn down anyway
	ErrDrainTimeout = errors.New("sound: timed out waiting for playback to drain")

	// errUnusable is wrapped by PlayError once a handle lost its device
	errUnusable = errors.New("device binding released after a failed write")
)

// LoadErrorKind classifies a Load failure
type LoadErrorKind int

const (
	// InvalidExtension means the path does not name a .wav file
	InvalidExtension LoadErrorKind = iota + 1
	// Parse means the file could not be read or decoded
	Parse
	// DeviceOpenFailed means no output binding could be opened or prepared
	DeviceOpenFailed
)

// String returns a human-readable name for the kind
func (k LoadErrorKind) String() string {
	switch k {
	case InvalidExtension:
		return "invalid extension"
	case Parse:
		return "parse failed"
	case DeviceOpenFailed:
		return "device open failed"
	default:
		return "unknown"
	}
}

// LoadError is returned by Load
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	s := fmt.Sprintf("sound: load %s: %s", e.Path, e.Kind)
	if e.Kind == InvalidExtension {
		s += " (want " + Extension + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PlayErrorKind classifies a Play failure
type PlayErrorKind int

const (
	// DeviceWriteFailed means the buffer could not be submitted, even after
	// re-preparing the device once
	DeviceWriteFailed PlayErrorKind = iota + 1
)

// String returns a human-readable name for the kind
func (k PlayErrorKind) String() string {
	if k == DeviceWriteFailed {
		return "device write failed"
	}
	return "unknown"
}

// PlayError is returned by Play
type PlayError struct {
	Kind PlayErrorKind
	Path string
	Err  error
}

func (e *PlayError) Error() string {
	s := fmt.Sprintf("sound: play %s: %s", e.Path, e.Kind)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *PlayError) Unwrap() error {
	return e.Err
}
