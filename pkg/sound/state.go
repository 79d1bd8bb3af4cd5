// ABOUTME: Playback state machine of a handle
// ABOUTME: Atomic status flags and the states derived from them
package sound

import "sync/atomic"

// status flag bits
const (
	flagPlaying uint32 = 1 << iota
	flagDone
	flagClosing
	flagFreed
	flagFailed
)

// State represents the lifecycle state of a Handle
type State int

const (
	// StateIdle indicates the buffer is prepared and was never submitted
	StateIdle State = iota
	// StatePlaying indicates the buffer is submitted and not yet completed
	StatePlaying
	// StateDone indicates playback completed and the buffer may be replayed
	StateDone
	// StateFailed indicates the device binding was lost after a failed
	// write; only Unload is meaningful
	StateFailed
	// StateClosing indicates Unload is tearing the handle down
	StateClosing
	// StateFreed indicates the handle released everything
	StateFreed
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	case StateClosing:
		return "Closing"
	case StateFreed:
		return "Freed"
	default:
		return "Unknown"
	}
}

// stateOf derives the state from a flag word
func stateOf(flags uint32) State {
	switch {
	case flags&flagFreed != 0:
		return StateFreed
	case flags&flagClosing != 0:
		return StateClosing
	case flags&flagPlaying != 0:
		return StatePlaying
	case flags&flagFailed != 0:
		return StateFailed
	case flags&flagDone != 0:
		return StateDone
	default:
		return StateIdle
	}
}

// statusFlags is the lock-free flag word shared with the completion callback
type statusFlags struct {
	v atomic.Uint32
}

func (f *statusFlags) load() uint32 {
	return f.v.Load()
}

// update atomically clears the clear bits and sets the set bits, returning
// the previous value
func (f *statusFlags) update(clear, set uint32) uint32 {
	for {
		old := f.v.Load()
		if f.v.CompareAndSwap(old, old&^clear|set) {
			return old
		}
	}
}
