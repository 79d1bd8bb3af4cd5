// ABOUTME: Loaded sound handle and its playback lifecycle
// ABOUTME: Play, IsPlaying and Unload against one prepared device buffer
package sound

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gtRZync/wav-player/pkg/audio"
	"github.com/gtRZync/wav-player/pkg/audio/output"
	"github.com/gtRZync/wav-player/pkg/audio/wav"
)

// Handle is one loaded sound bound to an output device.
//
// Play, IsPlaying and Unload may be called from any goroutine. The device's
// completion callback only touches the status flags, the completion signal
// and the in-flight counter, so it never waits on the handle lock.
type Handle struct {
	ID   uuid.UUID
	Path string

	file         *wav.File
	drainTimeout time.Duration

	flags    statusFlags
	inflight atomic.Int32
	done     *completion

	// mu guards everything below
	mu       sync.Mutex
	device   output.Device
	data     []byte
	opened   bool
	prepared bool
}

// Format returns the stream format of the sound
func (h *Handle) Format() audio.Format {
	return h.file.Format
}

// Frames returns the number of whole frames in the sound
func (h *Handle) Frames() int {
	return h.file.Frames
}

// Duration returns the playing time of the sound
func (h *Handle) Duration() time.Duration {
	return h.file.Duration()
}

// File returns the parsed container
func (h *Handle) File() *wav.File {
	return h.file
}

// State returns the current lifecycle state
func (h *Handle) State() State {
	return stateOf(h.flags.load())
}

// IsPlaying reports whether the buffer is submitted and not yet completed.
// It never blocks.
func (h *Handle) IsPlaying() bool {
	return h.flags.load()&flagPlaying != 0
}

// Play submits the whole buffer for playback from the start and returns
// without waiting. It is a no-op while the sound is already playing. A
// submission that fails is retried once after re-preparing the device; if
// that fails too, the device is released and the handle can only be
// unloaded.
func (h *Handle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	flags := h.flags.load()
	switch {
	case flags&(flagClosing|flagFreed) != 0:
		return ErrHandleClosed
	case flags&flagFailed != 0:
		return &PlayError{Kind: DeviceWriteFailed, Path: h.Path, Err: errUnusable}
	case flags&flagPlaying != 0:
		return nil
	}

	// The signal is re-armed before the submission can complete
	h.done.reset()
	h.flags.update(flagDone, flagPlaying)

	err := h.device.Submit()
	if err == nil {
		return nil
	}

	log.Printf("Device write failed for %s: %v, re-preparing", Filename(h.Path), err)
	if err = h.reprepareLocked(); err == nil {
		if err = h.device.Submit(); err == nil {
			return nil
		}
	}

	log.Printf("Error: retry failed for %s: %v, releasing device", Filename(h.Path), err)
	h.flags.update(flagPlaying, flagFailed)
	h.done.signal()
	h.releaseLocked()
	return &PlayError{Kind: DeviceWriteFailed, Path: h.Path, Err: err}
}

// reprepareLocked runs one reset, unprepare, prepare cycle (must hold h.mu)
func (h *Handle) reprepareLocked() error {
	if err := h.device.Reset(); err != nil {
		log.Printf("Warning: reset failed for %s: %v", Filename(h.Path), err)
	}
	if err := h.device.Unprepare(); err != nil {
		return fmt.Errorf("unprepare: %w", err)
	}
	h.prepared = false
	if err := h.device.Prepare(h.data); err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	h.prepared = true
	return nil
}

// releaseLocked unprepares and closes the device (must hold h.mu)
func (h *Handle) releaseLocked() {
	if h.device == nil {
		return
	}
	if h.prepared {
		if err := h.device.Unprepare(); err != nil {
			log.Printf("Warning: unprepare failed for %s: %v", Filename(h.Path), err)
		}
		h.prepared = false
	}
	if h.opened {
		if err := h.device.Close(); err != nil {
			log.Printf("Warning: close failed for %s: %v", Filename(h.Path), err)
		}
		h.opened = false
	}
	h.device = nil
}

// complete is the device completion callback
func (h *Handle) complete() {
	h.inflight.Add(1)
	if h.flags.load()&flagFreed == 0 {
		h.flags.update(flagPlaying, flagDone)
		h.done.signal()
	}
	h.inflight.Add(-1)
}

// Wait blocks until the current playback completes or ctx is done. It
// returns at once when nothing is playing.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done.wait():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unload stops playback and releases the device and the sample buffer.
// Unloading twice is a no-op.
func (h *Handle) Unload() error {
	return h.UnloadContext(context.Background())
}

// UnloadContext is Unload with a caller-supplied bound on the drain wait.
// When the wait is cut short the device is closed anyway and the error
// wraps ErrDrainTimeout.
func (h *Handle) UnloadContext(ctx context.Context) error {
	h.mu.Lock()
	if h.flags.load()&(flagClosing|flagFreed) != 0 {
		h.mu.Unlock()
		return nil
	}
	h.flags.update(0, flagClosing)

	if h.opened {
		if err := h.device.Reset(); err != nil {
			log.Printf("Warning: reset failed for %s: %v", Filename(h.Path), err)
		}
	}
	pending := h.done.wait()
	h.mu.Unlock()

	// Wait without the lock: the callback may still be running
	err := h.drain(ctx, pending)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.releaseLocked()
	h.data = nil
	h.file.Data = nil
	h.flags.update(flagPlaying|flagClosing, flagFreed)

	log.Printf("Unloaded %s (%s)", Filename(h.Path), h.ID)
	return err
}

// drain waits for the completion signal, then for any callback still inside
// its body to leave it
func (h *Handle) drain(ctx context.Context, pending <-chan struct{}) error {
	if h.drainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.drainTimeout)
		defer cancel()
	}

	select {
	case <-pending:
	case <-ctx.Done():
		log.Printf("Warning: no completion for %s after reset, closing device anyway: %v",
			Filename(h.Path), ctx.Err())
		return fmt.Errorf("%w: %v", ErrDrainTimeout, ctx.Err())
	}

	for h.inflight.Load() > 0 {
		runtime.Gosched()
	}
	return nil
}
