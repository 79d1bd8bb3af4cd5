// ABOUTME: Resource-tracking fake output device for tests
// ABOUTME: Records every device call and lets tests drive completions by hand
package outputtest

import (
	"errors"
	"sync"

	"github.com/gtRZync/wav-player/pkg/audio"
	"github.com/gtRZync/wav-player/pkg/audio/output"
)

// ErrInjected is the default error returned by injected failures
var ErrInjected = errors.New("outputtest: injected failure")

// Stats is a snapshot of the calls a Device received
type Stats struct {
	Opens      int
	Closes     int
	Prepares   int
	Unprepares int
	Submits    int
	Resets     int
	Completes  int

	// Open and Prepared report the current resource state
	Open     bool
	Prepared bool
	Playing  bool
}

// Outstanding reports whether the device still holds any resource
func (s Stats) Outstanding() bool {
	return s.Open || s.Prepared || s.Playing
}

// Device is an output.Device that plays nothing. Completions are delivered
// by Complete, by Reset (asynchronously, unless ManualResetCompletion is
// set) or, with AutoComplete, right after every Submit on a new goroutine.
type Device struct {
	mu     sync.Mutex
	stats  Stats
	format audio.Format
	onDone func()
	buf    []byte

	// Submitted holds the buffer passed to each successful Submit
	submitted [][]byte

	// FailOpen, FailPrepare are returned by Open / Prepare when non-nil
	FailOpen    error
	FailPrepare error

	// FailSubmits makes the next n Submit calls fail with ErrInjected
	FailSubmits int

	// AutoComplete completes every submission on its own goroutine
	AutoComplete bool

	// ManualResetCompletion leaves the completion of a reset buffer to the
	// test, which must call Complete itself
	ManualResetCompletion bool

	// OnUnprepare and OnClose run at the start of the matching call,
	// without the device lock held
	OnUnprepare func()
	OnClose     func()

	done sync.WaitGroup
}

// New returns a fake device
func New() *Device {
	return &Device{}
}

// Open records the format and completion callback
func (d *Device) Open(format audio.Format, onDone func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.FailOpen != nil {
		return d.FailOpen
	}
	if d.stats.Open {
		return errors.New("outputtest: device already open")
	}

	d.stats.Opens++
	d.stats.Open = true
	d.format = format
	d.onDone = onDone
	return nil
}

// Prepare records the buffer
func (d *Device) Prepare(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.stats.Open {
		return output.ErrNotOpen
	}
	if d.FailPrepare != nil {
		return d.FailPrepare
	}

	d.stats.Prepares++
	d.stats.Prepared = true
	d.buf = buf
	return nil
}

// Submit starts a fake playback of the prepared buffer
func (d *Device) Submit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.stats.Open {
		return output.ErrNotOpen
	}
	if !d.stats.Prepared {
		return output.ErrNotPrepared
	}
	if d.stats.Playing {
		return output.ErrStillPlaying
	}
	if d.FailSubmits > 0 {
		d.FailSubmits--
		return ErrInjected
	}

	d.stats.Submits++
	d.stats.Playing = true
	d.submitted = append(d.submitted, d.buf)

	if d.AutoComplete {
		d.done.Add(1)
		go func() {
			defer d.done.Done()
			d.Complete()
		}()
	}
	return nil
}

// Reset aborts the current submission
func (d *Device) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.stats.Open {
		return output.ErrNotOpen
	}
	d.stats.Resets++

	if d.stats.Playing && !d.ManualResetCompletion {
		d.done.Add(1)
		go func() {
			defer d.done.Done()
			d.Complete()
		}()
	}
	return nil
}

// Unprepare releases the buffer
func (d *Device) Unprepare() error {
	d.mu.Lock()
	hook := d.OnUnprepare
	d.mu.Unlock()
	if hook != nil {
		hook()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stats.Playing {
		return output.ErrStillPlaying
	}
	if d.stats.Prepared {
		d.stats.Unprepares++
	}
	d.stats.Prepared = false
	d.buf = nil
	return nil
}

// Close releases the binding
func (d *Device) Close() error {
	d.mu.Lock()
	hook := d.OnClose
	d.mu.Unlock()
	if hook != nil {
		hook()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stats.Open {
		d.stats.Closes++
	}
	d.stats.Open = false
	d.stats.Prepared = false
	d.stats.Playing = false
	d.buf = nil
	d.onDone = nil
	return nil
}

// Complete delivers the completion of the current submission on the calling
// goroutine, the way an audio thread would. It returns false when nothing
// is playing.
func (d *Device) Complete() bool {
	d.mu.Lock()
	if !d.stats.Playing {
		d.mu.Unlock()
		return false
	}
	d.stats.Playing = false
	d.stats.Completes++
	onDone := d.onDone
	d.mu.Unlock()

	if onDone != nil {
		onDone()
	}
	return true
}

// Wait blocks until every completion goroutine started by the device returned
func (d *Device) Wait() {
	d.done.Wait()
}

// Stats returns a snapshot of the recorded calls
func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Format returns the format passed to Open
func (d *Device) Format() audio.Format {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.format
}

// Submitted returns the buffers passed to each successful Submit
func (d *Device) Submitted() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]byte(nil), d.submitted...)
}

// Recorder hands out fake devices and keeps every one it created
type Recorder struct {
	mu      sync.Mutex
	devices []*Device

	// Configure, when set, adjusts each new device before it is returned
	Configure func(*Device)
}

// New implements output.Factory
func (r *Recorder) New() output.Device {
	d := New()
	if r.Configure != nil {
		r.Configure(d)
	}

	r.mu.Lock()
	r.devices = append(r.devices, d)
	r.mu.Unlock()
	return d
}

// Devices returns all devices created so far
func (r *Recorder) Devices() []*Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Device(nil), r.devices...)
}

// Last returns the most recently created device, or nil
func (r *Recorder) Last() *Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.devices) == 0 {
		return nil
	}
	return r.devices[len(r.devices)-1]
}

var _ output.Device = (*Device)(nil)
