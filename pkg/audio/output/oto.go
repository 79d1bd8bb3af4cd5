// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays one prepared PCM buffer and watches the player for completion
package output

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gtRZync/wav-player/pkg/audio"
)

// otoPollInterval is how often the watcher checks whether the player drained
const otoPollInterval = 5 * time.Millisecond

// oto allows only one context per process
var (
	otoOnce    sync.Once
	otoCtx     *oto.Context
	otoFormat  audio.Format
	otoInitErr error
)

func otoContext(format audio.Format) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			otoInitErr = fmt.Errorf("failed to create oto context: %w", otoInitErr)
			return
		}
		<-readyChan

		otoFormat = format
		log.Printf("Audio output initialized: %dHz, %d channels (oto)", format.SampleRate, format.Channels)
	})

	if otoInitErr != nil {
		return nil, otoInitErr
	}

	// oto can't be reinitialized, so a second format can't be served
	if otoFormat.SampleRate != format.SampleRate || otoFormat.Channels != format.Channels {
		return nil, fmt.Errorf("oto context already running at %dHz %dch, cannot open %dHz %dch",
			otoFormat.SampleRate, otoFormat.Channels, format.SampleRate, format.Channels)
	}

	return otoCtx, nil
}

// Oto output implementation using oto library
type Oto struct {
	notifier

	mu     sync.Mutex
	ctx    *oto.Context
	format audio.Format
	player *oto.Player
	buf    []byte

	// watcher goroutine of the current submission
	stop    chan struct{}
	stopped chan struct{}
}

// NewOto creates a new Oto output
func NewOto() Device {
	return &Oto{}
}

// Open binds the output to the shared oto context
func (o *Oto) Open(format audio.Format, onDone func()) error {
	if format.BitsPerSample != 16 {
		return fmt.Errorf("oto only supports 16-bit output, got %d-bit", format.BitsPerSample)
	}

	ctx, err := otoContext(format)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.ctx = ctx
	o.format = format
	o.onDone = onDone
	return nil
}

// Prepare creates the player reading from buf
func (o *Oto) Prepare(buf []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil {
		return ErrNotOpen
	}
	if o.player != nil {
		return fmt.Errorf("oto: buffer already prepared")
	}

	o.buf = buf
	o.player = o.ctx.NewPlayer(bytes.NewReader(buf))
	return nil
}

// Submit rewinds the player and starts it
func (o *Oto) Submit() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil {
		return ErrNotOpen
	}
	if o.player == nil {
		return ErrNotPrepared
	}
	if o.outstanding() {
		return ErrStillPlaying
	}

	if _, err := o.player.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("oto: rewind failed: %w", err)
	}
	if err := o.player.Err(); err != nil {
		return fmt.Errorf("oto: player error: %w", err)
	}

	o.arm()
	o.player.Play()

	o.stop = make(chan struct{})
	o.stopped = make(chan struct{})
	go o.watch(o.player, o.stop, o.stopped)

	return nil
}

// watch polls the player until it drains or the submission is stopped
func (o *Oto) watch(player *oto.Player, stop, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(otoPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !player.IsPlaying() {
				o.fire()
				return
			}
		}
	}
}

// Reset pauses the player and delivers the completion of an aborted buffer
func (o *Oto) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil {
		return ErrNotOpen
	}
	if o.player != nil {
		o.player.Pause()
	}
	o.stopWatcher()
	o.fire()
	return nil
}

// stopWatcher ends the watcher goroutine (must hold o.mu)
func (o *Oto) stopWatcher() {
	if o.stop == nil {
		return
	}
	close(o.stop)
	<-o.stopped
	o.stop = nil
	o.stopped = nil
}

// Unprepare closes the player
func (o *Oto) Unprepare() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.outstanding() {
		return ErrStillPlaying
	}
	return o.unprepareLocked()
}

func (o *Oto) unprepareLocked() error {
	o.stopWatcher()
	var err error
	if o.player != nil {
		err = o.player.Close()
		o.player = nil
	}
	o.buf = nil
	return err
}

// Close releases output resources. The oto context itself stays alive for
// the rest of the process.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		o.player.Pause()
	}
	o.disarm()
	err := o.unprepareLocked()
	o.ctx = nil
	o.onDone = nil
	return err
}
