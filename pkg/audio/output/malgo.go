// ABOUTME: Malgo-based audio output implementation
// ABOUTME: miniaudio pulls the prepared buffer from its own audio thread
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/gtRZync/wav-player/pkg/audio"
)

// Malgo output implementation using malgo/miniaudio library.
// Completion is delivered from miniaudio's data callback thread.
type Malgo struct {
	notifier

	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	format   audio.Format

	// guarded by bufMu, read by the data callback
	bufMu   sync.Mutex
	buf     []byte
	pos     int
	playing bool
}

// NewMalgo creates a new Malgo output
func NewMalgo() Device {
	return &Malgo{}
}

// Open initializes a playback device with the specified format
func (m *Malgo) Open(format audio.Format, onDone func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return fmt.Errorf("malgo: device already open")
	}
	if format.BitsPerSample != 16 {
		return fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitsPerSample)
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	m.onDone = onDone
	deviceCallbacks := malgo.DeviceCallbacks{
		Data: func(pOutputSample, pInputSamples []byte, frameCount uint32) {
			m.dataCallback(pOutputSample)
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		m.freeContext(ctx)
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	// The device runs for the whole binding and renders silence while idle
	if err := device.Start(); err != nil {
		device.Uninit()
		m.freeContext(ctx)
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.malgoCtx = ctx
	m.device = device
	m.format = format

	log.Printf("Audio output initialized: %dHz, %d channels (malgo)", format.SampleRate, format.Channels)
	return nil
}

// dataCallback is called by malgo to fill the audio output buffer
func (m *Malgo) dataCallback(out []byte) {
	m.bufMu.Lock()
	if !m.playing {
		m.bufMu.Unlock()
		clear(out)
		return
	}

	n := copy(out, m.buf[m.pos:])
	m.pos += n
	clear(out[n:])

	finished := m.pos >= len(m.buf)
	if finished {
		m.playing = false
	}
	m.bufMu.Unlock()

	if finished {
		m.fire()
	}
}

// Prepare stores the buffer the callback reads from
func (m *Malgo) Prepare(buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return ErrNotOpen
	}

	m.bufMu.Lock()
	m.buf = buf
	m.pos = 0
	m.bufMu.Unlock()
	return nil
}

// Submit rewinds the buffer and lets the callback consume it
func (m *Malgo) Submit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return ErrNotOpen
	}

	m.bufMu.Lock()
	defer m.bufMu.Unlock()

	if m.buf == nil {
		return ErrNotPrepared
	}
	if m.playing || m.outstanding() {
		return ErrStillPlaying
	}

	m.pos = 0
	m.arm()
	m.playing = true
	return nil
}

// Reset stops consuming the buffer and delivers the aborted completion
func (m *Malgo) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return ErrNotOpen
	}

	m.bufMu.Lock()
	m.playing = false
	m.bufMu.Unlock()

	m.fire()
	return nil
}

// Unprepare drops the buffer
func (m *Malgo) Unprepare() error {
	m.bufMu.Lock()
	defer m.bufMu.Unlock()

	if m.playing {
		return ErrStillPlaying
	}
	m.buf = nil
	m.pos = 0
	return nil
}

// Close releases output resources
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bufMu.Lock()
	m.playing = false
	m.buf = nil
	m.bufMu.Unlock()
	m.disarm()

	if m.device != nil {
		// Uninit waits for the audio thread, so no callback runs afterwards
		m.device.Uninit()
		m.device = nil
	}

	if m.malgoCtx != nil {
		m.freeContext(m.malgoCtx)
		m.malgoCtx = nil
	}

	return nil
}

func (m *Malgo) freeContext(ctx *malgo.AllocatedContext) {
	if err := ctx.Uninit(); err != nil {
		log.Printf("Warning: malgo context uninit error: %v", err)
	}
	ctx.Free()
}
