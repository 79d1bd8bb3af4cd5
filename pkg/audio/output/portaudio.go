//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Fills PortAudio's callback buffers from the prepared PCM data
package output

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/gtRZync/wav-player/pkg/audio"
	"github.com/gtRZync/wav-player/pkg/audio/decode"
)

// PortAudio output implementation
type PortAudio struct {
	notifier

	mu      sync.Mutex
	stream  *portaudio.Stream
	decoder decode.Decoder

	// guarded by bufMu, read by the stream callback
	bufMu   sync.Mutex
	buf     []byte
	pos     int
	playing bool
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Device {
	return &PortAudio{}
}

// Open initializes PortAudio and starts a callback stream for format
func (p *PortAudio) Open(format audio.Format, onDone func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream != nil {
		return fmt.Errorf("portaudio: stream already open")
	}

	decoder, err := decode.NewPCM(format)
	if err != nil {
		return err
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.onDone = onDone
	p.decoder = decoder

	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), 0, p.callback)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	return nil
}

// callback is invoked by PortAudio on its audio thread
func (p *PortAudio) callback(out []int16) {
	p.bufMu.Lock()
	if !p.playing {
		p.bufMu.Unlock()
		clear(out)
		return
	}

	n := p.decoder.DecodeInto(out, p.buf[p.pos:])
	p.pos += n * 2
	clear(out[n:])

	// a trailing odd byte is not a sample
	finished := len(p.buf)-p.pos < 2
	if finished {
		p.playing = false
	}
	p.bufMu.Unlock()

	if finished {
		p.fire()
	}
}

// Prepare stores the buffer the callback reads from
func (p *PortAudio) Prepare(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return ErrNotOpen
	}

	p.bufMu.Lock()
	p.buf = buf
	p.pos = 0
	p.bufMu.Unlock()
	return nil
}

// Submit rewinds the buffer and lets the callback consume it
func (p *PortAudio) Submit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return ErrNotOpen
	}

	p.bufMu.Lock()
	defer p.bufMu.Unlock()

	if p.buf == nil {
		return ErrNotPrepared
	}
	if p.playing || p.outstanding() {
		return ErrStillPlaying
	}

	p.pos = 0
	p.arm()
	p.playing = true
	return nil
}

// Reset stops consuming the buffer and delivers the aborted completion
func (p *PortAudio) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return ErrNotOpen
	}

	p.bufMu.Lock()
	p.playing = false
	p.bufMu.Unlock()

	p.fire()
	return nil
}

// Unprepare drops the buffer
func (p *PortAudio) Unprepare() error {
	p.bufMu.Lock()
	defer p.bufMu.Unlock()

	if p.playing {
		return ErrStillPlaying
	}
	p.buf = nil
	p.pos = 0
	return nil
}

// Close releases resources
func (p *PortAudio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bufMu.Lock()
	p.playing = false
	p.buf = nil
	p.bufMu.Unlock()
	p.disarm()

	if p.stream == nil {
		return nil
	}

	// Stop waits for the callback to return
	if err := p.stream.Stop(); err != nil {
		return err
	}
	if err := p.stream.Close(); err != nil {
		return err
	}
	p.stream = nil
	return portaudio.Terminate()
}
