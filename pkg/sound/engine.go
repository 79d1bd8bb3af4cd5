// ABOUTME: Playback engine that turns WAV files into playable handles
// ABOUTME: Validates paths, parses containers and binds each handle to a device
package sound

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gtRZync/wav-player/pkg/audio/output"
	"github.com/gtRZync/wav-player/pkg/audio/wav"
)

// DefaultDrainTimeout bounds how long Unload waits for an aborted buffer
const DefaultDrainTimeout = 5 * time.Second

// Config holds engine configuration
type Config struct {
	// Backend names the output backend; empty selects output.DefaultBackend
	Backend string

	// NewDevice overrides Backend when set
	NewDevice output.Factory

	// DrainTimeout bounds the wait in Unload. Zero selects
	// DefaultDrainTimeout, a negative value waits forever.
	DrainTimeout time.Duration

	// MaxDataSize caps the audio payload size; zero keeps the parser default
	MaxDataSize uint32
}

// Engine loads sounds onto output devices
type Engine struct {
	newDevice    output.Factory
	drainTimeout time.Duration
	parseOpts    []wav.Option
}

// NewEngine creates an engine
func NewEngine(config Config) (*Engine, error) {
	newDevice := config.NewDevice
	if newDevice == nil {
		f, err := output.Lookup(config.Backend)
		if err != nil {
			return nil, err
		}
		newDevice = f
	}

	drain := config.DrainTimeout
	if drain == 0 {
		drain = DefaultDrainTimeout
	}

	var opts []wav.Option
	if config.MaxDataSize > 0 {
		opts = append(opts, wav.WithMaxDataSize(config.MaxDataSize))
	}

	return &Engine{
		newDevice:    newDevice,
		drainTimeout: drain,
		parseOpts:    opts,
	}, nil
}

// Load parses the WAV file at path and binds it to a fresh output device
// with its buffer prepared. The returned handle is Idle.
func (e *Engine) Load(path string) (*Handle, error) {
	if !ValidExtension(path) {
		return nil, &LoadError{Kind: InvalidExtension, Path: path}
	}

	file, err := wav.ParseFile(path, e.parseOpts...)
	if err != nil {
		return nil, &LoadError{Kind: Parse, Path: path, Err: err}
	}

	h := &Handle{
		ID:           uuid.New(),
		Path:         path,
		file:         file,
		data:         file.Data,
		done:         newCompletion(),
		drainTimeout: e.drainTimeout,
	}

	device := e.newDevice()
	if err := device.Open(file.Format, h.complete); err != nil {
		closeQuietly(device, path)
		return nil, &LoadError{Kind: DeviceOpenFailed, Path: path, Err: err}
	}
	if err := device.Prepare(h.data); err != nil {
		closeQuietly(device, path)
		return nil, &LoadError{
			Kind: DeviceOpenFailed,
			Path: path,
			Err:  fmt.Errorf("failed to prepare buffer: %w", err),
		}
	}

	h.device = device
	h.opened = true
	h.prepared = true

	log.Printf("Loaded %s: %dHz, %d channels, %d frames (%s)",
		Filename(path), file.Format.SampleRate, file.Format.Channels, file.Frames, h.ID)
	return h, nil
}

func closeQuietly(device output.Device, path string) {
	if err := device.Close(); err != nil {
		log.Printf("Warning: failed to close device for %s: %v", path, err)
	}
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
	defaultErr    error
)

// Default returns the process-wide engine on the default backend
func Default() (*Engine, error) {
	defaultOnce.Do(func() {
		defaultEngine, defaultErr = NewEngine(Config{})
	})
	return defaultEngine, defaultErr
}

// Load loads path on the default engine
func Load(path string) (*Handle, error) {
	e, err := Default()
	if err != nil {
		return nil, &LoadError{Kind: DeviceOpenFailed, Path: path, Err: err}
	}
	return e.Load(path)
}
