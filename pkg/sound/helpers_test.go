package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gtRZync/wav-player/pkg/audio/output/outputtest"
	"github.com/gtRZync/wav-player/pkg/audio/wav"
)

// writeWAV writes a stereo 44.1kHz file holding n bytes of silence
func writeWAV(t testing.TB, dir, name string, n int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := wav.Encode(wav.NewFormat(2, 44100), make([]byte, n))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// newTestEngine returns an engine on fake devices
func newTestEngine(t testing.TB, configure func(*outputtest.Device)) (*Engine, *outputtest.Recorder) {
	t.Helper()
	rec := &outputtest.Recorder{Configure: configure}
	e, err := NewEngine(Config{NewDevice: rec.New, DrainTimeout: 2 * time.Second})
	require.NoError(t, err)
	return e, rec
}

// loadTest loads a 1000 byte file on a fresh fake device
func loadTest(t testing.TB, configure func(*outputtest.Device)) (*Handle, *outputtest.Device) {
	t.Helper()
	e, rec := newTestEngine(t, configure)
	h, err := e.Load(writeWAV(t, t.TempDir(), "tone.wav", 1000))
	require.NoError(t, err)
	return h, rec.Last()
}
