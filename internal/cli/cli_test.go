// ABOUTME: Tests for the wavplay commands
// ABOUTME: Runs info, play and version against temp files and fake devices
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtRZync/wav-player/internal/version"
	"github.com/gtRZync/wav-player/pkg/audio/output/outputtest"
	"github.com/gtRZync/wav-player/pkg/audio/wav"
	"github.com/gtRZync/wav-player/pkg/sound"
)

func writeWAV(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data := wav.Encode(wav.NewFormat(2, 44100), make([]byte, 1000))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func run(t *testing.T, opts *options, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand(opts)
	root.SetOut(&out)
	root.SetErr(&out)
	base := []string{"--env-file", filepath.Join(t.TempDir(), "none.env")}
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, &options{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version.Product)
	assert.Contains(t, out, version.Version)
}

func TestInfoCommand(t *testing.T) {
	out, err := run(t, &options{}, "info", writeWAV(t, "tone.wav"))
	require.NoError(t, err)

	assert.Contains(t, out, "WAV Header Info")
	assert.Contains(t, out, "Number of Channels: 2 (Stereo)")
	assert.Contains(t, out, "Sample Rate: 44100 Hz")
	assert.Contains(t, out, "Frames: 250")
	assert.Contains(t, out, "Peak Level (ch 2): 0 (silent)")
}

func TestPeaks(t *testing.T) {
	// stereo frames (100, -200), (-300, 50)
	data := []byte{100, 0, 0x38, 0xff, 0xd4, 0xfe, 50, 0}
	file, err := wav.Parse(bytes.NewReader(wav.Encode(wav.NewFormat(2, 8000), data)))
	require.NoError(t, err)

	got, err := peaks(file)
	require.NoError(t, err)
	assert.Equal(t, []int{300, 200}, got)

	var out bytes.Buffer
	require.NoError(t, printPeaks(&out, file))
	assert.Contains(t, out.String(), "Peak Level (ch 1): 300 (-40.8 dBFS)")
}

func TestInfoCommandMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

	_, err := run(t, &options{}, "info", path)
	assert.ErrorIs(t, err, wav.ErrMalformedContainer)
}

func TestPlayCommandWithoutTUI(t *testing.T) {
	rec := &outputtest.Recorder{Configure: func(d *outputtest.Device) {
		d.AutoComplete = true
	}}
	logFile := filepath.Join(t.TempDir(), "wavplay.log")

	out, err := run(t, &options{newDevice: rec.New},
		"play", "--no-tui", "--log-file", logFile, "--repeat", "3", writeWAV(t, "tone.wav"))
	require.NoError(t, err)

	dev := rec.Last()
	require.NotNil(t, dev)
	dev.Wait()
	assert.Equal(t, 3, dev.Stats().Submits)
	assert.False(t, dev.Stats().Outstanding())
	assert.Contains(t, out, "Playing tone.wav (3/3")

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "Loaded tone.wav")
}

func TestPlayCommandInvalidExtension(t *testing.T) {
	rec := &outputtest.Recorder{}
	_, err := run(t, &options{newDevice: rec.New},
		"play", "--no-tui", "--log-file", filepath.Join(t.TempDir(), "x.log"), "tone.mp3")

	var lerr *sound.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, sound.InvalidExtension, lerr.Kind)
	assert.Empty(t, rec.Devices())
}

func TestPlayCommandRejectsZeroRepeat(t *testing.T) {
	_, err := run(t, &options{}, "play", "--no-tui", "--repeat", "0", "tone.wav")
	assert.Error(t, err)
}
