package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"pgregory.net/rapid"
)

// ============================================================================
// Property-Based Tests for the container parser
// ============================================================================

// TestProperty_ValidContainersParse verifies that every 16-bit PCM container
// parses and that the frame count divides the data length exactly.
func TestProperty_ValidContainersParse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		channels := rapid.IntRange(1, 8).Draw(t, "channels")
		sampleRate := rapid.IntRange(1, 192000).Draw(t, "sampleRate")
		frames := rapid.IntRange(0, 2048).Draw(t, "frames")

		format := NewFormat(channels, sampleRate)
		data := make([]byte, frames*format.BlockAlign)

		file, err := Parse(bytes.NewReader(Encode(format, data)))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}

		if file.Frames != frames {
			t.Fatalf("expected %d frames, got %d", frames, file.Frames)
		}
		if len(file.Data)%file.Format.BlockAlign != 0 {
			t.Fatalf("data length %d is not a multiple of block align %d", len(file.Data), file.Format.BlockAlign)
		}
		if file.Frames*file.Format.BlockAlign != len(file.Data) {
			t.Fatalf("frames*blockAlign=%d, len(data)=%d", file.Frames*file.Format.BlockAlign, len(file.Data))
		}
	})
}

// TestProperty_MissingMagicIsMalformed verifies that any corruption of the
// RIFF or WAVE magic is reported as MalformedContainer.
func TestProperty_MissingMagicIsMalformed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		format := NewFormat(rapid.IntRange(1, 4).Draw(t, "channels"), 44100)
		stream := Encode(format, make([]byte, format.BlockAlign*4))

		offset := rapid.SampledFrom([]int{0, 8}).Draw(t, "magicOffset")
		magic := rapid.SliceOfN(rapid.Byte(), 4, 4).Draw(t, "magic")
		if offset == 0 && bytes.Equal(magic, magicRIFF[:]) || offset == 8 && bytes.Equal(magic, magicWAVE[:]) {
			t.Skip("generated the real magic")
		}
		copy(stream[offset:offset+4], magic)

		_, err := Parse(bytes.NewReader(stream))
		if !errors.Is(err, ErrMalformedContainer) {
			t.Fatalf("expected MalformedContainer, got %v", err)
		}
	})
}

// TestProperty_OversizedDataIsTruncated verifies that a declared data size
// larger than the remaining stream fails with TruncatedStream.
func TestProperty_OversizedDataIsTruncated(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		actual := rapid.IntRange(0, 512).Draw(t, "actual")
		extra := rapid.IntRange(1, 1<<20).Draw(t, "extra")

		stream := Encode(NewFormat(2, 48000), make([]byte, actual))
		binary.LittleEndian.PutUint32(stream[40:44], uint32(actual+extra))

		_, err := Parse(bytes.NewReader(stream))
		if !errors.Is(err, ErrTruncatedStream) {
			t.Fatalf("expected TruncatedStream, got %v", err)
		}
	})
}
