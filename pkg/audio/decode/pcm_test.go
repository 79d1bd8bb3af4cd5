// ABOUTME: Tests for PCM decoder
// ABOUTME: Tests 16-bit PCM decoding and format validation
package decode

import (
	"testing"

	"github.com/gtRZync/wav-player/pkg/audio"
)

func stereo16() audio.Format {
	return audio.Format{
		Encoding:      audio.EncodingPCM,
		SampleRate:    48000,
		Channels:      2,
		BlockAlign:    4,
		BitsPerSample: 16,
	}
}

func TestNewPCM(t *testing.T) {
	decoder, err := NewPCM(stereo16())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
}

func TestPCMDecode16Bit(t *testing.T) {
	decoder, err := NewPCM(stereo16())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// PCM converts bytes to int16 samples (little-endian)
	// Input: 4 bytes -> Output: 2 int16 samples
	input := []byte{0x00, 0x01, 0xFF, 0xFF}
	output, err := decoder.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(output) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(output))
	}

	// 0x00, 0x01 -> 0x0100 = 256
	if output[0] != 256 {
		t.Errorf("expected first sample 256, got %d", output[0])
	}
	// 0xFF, 0xFF -> -1
	if output[1] != -1 {
		t.Errorf("expected second sample -1, got %d", output[1])
	}
}

func TestPCMDecodeDropsPartialFrame(t *testing.T) {
	decoder, err := NewPCM(stereo16())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// One whole stereo frame plus half a frame
	output, err := decoder.Decode([]byte{1, 0, 2, 0, 3, 0})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(output) != 2 {
		t.Errorf("expected 2 samples, got %d", len(output))
	}
}

func TestPCMDecodeInto(t *testing.T) {
	decoder, err := NewPCM(stereo16())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	dst := make([]int16, 2)
	n := decoder.DecodeInto(dst, []byte{1, 0, 2, 0, 3, 0, 4, 0})
	if n != 2 {
		t.Fatalf("expected 2 samples written, got %d", n)
	}
	if dst[0] != 1 || dst[1] != 2 {
		t.Errorf("expected [1 2], got %v", dst)
	}

	n = decoder.DecodeInto(make([]int16, 8), []byte{5, 0})
	if n != 1 {
		t.Errorf("expected 1 sample written for short input, got %d", n)
	}
}

func TestNewPCM_InvalidEncoding(t *testing.T) {
	format := stereo16()
	format.Encoding = "opus"

	decoder, err := NewPCM(format)
	if err == nil {
		t.Fatal("expected error for invalid encoding, got nil")
	}

	if decoder != nil {
		t.Fatal("expected decoder to be nil for invalid encoding")
	}

	expectedError := "invalid encoding for PCM decoder: opus"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestNewPCM_UnsupportedBitDepth(t *testing.T) {
	format := stereo16()
	format.BitsPerSample = 24

	decoder, err := NewPCM(format)
	if err == nil {
		t.Fatal("expected error for unsupported bit depth, got nil")
	}

	if decoder != nil {
		t.Fatal("expected decoder to be nil for unsupported bit depth")
	}

	expectedError := "unsupported bit depth: 24 (supported: 16)"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestPCMDecode_EmptyInput(t *testing.T) {
	decoder, err := NewPCM(stereo16())
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	output, err := decoder.Decode([]byte{})
	if err != nil {
		t.Fatalf("decode failed with empty input: %v", err)
	}

	if len(output) != 0 {
		t.Errorf("expected 0 samples from empty input, got %d", len(output))
	}
}
