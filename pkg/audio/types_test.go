// ABOUTME: Tests for audio types
// ABOUTME: Tests derived format values
package audio

import (
	"testing"
	"time"
)

func cdFormat() Format {
	return Format{
		Encoding:      EncodingPCM,
		Channels:      2,
		SampleRate:    44100,
		ByteRate:      176400,
		BlockAlign:    4,
		BitsPerSample: 16,
	}
}

func TestFrameCount(t *testing.T) {
	f := cdFormat()

	tests := []struct {
		name     string
		bytes    int
		expected int
	}{
		{"empty", 0, 0},
		{"one frame", 4, 1},
		{"1000 bytes", 1000, 250},
		{"partial frame", 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := f.FrameCount(tt.bytes)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestFrameCountZeroBlockAlign(t *testing.T) {
	f := Format{}
	if n := f.FrameCount(100); n != 0 {
		t.Errorf("expected 0 frames for zero block align, got %d", n)
	}
}

func TestDuration(t *testing.T) {
	f := cdFormat()

	if d := f.Duration(176400); d != time.Second {
		t.Errorf("expected 1s, got %v", d)
	}

	// Without a byte rate the duration comes from frames / sample rate
	f.ByteRate = 0
	if d := f.Duration(176400 / 2); d != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", d)
	}

	f.SampleRate = 0
	if d := f.Duration(100); d != 0 {
		t.Errorf("expected 0 duration without rates, got %v", d)
	}
}

func TestChannelLayout(t *testing.T) {
	tests := []struct {
		channels int
		expected string
	}{
		{1, "Mono"},
		{2, "Stereo"},
		{6, "Multi-channel"},
	}

	for _, tt := range tests {
		f := Format{Channels: tt.channels}
		if got := f.ChannelLayout(); got != tt.expected {
			t.Errorf("channels=%d: expected %q, got %q", tt.channels, tt.expected, got)
		}
	}
}

func TestBytesPerSample(t *testing.T) {
	f := cdFormat()
	if f.BytesPerSample() != 2 {
		t.Errorf("expected 2 bytes per sample, got %d", f.BytesPerSample())
	}
}
