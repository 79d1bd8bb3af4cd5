// ABOUTME: Audio type definitions
// ABOUTME: Defines the PCM format descriptor and its derived values
package audio

import "time"

// EncodingPCM is the only encoding tag this module plays: uncompressed
// linear PCM (WAVE format tag 1).
const EncodingPCM = "pcm"

// Format describes a decoded PCM stream
type Format struct {
	Encoding      string
	Channels      int
	SampleRate    int // Hz
	ByteRate      int // bytes per second
	BlockAlign    int // bytes per frame
	BitsPerSample int
}

// BytesPerSample returns the size of one sample of one channel
func (f Format) BytesPerSample() int {
	return f.BitsPerSample / 8
}

// FrameCount returns the number of whole frames in n bytes of sample data
func (f Format) FrameCount(n int) int {
	if f.BlockAlign <= 0 {
		return 0
	}
	return n / f.BlockAlign
}

// Duration returns the playback length of n bytes of sample data.
// The byte rate is used when present, otherwise it is derived from the
// frame count and sample rate.
func (f Format) Duration(n int) time.Duration {
	if f.ByteRate > 0 {
		return time.Duration(float64(n) / float64(f.ByteRate) * float64(time.Second))
	}
	if f.SampleRate <= 0 {
		return 0
	}
	frames := f.FrameCount(n)
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// ChannelLayout returns a human-readable channel layout name
func (f Format) ChannelLayout() string {
	switch f.Channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return "Multi-channel"
	}
}
