// ABOUTME: Audio fundamentals package providing core types
// ABOUTME: Defines the Format descriptor shared by the parser, devices and engine
// Package audio provides the PCM format descriptor used throughout wavplay.
//
// A Format is produced by the wav parser, used by output devices to size
// their native buffers, and carried by every playback handle.
//
// Example:
//
//	format := audio.Format{
//	    Encoding:      audio.EncodingPCM,
//	    Channels:      2,
//	    SampleRate:    44100,
//	    ByteRate:      176400,
//	    BlockAlign:    4,
//	    BitsPerSample: 16,
//	}
//
//	frames := format.FrameCount(len(data))
package audio
