// ABOUTME: Audio decoder package for native sample conversion
// ABOUTME: Provides the Decoder interface and the 16-bit PCM implementation
// Package decode converts raw PCM bytes into native samples.
//
// Callback-driven output backends that hand out []int16 buffers (PortAudio)
// use it to fill each native buffer from the loaded sample data.
//
// Example:
//
//	decoder, err := decode.NewPCM(format)
//	n := decoder.DecodeInto(out, data[pos:])
package decode
