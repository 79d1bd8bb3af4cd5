// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the Device interface and oto, malgo and PortAudio backends
// Package output provides single-buffer asynchronous playback devices.
//
// A Device mirrors the classic waveOut life cycle: Open a stream, Prepare a
// buffer, Submit it, and get one completion callback per submission on a
// thread the caller does not own. Reset aborts the buffer (still producing
// its completion), Unprepare and Close release resources.
//
// Backends: oto (default, pure Go), malgo (miniaudio) and PortAudio
// (build with -tags portaudio).
//
// Example:
//
//	newDevice, err := output.Lookup("oto")
//	dev := newDevice()
//	err = dev.Open(format, func() { log.Print("done") })
//	err = dev.Prepare(data)
//	err = dev.Submit()
package output
