// ABOUTME: Playback engine package for loaded WAV sounds
// ABOUTME: Documents the handle lifecycle and basic usage
// Package sound plays WAV files through an asynchronous output device.
//
// Each Handle owns one parsed sample buffer and one device binding. Play
// submits the whole buffer and returns at once; the device reports the end
// of playback through a callback that flips the handle back to not playing.
// Unload aborts playback, waits for that callback to finish and only then
// releases the device and the buffer.
//
// Basic usage:
//
//	h, err := sound.Load("chime.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer h.Unload()
//
//	if err := h.Play(); err != nil {
//		log.Fatal(err)
//	}
//	for h.IsPlaying() {
//		time.Sleep(10 * time.Millisecond)
//	}
package sound
