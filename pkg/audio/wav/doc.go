// ABOUTME: WAV container package
// ABOUTME: Parser, writer and header dump for 16-bit linear PCM RIFF/WAVE files
// Package wav decodes RIFF/WAVE containers holding 16-bit linear PCM.
//
// Parse reads the fixed header, skips any chunk that is not "data" (LIST,
// smpl, fact, ...) and returns the sample buffer with its format. Every
// failure is a *ParseError whose Kind tells malformed input, unsupported
// encodings, truncated streams and oversized buffers apart.
//
// Example:
//
//	file, err := wav.ParseFile("menu.wav")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(file.Format.SampleRate, file.Frames)
package wav
