// ABOUTME: Canonical WAV container writer
// ABOUTME: Wraps raw 16-bit PCM frames in a 44-byte RIFF/WAVE header
package wav

import (
	"encoding/binary"

	"github.com/gtRZync/wav-player/pkg/audio"
)

// CanonicalHeaderSize is the size of the header written by Encode
const CanonicalHeaderSize = HeaderSize + 8

// NewFormat returns a 16-bit PCM format with derived byte rate and block align
func NewFormat(channels, sampleRate int) audio.Format {
	blockAlign := channels * BitsPerSample / 8
	return audio.Format{
		Encoding:      audio.EncodingPCM,
		Channels:      channels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * blockAlign,
		BlockAlign:    blockAlign,
		BitsPerSample: BitsPerSample,
	}
}

// Encode returns a complete WAV container holding data in the given format
func Encode(format audio.Format, data []byte) []byte {
	out := make([]byte, CanonicalHeaderSize+len(data))

	// RIFF header
	copy(out[0:4], magicRIFF[:])
	binary.LittleEndian.PutUint32(out[4:8], uint32(CanonicalHeaderSize-8+len(data)))
	copy(out[8:12], magicWAVE[:])

	// fmt subchunk
	copy(out[12:16], magicFmt[:])
	binary.LittleEndian.PutUint32(out[16:20], fmtBodySize)
	binary.LittleEndian.PutUint16(out[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(out[22:24], uint16(format.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(format.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(format.ByteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(format.BlockAlign))
	binary.LittleEndian.PutUint16(out[34:36], uint16(format.BitsPerSample))

	// data subchunk
	copy(out[36:40], magicData[:])
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(data)))
	copy(out[CanonicalHeaderSize:], data)

	return out
}
