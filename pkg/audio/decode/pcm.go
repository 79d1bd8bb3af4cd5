// ABOUTME: PCM audio decoder
// ABOUTME: Decodes 16-bit little-endian PCM frames to int16 samples
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/gtRZync/wav-player/pkg/audio"
)

// PCMDecoder decodes PCM audio
type PCMDecoder struct {
	blockAlign int
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Encoding != audio.EncodingPCM {
		return nil, fmt.Errorf("invalid encoding for PCM decoder: %s", format.Encoding)
	}

	if format.BitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitsPerSample)
	}

	return &PCMDecoder{
		blockAlign: format.BlockAlign,
	}, nil
}

// Decode converts PCM bytes to int16 samples. Trailing bytes that do not
// form a whole frame are dropped.
func (d *PCMDecoder) Decode(data []byte) ([]int16, error) {
	if d.blockAlign > 0 {
		data = data[:len(data)-len(data)%d.blockAlign]
	}
	samples := make([]int16, len(data)/2)
	d.DecodeInto(samples, data)
	return samples, nil
}

// DecodeInto converts as many samples as fit in dst
func (d *PCMDecoder) DecodeInto(dst []int16, data []byte) int {
	n := len(data) / 2
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return n
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
