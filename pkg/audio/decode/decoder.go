// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for turning raw PCM bytes into native samples
package decode

// Decoder decodes raw PCM frames to 16-bit samples
type Decoder interface {
	// Decode converts raw PCM data to samples
	Decode(data []byte) ([]int16, error)

	// DecodeInto fills dst from data and returns the number of samples written
	DecodeInto(dst []int16, data []byte) int

	// Close releases decoder resources
	Close() error
}
