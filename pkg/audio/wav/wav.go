// ABOUTME: RIFF/WAVE container parser
// ABOUTME: Validates the fixed header, scans chunks and reads 16-bit PCM data
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gtRZync/wav-player/pkg/audio"
)

const (
	// FormatPCM is the format tag for uncompressed linear PCM
	FormatPCM = 1

	// BitsPerSample is the only sample width accepted by the parser
	BitsPerSample = 16

	// HeaderSize is the size of the fixed header region before the chunk scan
	HeaderSize = 36

	// DefaultMaxDataSize caps the sample buffer a single file may allocate
	DefaultMaxDataSize = 1 << 30

	// fmtBodySize is the size of a plain PCM "fmt " chunk body
	fmtBodySize = 16

	// directReadLimit is the largest data chunk read into an exactly-sized
	// buffer up front; larger chunks grow as bytes actually arrive so a
	// lying size field cannot force a huge allocation.
	directReadLimit = 4 << 20
)

var (
	magicRIFF = [4]byte{'R', 'I', 'F', 'F'}
	magicWAVE = [4]byte{'W', 'A', 'V', 'E'}
	magicFmt  = [4]byte{'f', 'm', 't', ' '}
	magicData = [4]byte{'d', 'a', 't', 'a'}
)

// Header holds the raw header fields as they appear in the container
type Header struct {
	RIFFSize      uint32
	FmtSize       uint32
	FormatTag     uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// File is a parsed WAV container
type File struct {
	Header Header
	Format audio.Format

	// Data holds the raw little-endian PCM frames of the data chunk
	Data []byte

	// Frames is len(Data) / BlockAlign
	Frames int

	// Skipped lists the ids of chunks passed over before the data chunk
	Skipped []string
}

// Duration returns the playback length of the sample data
func (f *File) Duration() time.Duration {
	return f.Format.Duration(len(f.Data))
}

type options struct {
	maxDataSize uint32
}

// Option configures Parse
type Option func(*options)

// WithMaxDataSize overrides DefaultMaxDataSize
func WithMaxDataSize(n uint32) Option {
	return func(o *options) {
		o.maxDataSize = n
	}
}

// ParseFile opens path and parses it as a WAV container
func ParseFile(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, opts...)
}

// Parse decodes a WAV container from r. All failures are *ParseError.
func Parse(r io.Reader, opts ...Option) (*File, error) {
	o := options{maxDataSize: DefaultMaxDataSize}
	for _, opt := range opts {
		opt(&o)
	}

	rd := &reader{r: r}
	file := &File{}
	h := &file.Header

	id, err := rd.id()
	if err != nil {
		return nil, truncated("RIFF magic", err)
	}
	if id != magicRIFF {
		return nil, parseErrorf(MalformedContainer, "first 4 bytes should be %q but are %q", magicRIFF[:], id[:])
	}

	if h.RIFFSize, err = rd.u32(); err != nil {
		return nil, truncated("RIFF size", err)
	}

	if id, err = rd.id(); err != nil {
		return nil, truncated("WAVE magic", err)
	}
	if id != magicWAVE {
		return nil, parseErrorf(MalformedContainer, "format should be %q but is %q", magicWAVE[:], id[:])
	}

	if id, err = rd.id(); err != nil {
		return nil, truncated("fmt chunk id", err)
	}
	if id != magicFmt {
		return nil, parseErrorf(MalformedContainer, "subchunk id should be %q but is %q", magicFmt[:], id[:])
	}

	var fmtBody struct {
		Size          uint32
		FormatTag     uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &fmtBody); err != nil {
		return nil, truncated("fmt chunk", err)
	}
	h.FmtSize = fmtBody.Size
	h.FormatTag = fmtBody.FormatTag
	h.Channels = fmtBody.Channels
	h.SampleRate = fmtBody.SampleRate
	h.ByteRate = fmtBody.ByteRate
	h.BlockAlign = fmtBody.BlockAlign
	h.BitsPerSample = fmtBody.BitsPerSample

	if h.FormatTag != FormatPCM {
		return nil, parseErrorf(UnsupportedEncoding, "format tag should be %d but is %d", FormatPCM, h.FormatTag)
	}
	if h.BitsPerSample != BitsPerSample {
		return nil, parseErrorf(UnsupportedEncoding, "bits per sample should be %d but is %d", BitsPerSample, h.BitsPerSample)
	}
	if h.Channels == 0 {
		return nil, parseErrorf(MalformedContainer, "channel count is 0")
	}
	if h.SampleRate == 0 {
		return nil, parseErrorf(MalformedContainer, "sample rate is 0")
	}
	if want := int(h.Channels) * BitsPerSample / 8; int(h.BlockAlign) != want {
		return nil, parseErrorf(MalformedContainer, "block align should be %d but is %d", want, h.BlockAlign)
	}

	// Extended fmt chunks (cbSize, WAVE_FORMAT_EXTENSIBLE) carry extra
	// bytes after the PCM fields.
	if h.FmtSize > fmtBodySize {
		if err := rd.skip(int64(h.FmtSize-fmtBodySize) + int64(h.FmtSize&1)); err != nil {
			return nil, truncated("fmt chunk extension", err)
		}
	}

	for {
		id, err := rd.id()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, parseErrorf(TruncatedStream, "no data chunk before end of stream")
			}
			return nil, truncated("chunk id", err)
		}

		size, err := rd.u32()
		if err != nil {
			return nil, truncated(fmt.Sprintf("%q chunk size", id[:]), err)
		}

		if id == magicData {
			h.DataSize = size
			break
		}

		file.Skipped = append(file.Skipped, string(id[:]))
		if err := rd.skip(int64(size) + int64(size&1)); err != nil {
			return nil, truncated(fmt.Sprintf("%q chunk", id[:]), err)
		}
	}

	if h.DataSize > o.maxDataSize {
		return nil, parseErrorf(OutOfMemory, "failed to allocate %d bytes for data (limit %d)", h.DataSize, o.maxDataSize)
	}

	data, err := readData(r, h.DataSize)
	if err != nil {
		return nil, err
	}

	file.Data = data
	file.Format = audio.Format{
		Encoding:      audio.EncodingPCM,
		Channels:      int(h.Channels),
		SampleRate:    int(h.SampleRate),
		ByteRate:      int(h.ByteRate),
		BlockAlign:    int(h.BlockAlign),
		BitsPerSample: int(h.BitsPerSample),
	}
	file.Frames = file.Format.FrameCount(len(data))

	return file, nil
}

func readData(r io.Reader, size uint32) ([]byte, error) {
	if size <= directReadLimit {
		data := make([]byte, size)
		if n, err := io.ReadFull(r, data); err != nil {
			return nil, &ParseError{
				Kind: TruncatedStream,
				Msg:  fmt.Sprintf("read %d of %d data bytes", n, size),
				Err:  err,
			}
		}
		return data, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, directReadLimit))
	n, err := io.CopyN(buf, r, int64(size))
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &ParseError{
			Kind: TruncatedStream,
			Msg:  fmt.Sprintf("read %d of %d data bytes", n, size),
			Err:  err,
		}
	}
	return buf.Bytes(), nil
}

// reader reads little-endian fields sequentially
type reader struct {
	r   io.Reader
	buf [4]byte
}

func (rd *reader) id() ([4]byte, error) {
	var id [4]byte
	_, err := io.ReadFull(rd.r, id[:])
	return id, err
}

func (rd *reader) u32() (uint32, error) {
	if _, err := io.ReadFull(rd.r, rd.buf[:4]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return binary.LittleEndian.Uint32(rd.buf[:4]), nil
}

func (rd *reader) skip(n int64) error {
	if n == 0 {
		return nil
	}
	copied, err := io.CopyN(io.Discard, rd.r, n)
	if err != nil && copied < n {
		return io.ErrUnexpectedEOF
	}
	return nil
}
