// ABOUTME: Parse error taxonomy for the WAV container parser
// ABOUTME: Distinguishes malformed, unsupported, truncated and oversized input
package wav

import "fmt"

// ParseErrorKind classifies a container parse failure
type ParseErrorKind int

const (
	// MalformedContainer means a magic or structural field is wrong
	MalformedContainer ParseErrorKind = iota + 1
	// UnsupportedEncoding means the stream is not 16-bit linear PCM
	UnsupportedEncoding
	// TruncatedStream means the stream ended before a required field or chunk
	TruncatedStream
	// OutOfMemory means the sample buffer could not be allocated
	OutOfMemory
)

// String returns a human-readable name for the kind
func (k ParseErrorKind) String() string {
	switch k {
	case MalformedContainer:
		return "malformed container"
	case UnsupportedEncoding:
		return "unsupported encoding"
	case TruncatedStream:
		return "truncated stream"
	case OutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// ParseError is returned by Parse for every container failure
type ParseError struct {
	Kind ParseErrorKind
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	s := "wav: " + e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches another *ParseError of the same kind that carries no message,
// so the Err* sentinels below work with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrMalformedContainer  = &ParseError{Kind: MalformedContainer}
	ErrUnsupportedEncoding = &ParseError{Kind: UnsupportedEncoding}
	ErrTruncatedStream     = &ParseError{Kind: TruncatedStream}
	ErrOutOfMemory         = &ParseError{Kind: OutOfMemory}
)

func parseErrorf(kind ParseErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func truncated(what string, err error) *ParseError {
	return &ParseError{Kind: TruncatedStream, Msg: "reading " + what, Err: err}
}
