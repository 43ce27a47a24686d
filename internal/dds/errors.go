package dds

import (
	"errors"
	"fmt"
	"io"

	"github.com/erinpentecost/texkit/internal/pixfmt"
)

var (
	// ErrInvalidFile reports a malformed container: bad magic, bad
	// structure sizes, impossible dimensions or an incomplete cube map.
	ErrInvalidFile = errors.New("dds: file format not correct")
	// ErrUnsupportedFormat is matched by every *UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("dds: format not supported")
	// ErrTruncated reports a stream that ends before the header or the
	// pixel payload is complete.
	ErrTruncated = errors.New("dds: unexpected end of stream")
	// ErrInvalidArgument reports an encode precondition failure.
	ErrInvalidArgument = errors.New("dds: invalid argument")
)

// UnsupportedFormatError carries the format that could not be handled.
// Legacy files that match no known layout report their FourCC (or zero)
// with Format left Unknown.
type UnsupportedFormatError struct {
	Format pixfmt.Format
	FourCC FourCC
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	msg := "dds: format not supported"
	switch {
	case e.Format != pixfmt.Unknown:
		msg += ": " + e.Format.String()
	case e.FourCC != 0:
		msg += fmt.Sprintf(": FourCC %q", e.FourCC.String())
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidFile}, args...)...)
}

// readErr classifies a failed read of what. Short reads become
// ErrTruncated, anything else is passed through as an I/O failure.
func readErr(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s: %w", ErrTruncated, what, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("dds: reading %s: %w", what, err)
}
