package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadDigits indicates a numeric leader or directory field held non-digits.
	ErrBadDigits = errors.New("format: expected digits")
	// ErrOverflow indicates a number does not fit its fixed-width field.
	ErrOverflow = errors.New("format: value does not fit field width")
	// ErrLeaderSpec indicates a malformed leader-spec patch list.
	ErrLeaderSpec = errors.New("format: bad leader spec")
)
