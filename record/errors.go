package record

import (
	"errors"
	"fmt"
)

// Error kinds shared by every decoder. Per-record failures arrive wrapped in a
// *LineError. ErrCancelled, and ErrTruncatedInput for a file holding no
// records at all, are returned without a line number. Use errors.Is to
// classify.
var (
	// ErrUnsupportedFormat means the leading byte matched no registered decoder.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMalformedRecord covers structural violations: a missing marker, a
	// short or oversized line, non-hex characters or an unknown record type.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrChecksumMismatch means a record's bytes failed checksum verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrTruncatedInput means the input ended before its end-of-data record.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrCancelled means the decode was stopped between records by its context.
	ErrCancelled = errors.New("decode cancelled")
)

// LineError attaches a 1-based line number to a decode failure.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ChecksumError reports a record whose checksum did not verify.
type ChecksumError struct {
	// Got is the checksum byte carried by the record
	Got byte

	// Want is the checksum byte the record content calls for
	Want byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: record has 0x%02X, expected 0x%02X", e.Got, e.Want)
}

// Is makes errors.Is(err, ErrChecksumMismatch) hold for any *ChecksumError.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// Malformed returns an error wrapping ErrMalformedRecord with a description.
func Malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}

// Cancelled wraps a context error so that it matches both ErrCancelled and
// the original cause.
func Cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}

// IsDecodeError reports whether err is one of the structural decode failures,
// as opposed to cancellation or an I/O error from the underlying reader.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrMalformedRecord) ||
		errors.Is(err, ErrChecksumMismatch) ||
		errors.Is(err, ErrTruncatedInput) ||
		errors.Is(err, ErrUnsupportedFormat)
}
