// Package record holds what the format decoders share: the Decoder contract,
// the error kinds, checksum helpers, a line reader with cooperative
// cancellation, and functional options.
//
// # Error Handling
//
// Every failure can be classified with errors.Is against one of:
//   - ErrUnsupportedFormat: no decoder is registered for the leading byte
//   - ErrMalformedRecord: missing marker, bad length, non-hex data, unknown type
//   - ErrChecksumMismatch: the record's checksum does not verify
//   - ErrTruncatedInput: input ended before the end-of-data record
//   - ErrCancelled: the context was cancelled between records
//
// Per-line failures are wrapped in *LineError, so the line number is
// available through errors.As:
//
//	var lerr *record.LineError
//	if errors.As(err, &lerr) {
//	    fmt.Printf("bad record on line %d\n", lerr.Line)
//	}
//
// An image being built when a decode fails is discarded; decoders return a
// nil image with every error.
package record
