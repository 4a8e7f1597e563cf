package record

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// Lines reads newline-delimited records from a stream.
// "\r\n" terminators are accepted; the terminator is not part of the line.
type Lines struct {
	scanner *bufio.Scanner
	maxLen  int
	line    int
}

// NewLines returns a Lines reading from r that rejects lines longer than
// maxLen characters.
func NewLines(r io.Reader, maxLen int) *Lines {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}
	scanner := bufio.NewScanner(r)
	// Room for the line plus "\r\n".
	scanner.Buffer(make([]byte, 0, min(maxLen+2, 4096)), maxLen+2)
	return &Lines{scanner: scanner, maxLen: maxLen}
}

// Next returns the next line. It returns io.EOF once the input is exhausted.
//
// ctx is checked before anything is read, so a cancelled decode stops between
// records and never inside one.
func (l *Lines) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", Cancelled(err)
	}

	if !l.scanner.Scan() {
		err := l.scanner.Err()
		if err == nil {
			return "", io.EOF
		}
		l.line++
		if errors.Is(err, bufio.ErrTooLong) {
			return "", l.Errorf(Malformed("line exceeds %d characters", l.maxLen))
		}
		return "", fmt.Errorf("read line %d: %w", l.line, err)
	}
	l.line++

	text := l.scanner.Text()
	if len(text) > l.maxLen {
		return "", l.Errorf(Malformed("line exceeds %d characters", l.maxLen))
	}
	return text, nil
}

// Line returns the 1-based number of the line last returned by Next.
func (l *Lines) Line() int {
	return l.line
}

// Errorf wraps err with the current line number.
func (l *Lines) Errorf(err error) error {
	return &LineError{Line: l.line, Err: err}
}

// DecodeHex decodes a string of ASCII hex pairs. Upper and lower case digits
// are accepted. Any other character, or an odd count, is ErrMalformedRecord.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, Malformed("odd number of hex characters (%d)", len(s))
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, Malformed("invalid hex data: %v", err)
	}
	return data, nil
}
