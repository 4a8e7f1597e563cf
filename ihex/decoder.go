package ihex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-hexmem/record"
	"github.com/moffa90/go-hexmem/sparse"
)

// Decoder decodes Intel HEX streams into sparse images.
//
// A Decoder only holds configuration and is safe for concurrent use.
type Decoder struct {
	config record.Config
}

var _ record.Decoder = (*Decoder)(nil)

// NewDecoder creates a Decoder with the given options.
//
// Example:
//
//	dec := ihex.NewDecoder(record.WithMaxLineLength(1024))
//	img, err := dec.Decode(ctx, f)
func NewDecoder(opts ...record.Option) *Decoder {
	return &Decoder{config: record.NewConfig(opts...)}
}

// addressing selects which extension record is combined with record offsets.
type addressing int

const (
	segmentAddressing addressing = iota
	linearAddressing
)

// state is the address-extension bookkeeping of one decode.
//
// Switching mode leaves the other base untouched: a segment record after a
// linear one selects segment addressing but linearUpper keeps its value, and
// vice versa. The most recent extension record wins.
type state struct {
	mode        addressing
	segmentBase uint64
	linearUpper uint64
}

// address returns the effective address of byte i of a data record at offset.
func (s *state) address(offset uint16, i int) uint64 {
	if s.mode == linearAddressing {
		// The upper half is fixed; the low 16 bits wrap within the 64 KiB page.
		return s.linearUpper | uint64(uint16(int(offset)+i))
	}
	return s.segmentBase + uint64(offset) + uint64(i)
}

// Decode reads records from r until an end-of-file record and returns the
// populated image.
//
// Lines after the end-of-file record are never read. If r is exhausted first,
// Decode fails with record.ErrTruncatedInput. Every record failure is returned
// as a *record.LineError; no image is returned with an error.
//
// ctx is checked before each line. A cancelled decode returns an error
// matching both record.ErrCancelled and ctx.Err().
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (*sparse.Image, error) {
	var (
		lines = record.NewLines(r, d.config.MaxLineLength)
		img   = sparse.NewImage()
		st    state
	)

	for {
		line, err := lines.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil, &record.LineError{
				Line: lines.Line(),
				Err:  fmt.Errorf("%w: no end of file record", record.ErrTruncatedInput),
			}
		}
		if err != nil {
			return nil, err
		}

		rec, err := ParseRecord(line)
		if err != nil {
			return nil, lines.Errorf(err)
		}

		done, err := d.apply(&st, img, rec)
		if err != nil {
			return nil, lines.Errorf(err)
		}

		d.config.Notify(d.info(&st, lines.Line(), rec))

		if done {
			return img, nil
		}
	}
}

// apply executes one record against the decode state. It reports whether the
// record ends the file.
func (d *Decoder) apply(st *state, img *sparse.Image, rec *Record) (bool, error) {
	switch rec.Type {
	case TypeData:
		for i, b := range rec.Data {
			img.Set(st.address(rec.Offset, i), b)
		}

	case TypeEOF:
		return true, nil

	case TypeExtendedSegmentAddress:
		if len(rec.Data) != AddressRecordDataSize {
			return false, record.Malformed("%s record carries %d data bytes, expected %d",
				rec.Type, len(rec.Data), AddressRecordDataSize)
		}
		st.segmentBase = rec.Value() << 4
		st.mode = segmentAddressing

	case TypeExtendedLinearAddress:
		if len(rec.Data) != AddressRecordDataSize {
			return false, record.Malformed("%s record carries %d data bytes, expected %d",
				rec.Type, len(rec.Data), AddressRecordDataSize)
		}
		st.linearUpper = rec.Value() << 16
		st.mode = linearAddressing

	case TypeStartSegmentAddress, TypeStartLinearAddress:
		// Entry points do not affect the image.

	default:
		return false, record.Malformed("unrecognized record type 0x%02X", byte(rec.Type))
	}

	return false, nil
}

func (d *Decoder) info(st *state, line int, rec *Record) record.Info {
	info := record.Info{
		Line:   line,
		Type:   byte(rec.Type),
		Length: len(rec.Data),
	}
	switch rec.Type {
	case TypeData:
		info.Address = st.address(rec.Offset, 0)
	case TypeExtendedSegmentAddress:
		info.Address = st.segmentBase
	case TypeExtendedLinearAddress:
		info.Address = st.linearUpper
	case TypeStartSegmentAddress, TypeStartLinearAddress:
		info.Address = rec.Value()
	}
	return info
}

// Decode decodes an Intel HEX stream with the default configuration.
//
// Example:
//
//	img, err := ihex.Decode(ctx, strings.NewReader(text))
func Decode(ctx context.Context, r io.Reader, opts ...record.Option) (*sparse.Image, error) {
	return NewDecoder(opts...).Decode(ctx, r)
}

// DecodeFile decodes the Intel HEX file at path.
//
// Example:
//
//	img, err := ihex.DecodeFile(ctx, "firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
func DecodeFile(ctx context.Context, path string, opts ...record.Option) (*sparse.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(ctx, f, opts...)
}
