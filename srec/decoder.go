package srec

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/moffa90/go-hexmem/record"
	"github.com/moffa90/go-hexmem/sparse"
)

// Decoder decodes Motorola S-Record streams into sparse images.
type Decoder struct {
	config record.Config
}

var _ record.Decoder = (*Decoder)(nil)

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts ...record.Option) *Decoder {
	return &Decoder{config: record.NewConfig(opts...)}
}

// Decode reads records from r until a termination record (S7, S8 or S9) and
// returns the populated image.
//
// S1-S3 payloads are written at address + i. S5/S6 counts must match the
// number of data records seen so far. Input that ends before a termination
// record fails with record.ErrTruncatedInput.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (*sparse.Image, error) {
	var (
		lines = record.NewLines(r, d.config.MaxLineLength)
		img   = sparse.NewImage()
		data  uint64
	)

	for {
		line, err := lines.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil, &record.LineError{
				Line: lines.Line(),
				Err:  fmt.Errorf("%w: no termination record", record.ErrTruncatedInput),
			}
		}
		if err != nil {
			return nil, err
		}

		rec, err := ParseRecord(line)
		if err != nil {
			return nil, lines.Errorf(err)
		}

		done := false
		switch rec.Type {
		case 0:
			// Header; free-form text, not part of the image.
		case 1, 2, 3:
			for i, b := range rec.Data {
				img.Set(rec.Address+uint64(i), b)
			}
			data++
		case 5, 6:
			if rec.Address != data {
				return nil, lines.Errorf(record.Malformed("record count S%d says %d data records, saw %d",
					rec.Type, rec.Address, data))
			}
		case 7, 8, 9:
			done = true
		}

		d.config.Notify(record.Info{
			Line:    lines.Line(),
			Type:    rec.Type,
			Address: rec.Address,
			Length:  len(rec.Data),
		})

		if done {
			return img, nil
		}
	}
}

// Decode decodes an S-Record stream with the given options.
func Decode(ctx context.Context, r io.Reader, opts ...record.Option) (*sparse.Image, error) {
	return NewDecoder(opts...).Decode(ctx, r)
}
