package record

import (
	"context"
	"io"

	"github.com/moffa90/go-hexmem/sparse"
)

// Decoder turns a line-oriented record stream into a sparse image.
//
// Decode either accepts every record up to the format's end marker and
// returns the image, or returns an error and no image. Implementations keep
// their addressing state local to the call, so one Decoder value may be used
// for any number of concurrent decodes.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) (*sparse.Image, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(ctx context.Context, r io.Reader) (*sparse.Image, error)

// Decode calls f(ctx, r).
func (f DecoderFunc) Decode(ctx context.Context, r io.Reader) (*sparse.Image, error) {
	return f(ctx, r)
}
