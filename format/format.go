// Package format picks a record decoder by looking at the first byte of a
// stream.
//
// Each decoder is registered against the leading bytes its files start with.
// Detection peeks one byte without consuming it and hands the whole stream to
// the matching decoder:
//
//	img, err := format.DetectAndDecode(ctx, f)
//	if errors.Is(err, record.ErrUnsupportedFormat) {
//	    // not a record file we know
//	}
//
// Default knows Intel HEX (':'), Motorola S-Record ('S') and Cypress .cyacd
// (hex digits). Register adds more without touching detection.
package format

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/moffa90/go-hexmem/cyacd"
	"github.com/moffa90/go-hexmem/ihex"
	"github.com/moffa90/go-hexmem/record"
	"github.com/moffa90/go-hexmem/sparse"
	"github.com/moffa90/go-hexmem/srec"
)

// Constructor builds a decoder from options. Registries keep constructors
// rather than decoders so per-call options reach the decoder.
type Constructor func(opts ...record.Option) record.Decoder

// Format is a registered decoder.
type Format struct {
	// Name identifies the format, e.g. "ihex"
	Name string

	// New builds the decoder
	New Constructor
}

// Registry maps leading bytes to formats.
//
// Registry is not safe for concurrent Register calls; register everything
// before decoding.
type Registry struct {
	formats map[byte]Format
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[byte]Format)}
}

// Register associates f with every byte in leading. A later registration for
// the same byte replaces the earlier one.
func (r *Registry) Register(f Format, leading ...byte) {
	for _, b := range leading {
		r.formats[b] = f
	}
}

// Lookup returns the format registered for leading byte b.
func (r *Registry) Lookup(b byte) (Format, bool) {
	f, ok := r.formats[b]
	return f, ok
}

// Names returns the distinct registered format names, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range r.formats {
		if !seen[f.Name] {
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Detect peeks at the first byte of br and returns the matching format.
// The byte stays in br.
//
// Empty input is record.ErrMalformedRecord; an unknown byte is
// record.ErrUnsupportedFormat.
func (r *Registry) Detect(br *bufio.Reader) (Format, error) {
	lead, err := br.Peek(1)
	if errors.Is(err, io.EOF) {
		return Format{}, fmt.Errorf("%w: empty input", record.ErrMalformedRecord)
	}
	if err != nil {
		return Format{}, fmt.Errorf("failed to read signature: %w", err)
	}

	f, ok := r.Lookup(lead[0])
	if !ok {
		return Format{}, fmt.Errorf("%w: leading byte 0x%02X", record.ErrUnsupportedFormat, lead[0])
	}
	return f, nil
}

// DetectAndDecode selects a decoder from the first byte of rd and decodes the
// whole stream with it.
func (r *Registry) DetectAndDecode(ctx context.Context, rd io.Reader, opts ...record.Option) (*sparse.Image, error) {
	_, img, err := r.decode(ctx, rd, opts...)
	return img, err
}

func (r *Registry) decode(ctx context.Context, rd io.Reader, opts ...record.Option) (Format, *sparse.Image, error) {
	br := bufio.NewReader(rd)

	f, err := r.Detect(br)
	if err != nil {
		return Format{}, nil, err
	}

	img, err := f.New(opts...).Decode(ctx, br)
	if err != nil {
		return f, nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	return f, img, nil
}

// Default is the registry used by the package-level functions.
var Default = NewRegistry()

func init() {
	Default.Register(Format{
		Name: "ihex",
		New:  func(opts ...record.Option) record.Decoder { return ihex.NewDecoder(opts...) },
	}, ihex.Marker)

	Default.Register(Format{
		Name: "srec",
		New:  func(opts ...record.Option) record.Decoder { return srec.NewDecoder(opts...) },
	}, srec.Marker)

	Default.Register(Format{
		Name: "cyacd",
		New:  func(opts ...record.Option) record.Decoder { return cyacd.NewDecoder(opts...) },
	}, []byte("0123456789ABCDEFabcdef")...)
}

// Register adds a format to the Default registry.
func Register(f Format, leading ...byte) {
	Default.Register(f, leading...)
}

// DetectAndDecode decodes rd with the Default registry.
func DetectAndDecode(ctx context.Context, rd io.Reader, opts ...record.Option) (*sparse.Image, error) {
	return Default.DetectAndDecode(ctx, rd, opts...)
}

// Result is a decoded image together with the format it was read as.
type Result struct {
	Format string
	Image  *sparse.Image
}

// DecodeFile opens path and decodes it with the Default registry.
func DecodeFile(ctx context.Context, path string, opts ...record.Option) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeReader(ctx, f, opts...)
}

// DecodeReader decodes rd with the Default registry and reports which format
// matched.
func DecodeReader(ctx context.Context, rd io.Reader, opts ...record.Option) (*Result, error) {
	fm, img, err := Default.decode(ctx, rd, opts...)
	if err != nil {
		return nil, err
	}
	return &Result{Format: fm.Name, Image: img}, nil
}
