package format

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moffa90/go-hexmem/record"
	"github.com/moffa90/go-hexmem/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAndDecode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		addr   uint64
		value  byte
	}{
		{
			name:   "intel hex",
			input:  ":01002000CD12\n:00000001FF\n",
			format: "ihex",
			addr:   0x20,
			value:  0xCD,
		},
		{
			name:   "s-record",
			input:  "S107010001020304ED\nS9030000FC\n",
			format: "srec",
			addr:   0x102,
			value:  0x03,
		},
		{
			name:   "cyacd",
			input:  "1E9602AA0000\n000100040005060708E1\n",
			format: "cyacd",
			addr:   0x4,
			value:  0x05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DecodeReader(context.Background(), strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.format, res.Format)

			v, ok := res.Image.Get(tt.addr)
			require.True(t, ok)
			assert.Equal(t, tt.value, v)

			img, err := DetectAndDecode(context.Background(), strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, res.Image.Len(), img.Len())
		})
	}
}

func TestDetectAndDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unsupported leading byte",
			input:   "\x00\x01\x02",
			wantErr: record.ErrUnsupportedFormat,
		},
		{
			name:    "text file",
			input:   "hello world\n",
			wantErr: record.ErrUnsupportedFormat,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: record.ErrMalformedRecord,
		},
		{
			name:    "decoder error is passed through",
			input:   ":01002000CD13\n:00000001FF\n",
			wantErr: record.ErrChecksumMismatch,
		},
		{
			name:    "truncated",
			input:   ":01002000CD12\n",
			wantErr: record.ErrTruncatedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DetectAndDecode(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, img)
			assert.True(t, errors.Is(err, tt.wantErr), "error = %v, want %v", err, tt.wantErr)
		})
	}
}

func TestDetectDoesNotConsume(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("\x00rest"))

	_, err := Default.Detect(br)
	require.Error(t, err)
	assert.True(t, errors.Is(err, record.ErrUnsupportedFormat))

	all, err := io.ReadAll(br)
	require.NoError(t, err)
	assert.Equal(t, "\x00rest", string(all), "detection must leave the leading byte in place")
}

func TestRegisterSibling(t *testing.T) {
	reg := NewRegistry()

	var got string
	reg.Register(Format{
		Name: "probe",
		New: func(opts ...record.Option) record.Decoder {
			return record.DecoderFunc(func(ctx context.Context, r io.Reader) (*sparse.Image, error) {
				b, err := io.ReadAll(r)
				got = string(b)
				return sparse.NewImage(), err
			})
		},
	}, '#')

	_, err := reg.DetectAndDecode(context.Background(), strings.NewReader("#payload"))
	require.NoError(t, err)
	assert.Equal(t, "#payload", got, "the decoder sees the stream from its first byte")

	_, err = reg.DetectAndDecode(context.Background(), strings.NewReader(":00000001FF"))
	assert.True(t, errors.Is(err, record.ErrUnsupportedFormat), "a fresh registry knows no formats")

	assert.Equal(t, []string{"probe"}, reg.Names())
}

func TestDefaultNames(t *testing.T) {
	assert.Equal(t, []string{"cyacd", "ihex", "srec"}, Default.Names())
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.srec")
	require.NoError(t, os.WriteFile(path, []byte("S107010001020304ED\nS9030000FC\n"), 0o644))

	res, err := DecodeFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "srec", res.Format)
	assert.Equal(t, 4, res.Image.Len())

	_, err = DecodeFile(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestDetectAndDecodeOptions(t *testing.T) {
	var lines []int
	_, err := DetectAndDecode(context.Background(),
		strings.NewReader(":01002000CD12\n:00000001FF\n"),
		record.WithRecordCallback(func(info record.Info) { lines = append(lines, info.Line) }),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, lines)
}
