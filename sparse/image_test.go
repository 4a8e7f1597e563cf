package sparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func imageOf(cells map[uint64]byte) *Image {
	img := NewImage()
	for addr, v := range cells {
		img.Set(addr, v)
	}
	return img
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name  string
		cells map[uint64]byte
		want  []Segment
	}{
		{
			name: "empty image",
			want: nil,
		},
		{
			name:  "single byte",
			cells: map[uint64]byte{0x10: 0xAB},
			want:  []Segment{{Address: 0x10, Data: []byte{0xAB}}},
		},
		{
			name: "one run",
			cells: map[uint64]byte{
				0x100: 1, 0x101: 2, 0x102: 3,
			},
			want: []Segment{{Address: 0x100, Data: []byte{1, 2, 3}}},
		},
		{
			name: "two runs with gap",
			cells: map[uint64]byte{
				0x00: 0xA0, 0x01: 0xA1,
				0x08000000: 0xB0, 0x08000001: 0xB1, 0x08000002: 0xB2,
			},
			want: []Segment{
				{Address: 0x00, Data: []byte{0xA0, 0xA1}},
				{Address: 0x08000000, Data: []byte{0xB0, 0xB1, 0xB2}},
			},
		},
		{
			name: "top of address range",
			cells: map[uint64]byte{
				0xFFFFFFFFFFFFFFFE: 1, 0xFFFFFFFFFFFFFFFF: 2, 0: 3,
			},
			want: []Segment{
				{Address: 0, Data: []byte{3}},
				{Address: 0xFFFFFFFFFFFFFFFE, Data: []byte{1, 2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segments(imageOf(tt.cells))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentEnd(t *testing.T) {
	seg := Segment{Address: 0x1000, Data: make([]byte, 16)}
	assert.Equal(t, uint64(0x1010), seg.End())
}

func TestToBinary(t *testing.T) {
	img := imageOf(map[uint64]byte{
		0x10: 0x01,
		0x12: 0x03,
		0x20: 0x99,
	})

	tests := []struct {
		name  string
		start uint64
		size  int
		fill  byte
		want  []byte
	}{
		{
			name:  "window with gap",
			start: 0x10,
			size:  4,
			fill:  0xFF,
			want:  []byte{0x01, 0xFF, 0x03, 0xFF},
		},
		{
			name:  "window before data",
			start: 0x00,
			size:  2,
			fill:  0x00,
			want:  []byte{0x00, 0x00},
		},
		{
			name:  "large window walks the image",
			start: 0x0F,
			size:  0x20,
			fill:  0xEE,
			want: func() []byte {
				b := make([]byte, 0x20)
				for i := range b {
					b[i] = 0xEE
				}
				b[0x01] = 0x01
				b[0x03] = 0x03
				b[0x11] = 0x99
				return b
			}(),
		},
		{
			name: "zero size",
			size: 0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToBinary(img, tt.start, tt.size, tt.fill)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBinaryTopOfAddressSpace(t *testing.T) {
	top := ^uint64(0)
	img := imageOf(map[uint64]byte{
		0x00: 0x11,
		0x01: 0x22,
		0x02: 0x33,
		top:  0xAA,
	})

	// A dense image takes the per-address path; the window must not wrap
	// around to address 0.
	got := ToBinary(img, top, 2, 0xFF)
	assert.Equal(t, []byte{0xAA, 0xFF}, got)

	// A sparse image walks the stored addresses instead.
	got = ToBinary(img, top-1, 8, 0xFF)
	assert.Equal(t, []byte{0xFF, 0xAA, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, got)
}
