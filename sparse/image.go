package sparse

// Image is a byte-valued Space, the output of every decoder in this module.
type Image = Space[byte]

// NewImage returns an empty Image.
func NewImage() *Image {
	return New[byte]()
}

// Segment is a run of consecutive present addresses.
type Segment struct {
	// Address is the first address of the run
	Address uint64

	// Data holds one byte per address, starting at Address
	Data []byte
}

// End returns the address immediately after the last byte of the segment.
func (s Segment) End() uint64 {
	return s.Address + uint64(len(s.Data))
}

// Segments returns the maximal runs of consecutive addresses in img, in
// ascending address order. The returned data is a copy.
func Segments(img *Image) []Segment {
	var out []Segment
	for addr, v := range img.All() {
		if n := len(out); n > 0 && out[n-1].End() == addr {
			out[n-1].Data = append(out[n-1].Data, v)
			continue
		}
		out = append(out, Segment{Address: addr, Data: []byte{v}})
	}
	return out
}

// ToBinary materializes size bytes starting at start. Addresses that were
// never written are filled with fill, as are positions past the top of the
// address space.
func ToBinary(img *Image, start uint64, size int, fill byte) []byte {
	if size <= 0 {
		return nil
	}
	out := make([]byte, size)

	// Walk whichever side is smaller: the window or the image.
	if img.Len() < size {
		for i := range out {
			out[i] = fill
		}
		for addr, v := range img.All() {
			if addr < start {
				continue
			}
			off := addr - start
			if off >= uint64(size) {
				break
			}
			out[off] = v
		}
		return out
	}

	for i := range out {
		addr := start + uint64(i)
		v, ok := img.Get(addr)
		if !ok || addr < start {
			v = fill
		}
		out[i] = v
	}
	return out
}
