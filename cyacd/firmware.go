package cyacd

import (
	"github.com/moffa90/go-hexmem/sparse"
)

// Firmware represents a complete parsed .cyacd firmware file.
type Firmware struct {
	// SiliconID is the device silicon ID (4 bytes)
	SiliconID uint32

	// SiliconRev is the silicon revision (1 byte)
	SiliconRev byte

	// ChecksumType indicates the checksum algorithm:
	//   0x00 = Basic summation
	//   0x01 = CRC-16-CCITT
	ChecksumType byte

	// Rows contains all flash rows, in file order
	Rows []*Row
}

// Row represents a single flash row from the .cyacd file.
type Row struct {
	// ArrayID is the flash array identifier
	ArrayID byte

	// RowNum is the flash row number within the array
	RowNum uint16

	// Data is the flash row data to be programmed
	Data []byte

	// Checksum is the row checksum (for validation)
	Checksum byte
}

// Address returns the flat address of the first byte of the row, given the
// byte span of one flash array. Rows are assumed to be len(Data) bytes apart.
func (r *Row) Address(arraySize uint64) uint64 {
	return uint64(r.ArrayID)*arraySize + uint64(r.RowNum)*uint64(len(r.Data))
}

// Image flattens the firmware rows into a sparse image. Rows later in the
// file overwrite earlier ones at the same address.
func (fw *Firmware) Image(arraySize uint64) *sparse.Image {
	img := sparse.NewImage()
	for _, row := range fw.Rows {
		base := row.Address(arraySize)
		for i, b := range row.Data {
			img.Set(base+uint64(i), b)
		}
	}
	return img
}
