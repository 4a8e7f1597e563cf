package cyacd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-hexmem/record"
	"github.com/moffa90/go-hexmem/sparse"
)

// Constants for CYACD file format parsing.
const (
	// HeaderLength is the expected length of the header line in hex characters
	HeaderLength = 12

	// MinimumRowLength is the minimum length for a row line in hex characters
	MinimumRowLength = 12

	// RowHeaderSize is the size of row metadata (arrayID + rowNum + dataLen)
	RowHeaderSize = 5

	// RowChecksumSize is the size of the row checksum field
	RowChecksumSize = 1

	// HybridRowMarker prefixes rows in the PSoC hybrid form
	HybridRowMarker = ':'

	// DefaultRowCapacity is the default initial capacity for the rows slice
	DefaultRowCapacity = 256
)

// Parse parses a .cyacd file from the given file path.
// Returns the complete firmware structure or an error if parsing fails.
//
// Example:
//
//	fw, err := cyacd.Parse("firmware.cyacd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Silicon ID: 0x%08X\n", fw.SiliconID)
func Parse(path string) (*Firmware, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses a .cyacd file from any io.Reader.
//
// Example:
//
//	data := strings.NewReader(cyacdContent)
//	fw, err := cyacd.ParseReader(data)
func ParseReader(r io.Reader) (*Firmware, error) {
	return parse(context.Background(), r, record.DefaultConfig())
}

func parse(ctx context.Context, r io.Reader, cfg record.Config) (*Firmware, error) {
	lines := record.NewLines(r, cfg.MaxLineLength)

	// Parse header (first line)
	header, err := lines.Next(ctx)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", record.ErrTruncatedInput)
	}
	if err != nil {
		return nil, err
	}

	fw, err := parseHeader(header)
	if err != nil {
		return nil, lines.Errorf(fmt.Errorf("failed to parse header: %w", err))
	}

	// Parse rows
	for {
		line, err := lines.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		// Skip empty lines
		if line == "" {
			continue
		}

		var row *Row
		if line[0] == HybridRowMarker {
			row, err = parseHybridRow(line)
		} else {
			row, err = parseRow(line)
		}
		if err != nil {
			return nil, lines.Errorf(err)
		}

		fw.Rows = append(fw.Rows, row)

		cfg.Notify(record.Info{
			Line:    lines.Line(),
			Address: row.Address(cfg.ArraySize),
			Length:  len(row.Data),
		})
	}

	if len(fw.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows found in file", record.ErrTruncatedInput)
	}

	return fw, nil
}

// parseHeader parses the .cyacd file header.
//
// Header format (12 hex characters):
//
//	[SiliconID(4 bytes)][SiliconRev(1 byte)][ChecksumType(1 byte)]
//
// Example: "1E9602AA0000" = SiliconID: 0x1E9602AA, Rev: 0x00, Checksum: 0x00
func parseHeader(line string) (*Firmware, error) {
	if len(line) != HeaderLength {
		return nil, record.Malformed("invalid header length: got %d characters, expected %d", len(line), HeaderLength)
	}

	data, err := record.DecodeHex(line)
	if err != nil {
		return nil, err
	}

	// Silicon ID is big-endian in the file
	siliconID := uint32(data[0])<<24 | uint32(data[1])<<16 |
		uint32(data[2])<<8 | uint32(data[3])

	fw := &Firmware{
		SiliconID:    siliconID,
		SiliconRev:   data[4],
		ChecksumType: data[5],
		Rows:         make([]*Row, 0, DefaultRowCapacity),
	}

	if fw.ChecksumType != 0x00 && fw.ChecksumType != 0x01 {
		return nil, record.Malformed("invalid checksum type: 0x%02X (must be 0x00 or 0x01)", fw.ChecksumType)
	}

	return fw, nil
}

// parseRow parses a single row line from the .cyacd file.
//
// Row format:
//
//	[ArrayID(1 byte)][RowNum(2 bytes)][DataLen(2 bytes)][Data(N bytes)][Checksum(1 byte)]
//
// All values are hex-encoded. RowNum and DataLen are little-endian.
//
// Example: "000000040001020304F2"
//
//	ArrayID: 0x00
//	RowNum: 0x0000 (little-endian)
//	DataLen: 0x0004 (little-endian)
//	Data: [0x01, 0x02, 0x03, 0x04]
//	Checksum: 0xF2
func parseRow(line string) (*Row, error) {
	return decodeRow(line, func(lo, hi byte) uint16 { return uint16(lo) | uint16(hi)<<8 })
}

// parseHybridRow parses a row in the PSoC hybrid form: the CYACD row layout
// prefixed with ':' and with big-endian RowNum and DataLen. Despite the
// marker it is not an Intel HEX record.
//
// Example: ":0000450004DEADBEEF" + checksum
func parseHybridRow(line string) (*Row, error) {
	if len(line) < 1 || line[0] != HybridRowMarker {
		return nil, record.Malformed("hybrid row must start with %q", HybridRowMarker)
	}
	return decodeRow(line[1:], func(hi, lo byte) uint16 { return uint16(hi)<<8 | uint16(lo) })
}

// decodeRow decodes the shared row layout; u16 assembles the two bytes of
// RowNum and DataLen in file order.
func decodeRow(line string, u16 func(a, b byte) uint16) (*Row, error) {
	// Minimum row: arrayID(2) + rowNum(4) + dataLen(4) + checksum(2) = MinimumRowLength chars
	if len(line) < MinimumRowLength {
		return nil, record.Malformed("row too short: got %d characters, minimum is %d", len(line), MinimumRowLength)
	}

	data, err := record.DecodeHex(line)
	if err != nil {
		return nil, err
	}

	arrayID := data[0]
	rowNum := u16(data[1], data[2])
	dataLen := u16(data[3], data[4])

	expectedLen := RowHeaderSize + int(dataLen) + RowChecksumSize
	if len(data) != expectedLen {
		return nil, record.Malformed("data length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
			len(data), expectedLen, RowHeaderSize, dataLen, RowChecksumSize)
	}

	if err := record.VerifyTwosComplement(data); err != nil {
		return nil, err
	}

	row := &Row{
		ArrayID:  arrayID,
		RowNum:   rowNum,
		Data:     data[RowHeaderSize : RowHeaderSize+int(dataLen)],
		Checksum: data[len(data)-1],
	}
	return row, nil
}

// Decoder decodes .cyacd files into sparse images.
type Decoder struct {
	config record.Config
}

var _ record.Decoder = (*Decoder)(nil)

// NewDecoder creates a Decoder with the given options.
// record.WithArraySize sets the address span of one flash array.
func NewDecoder(opts ...record.Option) *Decoder {
	return &Decoder{config: record.NewConfig(opts...)}
}

// Decode parses a .cyacd stream and places each row at
// ArrayID*ArraySize + RowNum*len(Data).
//
// The format has no end marker, so the end of input completes the decode. A
// header without rows fails with record.ErrTruncatedInput.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (*sparse.Image, error) {
	fw, err := parse(ctx, r, d.config)
	if err != nil {
		return nil, err
	}
	return fw.Image(d.config.ArraySize), nil
}
