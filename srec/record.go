package srec

import (
	"github.com/moffa90/go-hexmem/record"
)

// Marker is the character every S-Record starts with.
const Marker = 'S'

// MinimumRecordLength is the shortest valid line in characters:
// "S" + type + count(2) + 16-bit address(4) + checksum(2).
const MinimumRecordLength = 10

// Record is a single parsed S-Record line.
type Record struct {
	// Type is the record type digit, 0-9
	Type byte

	// Address is the address field: a load address for S1-S3, a record count
	// for S5/S6 and an entry point for S7-S9
	Address uint64

	// Data is the payload
	Data []byte

	// Checksum is the trailing checksum byte
	Checksum byte
}

// addressSize returns the width of the address field for a record type.
// ok is false for types that do not exist.
func addressSize(typ byte) (size int, ok bool) {
	switch typ {
	case 0, 1, 5, 9:
		return 2, true
	case 2, 6, 8:
		return 3, true
	case 3, 7:
		return 4, true
	default:
		return 0, false
	}
}

// ParseRecord parses and verifies a single S-Record line.
//
// Record format:
//
//	S[Type(1 char)][Count(1)][Address(2-4)][Data][Checksum(1)]
//
// Count is the number of bytes after it. The checksum is the one's
// complement of the sum of Count, Address and Data.
//
// Example: "S1130000285F245F2212226A000424290008237C2A"
//
//	Type: 1 (data, 16-bit address)
//	Count: 0x13 (19 bytes follow)
//	Address: 0x0000
//	Data: 16 bytes
//	Checksum: 0x2A
func ParseRecord(line string) (*Record, error) {
	if len(line) == 0 {
		return nil, record.Malformed("empty line")
	}
	if line[0] != Marker {
		return nil, record.Malformed("record must start with %q, got %q", Marker, line[0])
	}
	if len(line) < MinimumRecordLength {
		return nil, record.Malformed("record too short: got %d characters, minimum is %d",
			len(line), MinimumRecordLength)
	}

	t := line[1]
	if t < '0' || t > '9' {
		return nil, record.Malformed("invalid record type %q", t)
	}
	typ := t - '0'
	addrLen, ok := addressSize(typ)
	if !ok {
		return nil, record.Malformed("unrecognized record type S%c", t)
	}

	raw, err := record.DecodeHex(line[2:])
	if err != nil {
		return nil, err
	}

	count := int(raw[0])
	if len(raw) != 1+count {
		return nil, record.Malformed("record length mismatch: got %d characters, expected %d (count field=%d)",
			len(line), 2+2*(1+count), count)
	}
	if count < addrLen+1 {
		return nil, record.Malformed("count 0x%02X too small for S%c address field", count, t)
	}

	if err := record.VerifyOnesComplement(raw); err != nil {
		return nil, err
	}

	var addr uint64
	for _, b := range raw[1 : 1+addrLen] {
		addr = addr<<8 | uint64(b)
	}

	rec := &Record{
		Type:     typ,
		Address:  addr,
		Data:     raw[1+addrLen : len(raw)-1],
		Checksum: raw[len(raw)-1],
	}
	return rec, nil
}
