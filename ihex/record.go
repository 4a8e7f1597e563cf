package ihex

import (
	"fmt"

	"github.com/moffa90/go-hexmem/record"
)

// Marker is the character every Intel HEX record starts with.
const Marker = ':'

// Constants for Intel HEX record parsing.
const (
	// HeaderSize is the number of bytes before the payload: length(1) + offset(2) + type(1)
	HeaderSize = 4

	// ChecksumSize is the size of the trailing checksum field
	ChecksumSize = 1

	// MinimumRecordLength is the shortest valid line in characters:
	// marker + length(2) + offset(4) + type(2) + checksum(2)
	MinimumRecordLength = 1 + 2*(HeaderSize+ChecksumSize)

	// AddressRecordDataSize is the payload size of types 02 and 04
	AddressRecordDataSize = 2
)

// Type is an Intel HEX record type.
type Type byte

// Record types.
const (
	// TypeData carries payload bytes for the address in Offset
	TypeData Type = 0x00

	// TypeEOF ends the file
	TypeEOF Type = 0x01

	// TypeExtendedSegmentAddress sets bits 4-19 of the segment base
	TypeExtendedSegmentAddress Type = 0x02

	// TypeStartSegmentAddress gives the CS:IP entry point
	TypeStartSegmentAddress Type = 0x03

	// TypeExtendedLinearAddress sets bits 16-31 of the address
	TypeExtendedLinearAddress Type = 0x04

	// TypeStartLinearAddress gives the 32-bit entry point
	TypeStartLinearAddress Type = 0x05
)

func (t Type) String() string {
	switch t {
	case TypeData:
		return "data"
	case TypeEOF:
		return "end of file"
	case TypeExtendedSegmentAddress:
		return "extended segment address"
	case TypeStartSegmentAddress:
		return "start segment address"
	case TypeExtendedLinearAddress:
		return "extended linear address"
	case TypeStartLinearAddress:
		return "start linear address"
	default:
		return fmt.Sprintf("unknown type 0x%02X", byte(t))
	}
}

// Record is a single parsed Intel HEX line.
type Record struct {
	// Type is the record type
	Type Type

	// Offset is the 16-bit load offset (big-endian in the file)
	Offset uint16

	// Data is the payload
	Data []byte

	// Checksum is the trailing checksum byte
	Checksum byte
}

// Value returns the payload as a big-endian unsigned integer. It is meaningful
// for address records (types 02-05).
func (r *Record) Value() uint64 {
	var v uint64
	for _, b := range r.Data {
		v = v<<8 | uint64(b)
	}
	return v
}

// ParseRecord parses and verifies a single Intel HEX line.
//
// Record format:
//
//	:[Length(1)][Offset(2)][Type(1)][Data(Length)][Checksum(1)]
//
// All fields are hex pairs and Offset is big-endian. The checksum is the two's
// complement of the sum of every preceding byte, so all decoded bytes sum to
// zero.
//
// The record length is checked against the length field before the checksum
// is verified, so a line that is both mis-sized and mis-summed reports
// record.ErrMalformedRecord.
//
// Example: ":0300300002337A1E"
//
//	Length: 0x03
//	Offset: 0x0030
//	Type: 0x00 (data)
//	Data: [0x02, 0x33, 0x7A]
//	Checksum: 0x1E
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

	raw, err := record.DecodeHex(line[1:])
	if err != nil {
		return nil, err
	}

	dataLen := int(raw[0])
	expectedLen := HeaderSize + dataLen + ChecksumSize
	if len(raw) != expectedLen {
		return nil, record.Malformed("record length mismatch: got %d characters, expected %d (length field=%d)",
			len(line), 1+2*expectedLen, dataLen)
	}

	if err := record.VerifyTwosComplement(raw); err != nil {
		return nil, err
	}

	rec := &Record{
		Type:     Type(raw[3]),
		Offset:   uint16(raw[1])<<8 | uint16(raw[2]),
		Data:     raw[HeaderSize : HeaderSize+dataLen],
		Checksum: raw[len(raw)-1],
	}
	return rec, nil
}
