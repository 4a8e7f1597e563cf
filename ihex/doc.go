// Package ihex decodes Intel HEX files into sparse memory images.
//
// # Intel HEX Format
//
// Each line is one record:
//
//	:[Length(2)][Offset(4)][Type(2)][Data(2*Length)][Checksum(2)]
//
// All fields are hex pairs. Offset is big-endian. The checksum is the two's
// complement of the sum of the preceding bytes, so the decoded bytes of a
// valid record sum to zero modulo 256.
//
// Example record:
//
//	:10000000214601360121470136007EFE09D2190140
//	  10 = Length (16 bytes)
//	  0000 = Offset
//	  00 = Type (data)
//	  214601360121470136007EFE09D21901 = Data
//	  40 = Checksum
//
// Record types:
//
//	00  Data                       payload written at the effective address
//	01  End of file                stops decoding
//	02  Extended segment address   base = value << 4, selects segment mode
//	03  Start segment address      entry point, ignored
//	04  Extended linear address    upper = value << 16, selects linear mode
//	05  Start linear address       entry point, ignored
//
// # Addressing
//
// In segment mode (the initial mode) byte i of a data record lands at
// base + offset + i. In linear mode it lands at upper | ((offset + i) & 0xFFFF).
// Whichever extension record was seen last decides the mode; switching mode
// does not reset the other base.
//
// # Usage
//
//	img, err := ihex.DecodeFile(ctx, "firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, seg := range sparse.Segments(img) {
//	    fmt.Printf("0x%08X: %d bytes\n", seg.Address, len(seg.Data))
//	}
//
// # Error Handling
//
// Decoding stops at the first bad record. Per-record failures match
// record.ErrMalformedRecord, record.ErrChecksumMismatch or
// record.ErrTruncatedInput and carry the line number in a *record.LineError.
// Cancellation matches record.ErrCancelled and errors from the reader are
// wrapped with the line being read; neither is a *record.LineError.
package ihex
