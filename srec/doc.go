// Package srec decodes Motorola S-Record files into sparse memory images.
//
// Each line is "S", a type digit, then hex pairs: a byte count, an address of
// 2, 3 or 4 bytes depending on the type, the payload and a checksum. The
// checksum is the one's complement of the sum of count, address and payload.
//
//	S0  header (ignored)
//	S1  data, 16-bit address
//	S2  data, 24-bit address
//	S3  data, 32-bit address
//	S5  16-bit count of preceding data records
//	S6  24-bit count of preceding data records
//	S7  32-bit entry point, ends the file
//	S8  24-bit entry point, ends the file
//	S9  16-bit entry point, ends the file
//
// Errors use the kinds defined in package record.
package srec
