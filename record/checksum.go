package record

// Sum8 returns the modulo-256 sum of data.
func Sum8(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// TwosComplement returns the checksum byte that makes Sum8 of data plus the
// checksum equal zero. Intel HEX and .cyacd rows use this rule.
func TwosComplement(data []byte) byte {
	return ^Sum8(data) + 1
}

// OnesComplement returns the checksum byte that makes Sum8 of data plus the
// checksum equal 0xFF. Motorola S-Records use this rule.
func OnesComplement(data []byte) byte {
	return ^Sum8(data)
}

// VerifyTwosComplement checks a record whose last byte is a two's-complement
// checksum over the preceding bytes.
func VerifyTwosComplement(rec []byte) error {
	if len(rec) == 0 {
		return Malformed("empty record")
	}
	if Sum8(rec) == 0 {
		return nil
	}
	body := rec[:len(rec)-1]
	return &ChecksumError{Got: rec[len(rec)-1], Want: TwosComplement(body)}
}

// VerifyOnesComplement checks a record whose last byte is a one's-complement
// checksum over the preceding bytes.
func VerifyOnesComplement(rec []byte) error {
	if len(rec) == 0 {
		return Malformed("empty record")
	}
	if Sum8(rec) == 0xFF {
		return nil
	}
	body := rec[:len(rec)-1]
	return &ChecksumError{Got: rec[len(rec)-1], Want: OnesComplement(body)}
}
