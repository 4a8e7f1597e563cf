package record

// DefaultMaxLineLength is the longest line accepted by default, in characters.
// The largest Intel HEX record is 1+2+4+2+510+2 = 521 characters and the largest
// S-Record is 2+2+510 = 514; .cyacd rows can be much longer, so the default is
// generous.
const DefaultMaxLineLength = 64 * 1024

// Info describes one accepted record. It is passed to RecordCallback.
type Info struct {
	// Line is the 1-based line number of the record
	Line int

	// Type is the format-specific record type (0x00-0x05 for Intel HEX,
	// 0-9 for S-Records, 0 for .cyacd rows)
	Type byte

	// Address is the effective address of the first data byte, or the value
	// carried by an address or start record
	Address uint64

	// Length is the number of data bytes the record carried
	Length int
}

// RecordCallback is called after each record is accepted.
// Implementations should return quickly; the decode loop waits on them.
//
// Example:
//
//	img, err := ihex.NewDecoder(
//	    record.WithRecordCallback(func(r record.Info) {
//	        log.Printf("line %d: type %02X at 0x%08X", r.Line, r.Type, r.Address)
//	    }),
//	).Decode(ctx, f)
type RecordCallback func(Info)

// Config holds decoder configuration common to all formats.
type Config struct {
	// MaxLineLength bounds the length of a single line in characters
	MaxLineLength int

	// RecordCallback is notified of every accepted record (optional)
	RecordCallback RecordCallback

	// ArraySize is the byte span of one flash array, used by formats that
	// address rows within arrays (.cyacd)
	ArraySize uint64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxLineLength: DefaultMaxLineLength,
		ArraySize:     64 * 1024,
	}
}

// Option is a functional option for configuring a decoder.
type Option func(*Config)

// NewConfig applies opts to the default configuration.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxLineLength sets the longest accepted line, in characters.
// Longer lines fail with ErrMalformedRecord. Non-positive values are ignored.
//
// Example:
//
//	dec := ihex.NewDecoder(record.WithMaxLineLength(1024))
func WithMaxLineLength(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxLineLength = n
		}
	}
}

// WithRecordCallback sets a callback invoked after every accepted record.
func WithRecordCallback(fn RecordCallback) Option {
	return func(c *Config) {
		c.RecordCallback = fn
	}
}

// WithArraySize sets the address span of one flash array for row-addressed
// formats. Zero is ignored.
//
// Example:
//
//	dec := cyacd.NewDecoder(record.WithArraySize(256 * 1024))
func WithArraySize(size uint64) Option {
	return func(c *Config) {
		if size > 0 {
			c.ArraySize = size
		}
	}
}

// Notify calls the configured RecordCallback, if any.
func (c *Config) Notify(info Info) {
	if c.RecordCallback != nil {
		c.RecordCallback(info)
	}
}
