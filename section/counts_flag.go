package section

import (
	"github.com/arloliu/upsetdata/endian"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/format"
)

// CountsFlag represents the packed field for various flags in the counts header.
type CountsFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are magic number to identify the blob format:
	//   - 0xAC10 (0b1010_1100_0001_0000): Counts blob format v1
	Options uint16

	// Compression is an enum indicating the compression used for this blob.
	// Bits 0-3 for mask compression, bits 4-7 for value compression.
	Compression uint8

	// Reserved is an unused byte, must be set to 0.
	Reserved uint8
}

// NewCountsFlag creates a new CountsFlag with default settings.
//
// Defaults: little-endian, uncompressed masks (counts blobs hold few entries),
// Zstandard-compressed values.
func NewCountsFlag() CountsFlag {
	flag := CountsFlag{
		Options:     MagicCountsV1Opt,
		Compression: MaskCompressionNone | ValueCompressionZstd,
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the data is little-endian.
func (f CountsFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f CountsFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *CountsFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *CountsFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f CountsFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// MaskCompression returns the mask compression type from bits 0-3 of Compression.
func (f CountsFlag) MaskCompression() format.CompressionType {
	return format.CompressionType(f.Compression & 0x0F)
}

// SetMaskCompression sets the mask compression type in bits 0-3 of Compression.
func (f *CountsFlag) SetMaskCompression(compression format.CompressionType) {
	f.Compression &^= 0x0F // Clear bits 0-3
	f.Compression |= (uint8(compression) & 0x0F)
}

// ValueCompression returns the value compression type from bits 4-7 of Compression.
func (f CountsFlag) ValueCompression() format.CompressionType {
	return format.CompressionType((f.Compression >> 4) & 0x0F)
}

// SetValueCompression sets the value compression type in bits 4-7 of Compression.
func (f *CountsFlag) SetValueCompression(compression format.CompressionType) {
	f.Compression &^= 0xF0 // Clear bits 4-7
	f.Compression |= (uint8(compression) & 0x0F) << 4
}

// IsValidMagicNumber checks if the magic number is valid.
func (f CountsFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicCountsV1Opt
}

// IsValidCompression checks if the compression types are valid.
func (f CountsFlag) IsValidCompression() bool {
	maskCompression := f.Compression & 0x0F
	valueCompression := (f.Compression >> 4) & 0x0F

	_, validMask := validCompressions[maskCompression]
	_, validValue := validCompressions[valueCompression]

	return validMask && validValue
}

// Validate checks if the flag header contains valid values.
func (f CountsFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidHeaderFlags
	}

	if (f.Options&ReservedBitsMask) != 0 || f.Reserved != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.IsValidCompression() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f CountsFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
