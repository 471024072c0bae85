package section

import (
	"github.com/arloliu/upsetdata/endian"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/format"
)

// AssignmentFlag represents the packed field for various flags in the assignment header.
// Assignment blobs carry no values payload, so only the mask compression nibble is used.
type AssignmentFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are magic number to identify the blob format:
	//   - 0xAC20 (0b1010_1100_0010_0000): Assignment blob format v1
	Options uint16

	// Compression is an enum indicating the compression used for this blob.
	// Bits 0-3 for mask compression, bits 4-7 must be set to 0.
	Compression uint8

	// Reserved is an unused byte, must be set to 0.
	Reserved uint8
}

// NewAssignmentFlag creates a new AssignmentFlag with default settings.
//
// Defaults: little-endian, Zstandard-compressed masks (assignment blobs hold
// one mask per sample row and grow with the data set).
func NewAssignmentFlag() AssignmentFlag {
	flag := AssignmentFlag{
		Options:     MagicAssignmentV1Opt,
		Compression: MaskCompressionZstd,
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the data is little-endian.
func (f AssignmentFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f AssignmentFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *AssignmentFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *AssignmentFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f AssignmentFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// MaskCompression returns the mask compression type from bits 0-3 of Compression.
func (f AssignmentFlag) MaskCompression() format.CompressionType {
	return format.CompressionType(f.Compression & 0x0F)
}

// SetMaskCompression sets the mask compression type in bits 0-3 of Compression.
func (f *AssignmentFlag) SetMaskCompression(compression format.CompressionType) {
	f.Compression &^= 0x0F // Clear bits 0-3
	f.Compression |= (uint8(compression) & 0x0F)
}

// IsValidMagicNumber checks if the magic number is valid.
func (f AssignmentFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicAssignmentV1Opt
}

// IsValidCompression checks if the compression type is valid.
func (f AssignmentFlag) IsValidCompression() bool {
	_, validMask := validCompressions[f.Compression&0x0F]

	return validMask
}

// Validate checks if the flag header contains valid values.
func (f AssignmentFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidHeaderFlags
	}

	if (f.Options&ReservedBitsMask) != 0 || f.Reserved != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	// bits 4-7 carry no value compression for assignment blobs
	if (f.Compression & 0xF0) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.IsValidCompression() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f AssignmentFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
