package section

import (
	"math"

	"github.com/arloliu/upsetdata/format"
)

const (
	// Bit masks for the packed options field
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicCountsV1Opt     = 0xAC10 // MagicCountsV1Opt is the version 1 magic number for the counts blob format.
	MagicAssignmentV1Opt = 0xAC20 // MagicAssignmentV1Opt is the version 1 magic number for the assignment blob format.

	// Mask compression (bits 0-3 of the compression byte)
	MaskCompressionNone = uint8(format.CompressionNone) // MaskCompressionNone represents no compression for mask payloads.
	MaskCompressionZstd = uint8(format.CompressionZstd) // MaskCompressionZstd represents Zstandard compression for mask payloads.
	MaskCompressionS2   = uint8(format.CompressionS2)   // MaskCompressionS2 represents S2 compression for mask payloads.
	MaskCompressionLZ4  = uint8(format.CompressionLZ4)  // MaskCompressionLZ4 represents LZ4 compression for mask payloads.

	// Value compression (bits 4-7 of the compression byte)
	// Only applicable to counts blobs
	ValueCompressionNone = uint8(format.CompressionNone) << 4 // ValueCompressionNone represents no compression for value payloads.
	ValueCompressionZstd = uint8(format.CompressionZstd) << 4 // ValueCompressionZstd represents Zstandard compression for value payloads.
	ValueCompressionS2   = uint8(format.CompressionS2) << 4   // ValueCompressionS2 represents S2 compression for value payloads.
	ValueCompressionLZ4  = uint8(format.CompressionLZ4) << 4  // ValueCompressionLZ4 represents LZ4 compression for value payloads.
)

// offset and section sizes in the blob
const (
	HeaderSize       = 32             // fixed header size in bytes (shared by both blob kinds)
	ChecksumSize     = 8              // xxHash64 trailer size in bytes
	NamesOffset      = HeaderSize     // byte offset where the names payload starts
	MaxCategoryCount = math.MaxUint16 // maximum number of categories a blob can carry
	MaxEntryCount    = math.MaxUint32 // maximum number of entries or rows a blob can carry
	MaxPayloadOffset = math.MaxUint32 // maximum byte offset a header field can address
)

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}
