// Package section defines the low-level binary structures and constants for upsetdata blob formats.
//
// This package provides the foundational types and constants that define the physical layout
// of upsetdata snapshot blobs. It handles binary serialization/deserialization of headers and
// flags, ensuring consistent byte-level representation across platforms.
//
// # Overview
//
// Two blob kinds share the same 32-byte header shape:
//
//  1. Counts blob: one aggregated value per membership combination (CountsHeader, CountsFlag)
//  2. Assignment blob: one membership mask per sample row (AssignmentHeader, AssignmentFlag)
//
// These types form the structural foundation of the binary format, providing:
//   - Fixed-size headers for single-pass decoding
//   - Efficient binary serialization with minimal overhead
//   - Platform-independent byte representation
//   - Bitfield packing for compact storage
//
// # Blob Structure
//
// A counts blob consists of a fixed header followed by variable-size payloads
// and an integrity trailer:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Flag (4 bytes): compression/options                  │
//	│  - SetID (8 bytes): xxHash64 of the category names      │
//	│  - EntryCount (4 bytes), CategoryCount (4 bytes)        │
//	│  - Offsets (12 bytes): names, masks, values             │
//	├─────────────────────────────────────────────────────────┤
//	│ Names Payload (variable)                                │
//	│  - Length-prefixed category names, never compressed     │
//	├─────────────────────────────────────────────────────────┤
//	│ Masks Payload (variable)                                │
//	│  - Fixed-width big-endian mask bytes, compressed        │
//	├─────────────────────────────────────────────────────────┤
//	│ Values Payload (variable)                               │
//	│  - 8 bytes per entry (IEEE 754), compressed             │
//	│  - NaN marks a missing entry                            │
//	├─────────────────────────────────────────────────────────┤
//	│ Checksum (8 bytes)                                      │
//	│  - xxHash64 of everything before it                     │
//	└─────────────────────────────────────────────────────────┘
//
// An assignment blob has the same shape without the values payload; its header
// records the trailer position in ChecksumOffset instead of a values offset.
//
// # Header Format
//
// CountsHeader (32 bytes):
//
//	Bytes  | Field         | Type   | Description
//	-------|---------------|--------|----------------------------------
//	0-3    | Flag          | uint32 | Compression, endianness, magic
//	4-11   | SetID         | uint64 | xxHash64 of NUL-joined category names
//	12-15  | EntryCount    | uint32 | Number of combination entries
//	16-19  | CategoryCount | uint32 | Number of categories (max 65535)
//	20-23  | NamesOffset   | uint32 | Byte offset to names payload
//	24-27  | MasksOffset   | uint32 | Byte offset to masks payload
//	28-31  | ValuesOffset  | uint32 | Byte offset to values payload
//
// AssignmentHeader (32 bytes):
//
//	Same layout with RowCount in place of EntryCount and ChecksumOffset in
//	place of ValuesOffset.
//
// # Flag Format
//
// Flags are packed into 4 bytes (32 bits):
//
//	Byte 0-1 (Options, 16 bits):
//	  Bit 0: Endianness (0=little-endian, 1=big-endian)
//	  Bits 1-3: Reserved (must be 0)
//	  Bits 4-15: Magic number (0xAC10 for counts, 0xAC20 for assignment)
//
//	Byte 2 (Compression, 8 bits):
//	  Bits 0-3: Mask compression (0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4)
//	  Bits 4-7: Value compression (counts only; must be 0 for assignment)
//
//	Byte 3: Reserved (must be 0)
//
// Example flag handling:
//
//	flag := section.NewCountsFlag()
//	flag.SetMaskCompression(format.CompressionLZ4)
//	flag.SetValueCompression(format.CompressionZstd)
//	if flag.IsBigEndian() {
//	    // pick the big-endian engine
//	}
//
// # Byte Order (Endianness)
//
// The Options field itself is always serialized little-endian so a decoder can
// read the endianness bit before choosing an engine. Every other multi-byte
// field uses the byte order the bit selects:
//
//	if flag.IsBigEndian() {
//	    engine = endian.GetBigEndianEngine()
//	} else {
//	    engine = endian.GetLittleEndianEngine()
//	}
//
// Mask payload bytes are big-endian regardless of the flag; they are defined
// by the bitmask wire form, not by the header byte order.
//
// # Thread Safety
//
// All types in this package are plain value types. Distinct instances are safe
// for concurrent use; do not mutate a shared instance concurrently.
//
// # Integration with Other Packages
//
// The section package is used by:
//   - blob: high-level encoder/decoder implementation
//   - encoding: low-level payload writers
//   - endian: byte order handling
//
// Most users should interact with the blob package instead of using section directly.
package section
