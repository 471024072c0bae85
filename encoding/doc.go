// Package encoding provides low-level encoding and decoding primitives for upsetdata payloads.
//
// This package defines the generic ColumnarEncoder and ColumnarDecoder interfaces that
// power upsetdata's binary snapshot format, together with the concrete implementations
// the blob package assembles into complete blobs.
//
// # Usage Guidance
//
// This package is designed for advanced use cases and defining custom encoders.
// Most users should use the high-level blob package instead, which provides:
//   - Complete blob assembly with headers and checksums
//   - Integrated payload compression
//   - Simpler API for common operations
//
// Use this package directly only when:
//   - Implementing custom encoding strategies for specialized payloads
//   - Creating custom storage formats that integrate with upsetdata
//   - Understanding upsetdata's internal encoding mechanisms
//
// For typical use cases, see: github.com/arloliu/upsetdata/blob
//
// # Built-in Implementations
//
// Three payload codecs cover the sections of a blob:
//
// Membership Masks (for bitmask.Mask combinations):
//   - MaskEncoder/MaskDecoder - Fixed-width big-endian bytes, ceil(width/8) bytes per entry
//
// Entry Values (for float64 aggregates):
//   - ValueEncoder/ValueDecoder - Raw IEEE 754 bits, 8 bytes per entry, NaN marks a
//     missing entry
//
// Category Names (for string identifiers):
//   - VarStringEncoder/DecodeVarStrings - uint8 length-prefixed strings, at most
//     MaxNameLength bytes each
//
// # Architecture
//
// The package is organized around the ColumnarEncoder and ColumnarDecoder interfaces:
//
//	type ColumnarEncoder[T comparable] interface {
//	    Write(data T)           // Encode single value
//	    WriteSlice(data []T)    // Encode multiple values (more efficient)
//	    Bytes() []byte          // Get encoded data
//	    Len() int               // Number of values encoded
//	    Size() int              // Size in bytes
//	    Reset()                 // Clear state but keep buffer
//	    Finish()                // Finalize and release resources
//	}
//
//	type ColumnarDecoder[T comparable] interface {
//	    All(data []byte, count int) iter.Seq[T]  // Sequential iteration
//	    At(data []byte, count, index int) (T, bool)  // Random access
//	}
//
// Mask and value payloads are fixed-width, so entry i lives at byte offset
// i*entrySize of its payload and At is O(1) offset math. No index section is
// required. Compression of a whole payload happens a layer above in the blob
// package; this package never sees compressed bytes.
//
// # Mask Encoding
//
// MaskEncoder/MaskDecoder - Fixed-width membership masks:
//
//	encoder := encoding.NewMaskEncoder(3)
//	encoder.Write(bitmask.FromBits(3, 0b101))
//	encoder.Write(bitmask.FromBits(3, 0b010))
//	data := encoder.Bytes()  // 2 bytes (2 × 1 byte for width 3)
//
// Each mask occupies ceil(width/8) bytes in big-endian order, matching the
// bitmask wire form produced by Mask.AppendBytes. The decoder validates that
// padding bits beyond the mask width are zero and stops early on malformed
// input, so All may yield fewer than count entries.
//
// # Value Encoding
//
// ValueEncoder/ValueDecoder - Uncompressed float64 values:
//
//	encoder := encoding.NewValueEncoder(endian.GetLittleEndianEngine())
//	encoder.Write(42.5)
//	encoder.Write(math.NaN())  // missing entry
//	data := encoder.Bytes()    // 16 bytes (2 × 8 bytes)
//
// NaN round-trips bit-exactly and is the on-wire marker for an entry without
// a value. Aggregated intersection sizes are stored as float64 so counts and
// arbitrary statistics share one payload shape.
//
// # Name Encoding
//
// Category names are stored as length-prefixed strings with uint8 lengths:
//
//	encoder := encoding.NewVarStringEncoder()
//	encoder.Write("treatment")  // 1 byte (length) + 9 bytes (data)
//	encoder.Write("control")    // 1 byte (length) + 7 bytes (data)
//	data := encoder.Bytes()     // 18 bytes total
//
// A single byte length caps names at MaxNameLength (255) bytes. Name payloads
// are small and decoded once per blob, so they are never compressed and have
// no random access path; DecodeVarStrings reads the whole section and reports
// how many bytes it consumed.
//
// # Memory Usage
//
// Encoders use internal buffer pools to minimize allocations:
//   - Name and value encoders draw from the counts pool (4KB-64KB buffers)
//   - Mask encoders draw from the assignment pool (64KB-2MB buffers)
//   - Buffers are reused across encoder instances
//   - Automatic growth for large payloads
//
// Decoders have minimal memory overhead:
//   - No allocations for sequential iteration (uses iter.Seq)
//   - Random access reads directly from the payload slice
//
// # Thread Safety
//
// Encoders: Not thread-safe. Use one encoder per goroutine.
//
// Decoders: Thread-safe for concurrent reads from different goroutines.
//
// Buffer Pool: Thread-safe with internal synchronization.
package encoding
