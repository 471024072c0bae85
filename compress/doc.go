// Package compress provides compression and decompression codecs for upsetdata blob payloads.
//
// This package offers multiple compression algorithms optimized for different characteristics
// of membership data. Compression is applied at the payload level after encoding, providing
// an additional layer of space savings beyond the fixed-width packing.
//
// # Overview
//
// Upsetdata applies a two-stage size strategy:
//
//  1. **Encoding**: Packs membership into fixed-width masks (one bit per category)
//  2. **Compression**: Further reduces encoded payloads using general-purpose algorithms
//
// The compress package implements the second stage, supporting multiple algorithms:
//   - None: No compression (fastest, largest)
//   - Zstd: Excellent compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp Compression** (format.CompressionNone)
//
//	codec, _ := compress.GetCodec(format.CompressionNone)
//	compressed, _ := codec.Compress(data)  // Returns data unchanged
//	original, _ := codec.Decompress(compressed)  // Returns data unchanged
//
// Use when:
//   - Payloads are tiny (counts blobs with few combinations)
//   - CPU is more critical than storage
//   - Data is incompressible
//
// **Zstandard (Zstd)** (format.CompressionZstd)
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	compressed, _ := codec.Compress(data)  // Best compression ratio
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Excellent (typically 2-4x on top of bit packing)
//   - Speed: Moderate (compression: ~400 MB/s, decompression: ~1000 MB/s)
//   - Memory: ~2-4 MB for compression, ~1-2 MB for decompression
//   - Latency: Medium (adds ~0.5-2ms for typical payloads)
//
// Use when:
//   - Storage cost is primary concern
//   - Network bandwidth is limited
//   - Can tolerate moderate compression overhead
//
// Best for:
//   - Per-sample assignment payloads (long runs of repeated masks)
//   - Cold storage / archival of snapshots
//
// **S2 (Snappy Alternative)** (format.CompressionS2)
//
//	codec, _ := compress.GetCodec(format.CompressionS2)
//	compressed, _ := codec.Compress(data)  // Fast with good compression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Good (typically 1.5-2.5x on top of bit packing)
//   - Speed: Fast (compression: ~1000 MB/s, decompression: ~2000 MB/s)
//   - Memory: ~256KB for compression, ~64KB for decompression
//   - Latency: Low (adds ~0.2-0.5ms for typical payloads)
//
// Use when:
//   - Need balance between compression and speed
//   - Latency is important
//   - Moderate storage savings are acceptable
//
// Best for:
//   - Interactive pipelines that re-encode on every refresh
//   - Streaming snapshot transport
//
// **LZ4** (format.CompressionLZ4)
//
//	codec, _ := compress.GetCodec(format.CompressionLZ4)
//	compressed, _ := codec.Compress(data)  // Very fast decompression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Moderate (typically 1.3-2x on top of bit packing)
//   - Speed: Very fast decompression (~3000 MB/s), moderate compression (~800 MB/s)
//   - Memory: ~64KB for compression, ~16KB for decompression
//   - Latency: Very low (adds ~0.1-0.3ms for typical payloads)
//
// Use when:
//   - Read performance is critical
//   - Decompression speed matters more than compression ratio
//   - Low latency is required
//
// Best for:
//   - Query-heavy workloads decoding many snapshots
//   - Cache-friendly scenarios
//
// # Algorithm Selection Guide
//
// **Choose based on workload**:
//
// | Workload Type          | Recommended | Reason                              |
// |------------------------|-------------|-------------------------------------|
// | Storage-constrained    | Zstd        | Best compression ratio              |
// | Interactive encoding   | S2          | Balanced speed and compression      |
// | Query-heavy            | LZ4         | Fastest decompression               |
// | CPU-constrained        | None        | No compression overhead             |
// | Cold storage           | Zstd        | Maximize space savings              |
// | Network transmission   | Zstd        | Reduce bandwidth usage              |
//
// **Choose based on payload**:
//
// | Payload                  | Recommended | Typical Ratio (after packing) |
// |--------------------------|-------------|-------------------------------|
// | Assignment masks         | Zstd        | 3-8x (skewed memberships)     |
// | Counts masks (few rows)  | None        | Below compressor overhead     |
// | Counts values            | Zstd        | 1.5-3x                        |
//
// Counts blobs hold one entry per observed combination, so their payloads are
// often a few hundred bytes; assignment blobs hold one mask per sample and
// compress extremely well because real memberships are heavily skewed toward
// a few combinations. Category name payloads are never compressed.
//
// # Memory Management
//
// All codec implementations allocate output buffers per call:
//   - Compression buffers are sized based on input (typically 1-2x input size)
//   - Decompression buffers are pre-allocated based on compressed data header
//
// # Thread Safety
//
// All codec implementations are thread-safe and can be safely shared across goroutines.
// The GetCodec registry returns shared singleton instances.
//
// # Error Handling
//
// Compression errors are rare but can occur:
//   - Input too large (exceeds algorithm limits)
//   - Memory allocation failure
//
// Decompression errors are more common:
//   - Corrupted compressed data
//   - Invalid compression format
//   - Decompressed size exceeds limits
//
// All errors are wrapped with context for debugging.
//
// # Integration with Blob Package
//
// The blob package uses this package internally. Configure compression via encoder options:
//
//	// Counts blob with Zstd-compressed values
//	encoder, _ := blob.NewCountsEncoder(
//	    blob.WithValueCompression(format.CompressionZstd),
//	)
//
//	// Assignment blob with S2-compressed masks (faster)
//	encoder, _ := blob.NewAssignmentEncoder(
//	    blob.WithMaskCompression(format.CompressionS2),
//	)
//
// Decoders automatically detect and use the correct decompression algorithm
// based on the blob header.
//
// # Advanced Usage
//
// For custom compression needs, implement the Compressor/Decompressor interfaces:
//
//	type MyCodec struct{}
//
//	func (c *MyCodec) Compress(data []byte) ([]byte, error) {
//	    // Custom compression logic
//	    return compressedData, nil
//	}
//
//	func (c *MyCodec) Decompress(data []byte) ([]byte, error) {
//	    // Custom decompression logic
//	    return originalData, nil
//	}
//
// # Examples
//
// See the compress_demo example for an interactive comparison across algorithms.
package compress
