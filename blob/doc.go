// Package blob implements the binary snapshot formats for categorized
// set-membership data: counts blobs and assignment blobs.
//
// A blob is a single self-describing byte slice that carries an ordered
// category set together with either the aggregated combination counts or the
// full per-sample assignment. Blobs are byte-order independent, integrity
// checked and cheap to store or ship between services.
//
// # Blob Kinds
//
// Counts blob (magic 0xAC10) stores one entry per observed combination:
//
//	[32B header][names payload][masks payload][values payload][8B checksum]
//
// Assignment blob (magic 0xAC20) stores one mask per sample row:
//
//	[32B header][names payload][masks payload][8B checksum]
//
// Both kinds share the section layout:
//
//   - Header: packed flags (endianness bit, magic number, compression
//     nibbles), the xxHash64 identity of the ordered category set, the entry
//     or row count, the category count and the payload offsets.
//   - Names payload: uint8 length-prefixed category names in order. Names are
//     short and incompressible, so this payload is never compressed.
//   - Masks payload: fixed-width big-endian membership masks, one per entry
//     or row, optionally compressed.
//   - Values payload (counts blobs only): raw IEEE 754 float64 counts, one
//     per entry, NaN marking a missing count, optionally compressed.
//   - Checksum: xxHash64 of everything before it, written with the
//     header-selected byte order.
//
// # Encoding
//
// Encoders are configured once with functional options and can then be reused
// for any number of blobs:
//
//	encoder, err := blob.NewCountsEncoder(
//		blob.WithValueCompression(format.CompressionZstd),
//	)
//	if err != nil {
//		return err
//	}
//
//	data, err := encoder.Encode(names, masks, values)
//	if err != nil {
//		return err
//	}
//
// Assignment blobs carry no values payload:
//
//	encoder, err := blob.NewAssignmentEncoder(
//		blob.WithMaskCompression(format.CompressionZstd),
//	)
//	if err != nil {
//		return err
//	}
//
//	data, err := encoder.Encode(names, masks)
//
// # Decoding
//
// Decoding is a single call that parses the header, verifies the checksum and
// decompresses the payloads:
//
//	payload, err := blob.DecodeCounts(data)
//	if err != nil {
//		return err
//	}
//
//	for i, mask := range payload.Masks {
//		fmt.Printf("%v = %v\n", mask, payload.Values[i])
//	}
//
// The checksum is verified before any payload bytes are trusted, so corrupted
// blobs surface as errs.ErrChecksumMismatch and truncated or inconsistent
// blobs as errs.ErrInvalidPayload.
//
// # Compression Defaults
//
// Counts blobs hold one entry per observed combination, rarely more than a
// few hundred, so masks default to no compression while the float64 values
// default to Zstandard. Assignment blobs hold one mask per sample row and
// grow with the data set, so masks default to Zstandard. Both payloads accept
// format.CompressionNone, format.CompressionZstd, format.CompressionS2 and
// format.CompressionLZ4.
//
// # Byte Order
//
// Blobs are little-endian by default; WithBigEndian switches every multi-byte
// field and the values payload to big-endian. The header options word is
// always stored little-endian so a decoder can read the endianness bit before
// choosing an engine, and mask bytes are big-endian by definition regardless
// of the blob byte order.
package blob
