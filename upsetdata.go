// Package upsetdata prepares category-membership data for UpSet-style set
// visualizations: it derives bit-packed membership masks from raw inputs,
// aggregates them into per-combination counts, and serializes both forms as
// compact binary snapshots.
//
// The package is optimized for the shape this data actually has: tens of
// categories, thousands to millions of sample rows, and a handful of observed
// combinations, with deterministic ordering so rendered plots are stable
// across runs.
//
// # Core Features
//
//   - Indicator-frame construction from memberships, contents tables,
//     delimited text or existing boolean columns
//   - Bit-packed membership masks (MSB-first, any category count)
//   - Per-combination aggregation with plain or weighted counts
//   - Deterministic degree and cardinality sorts with category reordering
//   - Venn-style inclusive and exclusive intersection queries
//   - Binary snapshots with xxHash64 identities, per-payload compression
//     (None, Zstd, S2, LZ4) and checksum trailers
//   - Seeded sample generators for demos and benchmarks
//
// # Basic Usage
//
// Building categorized data from per-sample memberships and aggregating it:
//
//	import "github.com/arloliu/upsetdata"
//
//	memberships := [][]string{
//		{"liver"},
//		{"liver", "heart"},
//		{},
//		{"heart", "lung"},
//	}
//
//	cd, _ := upsetdata.FromMemberships(memberships, nil)
//	counts, _ := cd.Counts()
//	_ = counts.Sort(upsetdata.WithSortBy(upsetdata.SortByCardinality))
//
//	for entry := range counts.Entries() {
//		fmt.Printf("%v = %v\n", entry.Combination, entry.Value)
//	}
//
// Snapshotting the aggregation and restoring it later:
//
//	snapshot, _ := counts.Encode()
//
//	restored, _ := upsetdata.DecodeCounts(snapshot)
//
// # Package Structure
//
// This package provides the categorization, aggregation and query surface,
// plus convenient snapshot wrappers around the blob package. For wire-level
// control of the snapshot formats, use the blob package directly.
package upsetdata

import (
	"math"

	"github.com/arloliu/upsetdata/blob"
	"github.com/arloliu/upsetdata/internal/hash"
)

// Encode serializes the aggregated counts into a counts blob.
//
// Missing combinations (Present false) are written as NaN values, so a decode
// restores them as missing rather than as zero. The current entry order is
// preserved; sort before encoding when a particular order should survive the
// round trip.
//
// Parameters:
//   - opts: Optional wire configuration (blob.WithMaskCompression,
//     blob.WithValueCompression, blob.WithLittleEndian, blob.WithBigEndian)
//
// Returns:
//   - []byte: Self-contained snapshot, decodable with DecodeCounts
//   - error: Configuration or encoding error
//
// Example:
//
//	snapshot, err := counts.Encode(
//	    blob.WithValueCompression(format.CompressionZstd),
//	)
func (c *CategorizedCounts) Encode(opts ...blob.EncoderOption) ([]byte, error) {
	encoder, err := blob.NewCountsEncoder(opts...)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(c.values))
	for i, v := range c.values {
		if c.present[i] {
			values[i] = v
		} else {
			values[i] = math.NaN()
		}
	}

	return encoder.Encode(c.names, c.masks, values)
}

// DecodeCounts restores a CategorizedCounts from a counts blob produced by
// CategorizedCounts.Encode.
//
// Entries keep their encoded order, and NaN values come back as missing
// combinations with Present false.
//
// Parameters:
//   - data: Complete counts blob
//
// Returns:
//   - *CategorizedCounts: Restored aggregation
//   - error: Blob decode or validation error
func DecodeCounts(data []byte) (*CategorizedCounts, error) {
	payload, err := blob.DecodeCounts(data)
	if err != nil {
		return nil, err
	}

	return NewCategorizedCounts(payload.Names, payload.Masks, payload.Values)
}

// EncodeAssignment serializes the per-sample category assignment into an
// assignment blob.
//
// Only the category names and row masks are serialized; the attached sample
// frame, if any, is not part of the snapshot. Row order is preserved.
//
// Parameters:
//   - opts: Optional wire configuration (blob.WithMaskCompression,
//     blob.WithLittleEndian, blob.WithBigEndian)
//
// Returns:
//   - []byte: Self-contained snapshot, decodable with DecodeAssignment
//   - error: Configuration or encoding error
func (d *CategorizedData) EncodeAssignment(opts ...blob.EncoderOption) ([]byte, error) {
	encoder, err := blob.NewAssignmentEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return encoder.Encode(d.names, d.masks)
}

// DecodeAssignment restores a CategorizedData from an assignment blob
// produced by CategorizedData.EncodeAssignment.
//
// The restored assignment carries no sample frame; Data returns nil until the
// caller rebinds one.
//
// Parameters:
//   - data: Complete assignment blob
//
// Returns:
//   - *CategorizedData: Restored assignment with nil sample frame
//   - error: Blob decode or validation error
func DecodeAssignment(data []byte) (*CategorizedData, error) {
	payload, err := blob.DecodeAssignment(data)
	if err != nil {
		return nil, err
	}

	return NewCategorizedDataFromMasks(payload.Masks, payload.Names, nil)
}

// SetID computes the 64-bit identity of an ordered category set.
//
// Snapshots produced from the same category names in the same order carry the
// same SetID in their headers, so stored blobs can be grouped by category set
// without decoding their payloads. The hash is order sensitive: a reordered
// category set is a different set.
//
// Example:
//
//	id := upsetdata.SetID([]string{"liver", "heart", "lung"})
//
//	payload, _ := blob.DecodeCounts(snapshot)
//	if payload.SetID == id {
//	    // snapshot belongs to this category set
//	}
func SetID(names []string) uint64 {
	return hash.SetID(names)
}
