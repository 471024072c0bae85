package blob

import (
	"fmt"

	"github.com/arloliu/upsetdata/bitmask"
	"github.com/arloliu/upsetdata/encoding"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/internal/hash"
	"github.com/arloliu/upsetdata/internal/options"
	"github.com/arloliu/upsetdata/section"
)

// CountsEncoder serializes aggregated combination counts into the counts blob
// format (magic 0xAC10).
//
// The encoder holds only configuration. Encode is self-contained, so the same
// encoder can be reused for any number of blobs, and distinct goroutines can
// call Encode concurrently on a shared encoder.
//
// Example:
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
type CountsEncoder struct {
	*CountsEncoderConfig
}

// NewCountsEncoder creates a counts blob encoder.
//
// Defaults: little-endian byte order, uncompressed masks and
// Zstandard-compressed values. Counts blobs hold one entry per observed
// combination, so the masks payload is usually too small to benefit from
// compression while the float64 values still do.
//
// Parameters:
//   - opts: Optional configuration (WithMaskCompression, WithValueCompression,
//     WithLittleEndian, WithBigEndian)
//
// Returns:
//   - *CountsEncoder: Configured encoder, ready for Encode
//   - error: Error from an invalid option
func NewCountsEncoder(opts ...EncoderOption) (*CountsEncoder, error) {
	config := NewCountsEncoderConfig()
	if err := options.Apply[encoderConfig](config, opts...); err != nil {
		return nil, err
	}

	if err := config.setCodecs(); err != nil {
		return nil, err
	}

	return &CountsEncoder{CountsEncoderConfig: config}, nil
}

// Encode serializes one aggregation result into a self-contained counts blob.
//
// The masks and values slices are parallel: masks[i] is a combination of the
// named categories and values[i] its aggregated count. A NaN value marks a
// combination whose count is missing.
//
// Parameters:
//   - names: Ordered category names, one per mask bit, each at most 255 bytes
//   - masks: Combination masks, all of width len(names)
//   - values: Aggregated count per combination, parallel to masks
//
// Returns:
//   - []byte: Encoded blob with an xxHash64 trailer
//   - error: Validation or compression error
//
// Errors:
//   - errs.ErrNoCategories: names is empty
//   - errs.ErrTooManyCategories: more than section.MaxCategoryCount names
//   - errs.ErrDuplicateCategory: names contains a duplicate
//   - errs.ErrLengthMismatch: len(masks) differs from len(values)
//   - errs.ErrNoEntries: masks is empty
//   - errs.ErrWidthMismatch: a mask width differs from len(names)
func (e *CountsEncoder) Encode(names []string, masks []bitmask.Mask, values []float64) ([]byte, error) {
	if err := validateCategoryNames(names); err != nil {
		return nil, err
	}

	if len(masks) != len(values) {
		return nil, fmt.Errorf("%w: %d masks, %d values", errs.ErrLengthMismatch, len(masks), len(values))
	}

	if len(masks) == 0 {
		return nil, errs.ErrNoEntries
	}

	if len(masks) > section.MaxEntryCount {
		return nil, fmt.Errorf("too many entries: %d, max %d", len(masks), section.MaxEntryCount)
	}

	width := len(names)
	for i, mask := range masks {
		if mask.Width() != width {
			return nil, fmt.Errorf("%w: mask %d has width %d, want %d", errs.ErrWidthMismatch, i, mask.Width(), width)
		}
	}

	namesEnc := encoding.NewVarStringEncoder()
	defer namesEnc.Finish()

	if err := namesEnc.WriteSlice(names); err != nil {
		return nil, fmt.Errorf("failed to encode category names: %w", err)
	}

	maskEnc := encoding.NewMaskEncoder(width)
	defer maskEnc.Finish()
	maskEnc.WriteSlice(masks)

	valueEnc := encoding.NewValueEncoder(e.engine)
	defer valueEnc.Finish()
	valueEnc.WriteSlice(values)

	maskPayload, err := e.maskCodec.Compress(maskEnc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress masks payload: %w", err)
	}

	valuePayload, err := e.valueCodec.Compress(valueEnc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress values payload: %w", err)
	}

	masksOffset := section.NamesOffset + namesEnc.Size()
	valuesOffset := masksOffset + len(maskPayload)
	checksumOffset := valuesOffset + len(valuePayload)
	blobSize := checksumOffset + section.ChecksumSize

	if blobSize > section.MaxPayloadOffset {
		return nil, fmt.Errorf("blob size %d exceeds maximum of %d bytes", blobSize, section.MaxPayloadOffset)
	}

	// Copy the header template so a shared encoder stays reusable.
	header := *e.header
	header.SetID = hash.SetID(names)
	header.EntryCount = uint32(len(masks))     //nolint: gosec
	header.CategoryCount = uint32(width)       //nolint: gosec
	header.MasksOffset = uint32(masksOffset)   //nolint: gosec
	header.ValuesOffset = uint32(valuesOffset) //nolint: gosec

	blob := make([]byte, blobSize)
	offset := 0
	offset += copy(blob[offset:], header.Bytes())
	offset += copy(blob[offset:], namesEnc.Bytes())
	offset += copy(blob[offset:], maskPayload)
	offset += copy(blob[offset:], valuePayload)

	e.engine.PutUint64(blob[offset:], hash.Checksum(blob[:offset]))

	return blob, nil
}
