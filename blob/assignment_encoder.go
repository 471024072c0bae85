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

// AssignmentEncoder serializes per-sample membership masks into the
// assignment blob format (magic 0xAC20).
//
// Assignment blobs preserve the full row-level assignment rather than the
// aggregated counts, so they grow with the number of samples. The masks
// payload is Zstandard-compressed by default; repeated membership patterns
// across rows compress well.
//
// The encoder holds only configuration. Encode is self-contained, so the same
// encoder can be reused for any number of blobs, and distinct goroutines can
// call Encode concurrently on a shared encoder.
type AssignmentEncoder struct {
	*AssignmentEncoderConfig
}

// NewAssignmentEncoder creates an assignment blob encoder.
//
// Defaults: little-endian byte order and Zstandard-compressed masks.
//
// Parameters:
//   - opts: Optional configuration (WithMaskCompression, WithLittleEndian,
//     WithBigEndian)
//
// Returns:
//   - *AssignmentEncoder: Configured encoder, ready for Encode
//   - error: Error from an invalid option, including WithValueCompression,
//     which assignment blobs do not support
func NewAssignmentEncoder(opts ...EncoderOption) (*AssignmentEncoder, error) {
	config := NewAssignmentEncoderConfig()
	if err := options.Apply[encoderConfig](config, opts...); err != nil {
		return nil, err
	}

	if err := config.setCodecs(); err != nil {
		return nil, err
	}

	return &AssignmentEncoder{AssignmentEncoderConfig: config}, nil
}

// Encode serializes one per-sample assignment into a self-contained blob.
//
// masks[i] is the membership combination of sample row i; rows keep their
// input order.
//
// Parameters:
//   - names: Ordered category names, one per mask bit, each at most 255 bytes
//   - masks: One membership mask per sample row, all of width len(names)
//
// Returns:
//   - []byte: Encoded blob with an xxHash64 trailer
//   - error: Validation or compression error
//
// Errors:
//   - errs.ErrNoCategories: names is empty
//   - errs.ErrTooManyCategories: more than section.MaxCategoryCount names
//   - errs.ErrDuplicateCategory: names contains a duplicate
//   - errs.ErrNoEntries: masks is empty
//   - errs.ErrWidthMismatch: a mask width differs from len(names)
func (e *AssignmentEncoder) Encode(names []string, masks []bitmask.Mask) ([]byte, error) {
	if err := validateCategoryNames(names); err != nil {
		return nil, err
	}

	if len(masks) == 0 {
		return nil, errs.ErrNoEntries
	}

	if len(masks) > section.MaxEntryCount {
		return nil, fmt.Errorf("too many rows: %d, max %d", len(masks), section.MaxEntryCount)
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

	maskPayload, err := e.maskCodec.Compress(maskEnc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress masks payload: %w", err)
	}

	masksOffset := section.NamesOffset + namesEnc.Size()
	checksumOffset := masksOffset + len(maskPayload)
	blobSize := checksumOffset + section.ChecksumSize

	if blobSize > section.MaxPayloadOffset {
		return nil, fmt.Errorf("blob size %d exceeds maximum of %d bytes", blobSize, section.MaxPayloadOffset)
	}

	// Copy the header template so a shared encoder stays reusable.
	header := *e.header
	header.SetID = hash.SetID(names)
	header.RowCount = uint32(len(masks))           //nolint: gosec
	header.CategoryCount = uint32(width)           //nolint: gosec
	header.MasksOffset = uint32(masksOffset)       //nolint: gosec
	header.ChecksumOffset = uint32(checksumOffset) //nolint: gosec

	blob := make([]byte, blobSize)
	offset := 0
	offset += copy(blob[offset:], header.Bytes())
	offset += copy(blob[offset:], namesEnc.Bytes())
	offset += copy(blob[offset:], maskPayload)

	e.engine.PutUint64(blob[offset:], hash.Checksum(blob[:offset]))

	return blob, nil
}
