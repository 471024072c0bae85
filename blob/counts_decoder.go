package blob

import (
	"fmt"

	"github.com/arloliu/upsetdata/bitmask"
	"github.com/arloliu/upsetdata/compress"
	"github.com/arloliu/upsetdata/encoding"
	"github.com/arloliu/upsetdata/endian"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/internal/hash"
	"github.com/arloliu/upsetdata/section"
)

// CountsPayload holds the decoded sections of a counts blob.
//
// The Masks and Values slices are parallel: Masks[i] is a combination of the
// named categories and Values[i] its aggregated count, with NaN marking a
// missing count.
type CountsPayload struct {
	// SetID is the xxHash64 identity of the ordered category set. Blobs
	// produced from the same category names in the same order share it.
	SetID uint64
	// Names are the ordered category names.
	Names []string
	// Masks are the combination masks, one per entry, all of width len(Names).
	Masks []bitmask.Mask
	// Values are the aggregated counts, parallel to Masks.
	Values []float64
}

// DecodeCounts parses and verifies a counts blob produced by CountsEncoder.
//
// The xxHash64 trailer is verified before any payload is parsed, so a
// corrupted blob surfaces as ErrChecksumMismatch rather than as a misleading
// payload error. Truncated or internally inconsistent blobs surface as
// ErrInvalidPayload.
//
// Parameters:
//   - data: Complete counts blob, including the checksum trailer
//
// Returns:
//   - *CountsPayload: Decoded category names, masks and values
//   - error: Header, checksum or payload error
//
// Errors:
//   - errs.ErrInvalidHeaderSize: data is shorter than a blob header
//   - errs.ErrInvalidHeaderFlags: wrong magic number or invalid flag bits
//   - errs.ErrChecksumMismatch: stored checksum does not match the data
//   - errs.ErrInvalidPayload: offsets or payload contents are inconsistent
func DecodeCounts(data []byte) (*CountsPayload, error) {
	decoder, err := newCountsDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.decode()
}

// countsDecoder carries the parsed header through the decode steps.
type countsDecoder struct {
	data   []byte
	engine endian.EndianEngine
	header section.CountsHeader
}

func newCountsDecoder(data []byte) (*countsDecoder, error) {
	header, err := section.ParseCountsHeader(data)
	if err != nil {
		return nil, err
	}

	return &countsDecoder{
		data:   data,
		engine: header.Flag.GetEndianEngine(),
		header: header,
	}, nil
}

func (d *countsDecoder) decode() (*CountsPayload, error) {
	// Step 1: validate the section offsets against the physical blob size.
	checksumOffset, err := d.validateOffsets()
	if err != nil {
		return nil, err
	}

	// Step 2: verify the checksum before trusting any payload bytes.
	if err := verifyChecksum(d.data, checksumOffset, d.engine); err != nil {
		return nil, err
	}

	// Step 3: decode the category names and confirm the set identity.
	names, err := d.decodeNames()
	if err != nil {
		return nil, err
	}

	if hash.SetID(names) != d.header.SetID {
		return nil, fmt.Errorf("%w: category set ID does not match the decoded names", errs.ErrInvalidPayload)
	}

	// Step 4: decompress and decode the masks payload.
	masks, err := d.decodeMasks()
	if err != nil {
		return nil, err
	}

	// Step 5: decompress and decode the values payload.
	values, err := d.decodeValues(checksumOffset)
	if err != nil {
		return nil, err
	}

	return &CountsPayload{
		SetID:  d.header.SetID,
		Names:  names,
		Masks:  masks,
		Values: values,
	}, nil
}

// validateOffsets checks section offsets for monotonicity and bounds, and
// returns the checksum trailer offset.
func (d *countsDecoder) validateOffsets() (int, error) {
	if len(d.data) < section.HeaderSize+section.ChecksumSize {
		return 0, fmt.Errorf("%w: blob size %d is below the minimum of %d bytes",
			errs.ErrInvalidPayload, len(d.data), section.HeaderSize+section.ChecksumSize)
	}

	header := &d.header
	if header.CategoryCount == 0 {
		return 0, fmt.Errorf("%w: header category count is zero", errs.ErrNoCategories)
	}

	if header.CategoryCount > section.MaxCategoryCount {
		return 0, fmt.Errorf("%w: header category count %d, max %d",
			errs.ErrTooManyCategories, header.CategoryCount, section.MaxCategoryCount)
	}

	if header.EntryCount == 0 {
		return 0, fmt.Errorf("%w: header entry count is zero", errs.ErrNoEntries)
	}

	checksumOffset := len(d.data) - section.ChecksumSize
	if header.NamesOffset != section.NamesOffset ||
		header.MasksOffset < header.NamesOffset ||
		header.ValuesOffset < header.MasksOffset ||
		int(header.ValuesOffset) > checksumOffset {
		return 0, fmt.Errorf("%w: section offsets %d/%d/%d are inconsistent with blob size %d",
			errs.ErrInvalidPayload, header.NamesOffset, header.MasksOffset, header.ValuesOffset, len(d.data))
	}

	return checksumOffset, nil
}

func (d *countsDecoder) decodeNames() ([]string, error) {
	start := int(d.header.NamesOffset)
	end := int(d.header.MasksOffset)

	names, consumed, err := encoding.DecodeVarStrings(d.data[start:end], int(d.header.CategoryCount))
	if err != nil {
		return nil, err
	}

	if consumed != end-start {
		return nil, fmt.Errorf("%w: names payload has %d trailing bytes",
			errs.ErrInvalidPayload, end-start-consumed)
	}

	return names, nil
}

func (d *countsDecoder) decodeMasks() ([]bitmask.Mask, error) {
	codec, err := compress.GetCodec(d.header.Flag.MaskCompression())
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(d.data[d.header.MasksOffset:d.header.ValuesOffset])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decompress masks payload: %v", errs.ErrInvalidPayload, err)
	}

	width := int(d.header.CategoryCount)
	count := int(d.header.EntryCount)
	byteWidth := (width + 7) / 8

	if len(payload) != count*byteWidth {
		return nil, fmt.Errorf("%w: masks payload is %d bytes, want %d",
			errs.ErrInvalidPayload, len(payload), count*byteWidth)
	}

	masks := make([]bitmask.Mask, 0, count)
	for mask := range encoding.NewMaskDecoder(width).All(payload, count) {
		masks = append(masks, mask)
	}

	// The decoder stops at the first mask with padding bits set.
	if len(masks) != count {
		return nil, fmt.Errorf("%w: decoded %d of %d masks", errs.ErrInvalidPayload, len(masks), count)
	}

	return masks, nil
}

func (d *countsDecoder) decodeValues(checksumOffset int) ([]float64, error) {
	codec, err := compress.GetCodec(d.header.Flag.ValueCompression())
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(d.data[d.header.ValuesOffset:checksumOffset])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decompress values payload: %v", errs.ErrInvalidPayload, err)
	}

	count := int(d.header.EntryCount)
	if len(payload) != count*8 {
		return nil, fmt.Errorf("%w: values payload is %d bytes, want %d",
			errs.ErrInvalidPayload, len(payload), count*8)
	}

	values := make([]float64, 0, count)
	for value := range encoding.NewValueDecoder(d.engine).All(payload, count) {
		values = append(values, value)
	}

	return values, nil
}
