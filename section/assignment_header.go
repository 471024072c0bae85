package section

import (
	"github.com/arloliu/upsetdata/errs"
)

// AssignmentHeader represents the fixed-size header section at the start of an
// assignment blob. Assignment blobs carry one mask per sample row and no
// values payload, so the last header field records the trailer position
// instead of a values offset.
type AssignmentHeader struct {
	// SetID is the xxHash64 identity of the ordered category set, computed
	// over the NUL-joined category names.
	SetID uint64 // byte offset 4-11
	// RowCount is the number of sample rows stored in the blob.
	RowCount uint32 // byte offset 12-15
	// CategoryCount is the number of categories, max MaxCategoryCount.
	CategoryCount uint32 // byte offset 16-19
	// NamesOffset is the byte offset to the start of the names payload.
	NamesOffset uint32 // byte offset 20-23
	// MasksOffset is the byte offset to the start of the masks payload.
	// It records the offset after the names payload.
	MasksOffset uint32 // byte offset 24-27
	// ChecksumOffset is the byte offset to the xxHash64 trailer.
	// It records the offset after the compressed masks payload.
	ChecksumOffset uint32 // byte offset 28-31

	// Flag is a packed field for various flags and magic number.
	Flag AssignmentFlag // byte offset 0-3
}

// NewAssignmentHeader creates a new AssignmentHeader with default flags.
// The counts and remaining payload offsets are set when the encoder finishes.
func NewAssignmentHeader() *AssignmentHeader {
	return &AssignmentHeader{
		Flag:        NewAssignmentFlag(),
		NamesOffset: NamesOffset,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *AssignmentHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Parse options first to determine endianness (always little-endian for the Options field itself)
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Compression = data[2]
	h.Flag.Reserved = data[3]

	engine := h.Flag.GetEndianEngine()

	h.SetID = engine.Uint64(data[4:12])
	h.RowCount = engine.Uint32(data[12:16])
	h.CategoryCount = engine.Uint32(data[16:20])
	h.NamesOffset = engine.Uint32(data[20:24])
	h.MasksOffset = engine.Uint32(data[24:28])
	h.ChecksumOffset = engine.Uint32(data[28:32])

	return h.Flag.Validate()
}

// Bytes serializes the AssignmentHeader into a byte slice.
//
// The Options field is always written little-endian so a decoder can read the
// endianness bit before choosing an engine; every other field uses the byte
// order the flag selects.
func (h *AssignmentHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Compression
	b[3] = h.Flag.Reserved
	engine.PutUint64(b[4:12], h.SetID)
	engine.PutUint32(b[12:16], h.RowCount)
	engine.PutUint32(b[16:20], h.CategoryCount)
	engine.PutUint32(b[20:24], h.NamesOffset)
	engine.PutUint32(b[24:28], h.MasksOffset)
	engine.PutUint32(b[28:32], h.ChecksumOffset)

	return b
}

// ParseAssignmentHeader parses an AssignmentHeader from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with the header (must be at least 32 bytes)
//
// Returns:
//   - AssignmentHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseAssignmentHeader(data []byte) (AssignmentHeader, error) {
	if len(data) < HeaderSize {
		return AssignmentHeader{}, errs.ErrInvalidHeaderSize
	}

	h := AssignmentHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return AssignmentHeader{}, err
	}

	return h, nil
}
