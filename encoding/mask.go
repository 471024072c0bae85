package encoding

import (
	"iter"

	"github.com/arloliu/upsetdata/bitmask"
	"github.com/arloliu/upsetdata/internal/pool"
)

// MaskEncoder is a raw encoder for fixed-width membership masks.
//
// Each mask occupies exactly ceil(width/8) bytes in the bitmask wire form
// (big-endian, padding bits zero), so the payload size is a pure function of
// the mask width and the entry count. The big-endian mask bytes are defined
// by the bitmask package and do not follow the blob's header byte order.
type MaskEncoder struct {
	buf       *pool.ByteBuffer
	width     int
	byteWidth int
	count     int
}

var _ ColumnarEncoder[bitmask.Mask] = (*MaskEncoder)(nil)

// NewMaskEncoder creates a new mask encoder for masks of the given width.
//
// The encoder draws from the assignment buffer pool: assignment blobs write
// one mask per sample row and dominate mask payload volume.
//
// Every written mask must have exactly this width; the blob encoders validate
// widths before writing.
//
// Parameters:
//   - width: Category count the masks span (must be >= 1)
//
// Returns:
//   - *MaskEncoder: A new encoder instance ready for mask encoding
func NewMaskEncoder(width int) *MaskEncoder {
	return &MaskEncoder{
		buf:       pool.GetAssignmentBuffer(),
		width:     width,
		byteWidth: (width + 7) / 8,
	}
}

// Write encodes a single mask with amortized buffer growth.
//
// Panics if Finish() has been called (nil buffer).
//
// Parameters:
//   - m: The mask to encode (must match the encoder width)
func (e *MaskEncoder) Write(m bitmask.Mask) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++

	e.buf.Grow(e.byteWidth)
	e.buf.B = m.AppendBytes(e.buf.B)
}

// WriteSlice encodes a slice of masks with buffer pre-allocation.
//
// This method pre-allocates buffer space for all masks (byteWidth bytes each)
// to minimize allocations during bulk encoding.
//
// Panics if Finish() has been called (nil buffer).
//
// Parameters:
//   - masks: Slice of masks to encode (each must match the encoder width)
func (e *MaskEncoder) WriteSlice(masks []bitmask.Mask) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count += len(masks)

	if len(masks) == 0 {
		return
	}

	e.buf.Grow(len(masks) * e.byteWidth)
	for _, m := range masks {
		e.buf.B = m.AppendBytes(e.buf.B)
	}
}

// Bytes returns the encoded byte slice containing all written masks.
//
// The returned slice is valid until the next call to Write or WriteSlice.
// The caller must not modify the returned slice as it references the internal buffer.
//
// Panics if Finish() has been called (nil buffer).
//
// Returns:
//   - []byte: Encoded byte slice (empty if no masks written)
func (e *MaskEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded masks.
func (e *MaskEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded masks.
//
// Panics if Finish() has been called (nil buffer).
func (e *MaskEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset clears the encoder state, allowing it to be reused for a new sequence of masks.
//
// Due to the raw encoding strategy, Reset is implemented as a no-op to retain
// the accumulated data in the internal buffer.
func (e *MaskEncoder) Reset() {
	// No-op to retain the accumulated data in the internal buffer.
}

// Finish finalizes the encoding process and returns buffer resources to the pool.
//
// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
// Write(), WriteSlice(), Bytes(), or Size() will panic due to nil buffer.
func (e *MaskEncoder) Finish() {
	if e.buf != nil {
		pool.PutAssignmentBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// MaskDecoder is a decoder for fixed-width membership masks.
//
// It is designed to decode byte slices produced by MaskEncoder. The decoder is
// immutable and stateless, making value semantics ideal.
type MaskDecoder struct {
	width     int
	byteWidth int
}

var _ ColumnarDecoder[bitmask.Mask] = MaskDecoder{}

// NewMaskDecoder creates a new mask decoder for masks of the given width.
//
// Parameters:
//   - width: Category count the masks span (must match the encoder width)
//
// Returns:
//   - MaskDecoder: A new decoder instance (stateless, can be reused)
func NewMaskDecoder(width int) MaskDecoder {
	return MaskDecoder{
		width:     width,
		byteWidth: (width + 7) / 8,
	}
}

// All decodes all masks from the given byte slice.
//
// The iterator yields exactly count masks when the data is valid. It stops
// early when the data is too short or a mask has padding bits set beyond the
// width; the caller detects malformed payloads by counting yielded masks.
//
// Parameters:
//   - data: Encoded byte slice from MaskEncoder.Bytes()
//   - count: Expected number of masks to decode
//
// Returns:
//   - iter.Seq[bitmask.Mask]: Iterator yielding decoded masks
func (d MaskDecoder) All(data []byte, count int) iter.Seq[bitmask.Mask] {
	return func(yield func(bitmask.Mask) bool) {
		if count == 0 || len(data) < count*d.byteWidth {
			return
		}

		for i := range count {
			start := i * d.byteWidth
			m, err := bitmask.FromBytes(data[start:start+d.byteWidth], d.width)
			if err != nil {
				return
			}
			if !yield(m) {
				return
			}
		}
	}
}

// At retrieves the mask at the specified index from the encoded data.
//
// If the index is out of bounds or the mask bytes are malformed, the second
// return value is false.
//
// Parameters:
//   - data: Encoded byte slice from MaskEncoder.Bytes()
//   - index: Zero-based index of the mask to retrieve
//   - count: Total number of masks in the encoded data
//
// Returns:
//   - bitmask.Mask: The mask at the specified index
//   - bool: true if the index exists and was successfully decoded, false otherwise
func (d MaskDecoder) At(data []byte, index int, count int) (bitmask.Mask, bool) {
	if len(data) == 0 || index < 0 || index >= count {
		return bitmask.Mask{}, false
	}

	start := index * d.byteWidth
	if start+d.byteWidth > len(data) {
		return bitmask.Mask{}, false
	}

	m, err := bitmask.FromBytes(data[start:start+d.byteWidth], d.width)
	if err != nil {
		return bitmask.Mask{}, false
	}

	return m, true
}
