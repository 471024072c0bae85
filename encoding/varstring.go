package encoding

import (
	"fmt"

	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/internal/pool"
)

// MaxNameLength is the maximum byte length of a category name.
// This limit ensures compatibility with uint8 length prefix encoding.
// Since uint8 can represent 0-255, the maximum name length is 255 bytes.
const MaxNameLength = 255

// VarStringEncoder encodes variable-length strings with uint8 length prefix.
//
// Each string is encoded as:
//   - 1 byte: length (0-255)
//   - N bytes: string data (UTF-8)
//
// The encoder enforces a hard limit of 255 bytes per string.
// Strings exceeding this limit will trigger an error.
//
// The names payload of a blob is built with this encoder; the string count
// travels in the blob header, not in the payload.
//
// Note: The VarStringEncoder is NOT a ColumnarEncoder.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewVarStringEncoder creates a new variable-length string encoder.
//
// The encoder uses a pooled byte buffer with amortized growth strategy for
// optimal performance when encoding multiple strings. Length prefixes are a
// single byte, so no byte order applies.
//
// Returns:
//   - *VarStringEncoder: A new encoder instance ready for variable-length string encoding
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{
		buf: pool.GetCountsBuffer(),
	}
}

// Write encodes a single string with uint8 length prefix.
//
// The string is validated to ensure it doesn't exceed MaxNameLength (255 bytes).
// Returns an error if the string is too long.
//
// Parameters:
//   - text: String to encode (must not exceed 255 bytes)
//
// Returns:
//   - error: nil if successful, error if the string exceeds MaxNameLength
func (e *VarStringEncoder) Write(text string) error {
	if len(text) > MaxNameLength {
		return fmt.Errorf("name length %d exceeds maximum %d", len(text), MaxNameLength)
	}

	e.count++

	// Pre-grow buffer for length byte + string data
	e.buf.Grow(1 + len(text))

	length := uint8(len(text)) //nolint: gosec
	e.buf.MustWrite([]byte{length})
	e.buf.MustWrite([]byte(text))

	return nil
}

// WriteSlice encodes a slice of strings with buffer pre-allocation.
//
// All strings are validated to ensure none exceed MaxNameLength (255 bytes).
// Returns an error if any string is too long; nothing is written in that case.
//
// Parameters:
//   - texts: Slice of strings to encode (each must not exceed 255 bytes)
//
// Returns:
//   - error: nil if successful, error if any string exceeds MaxNameLength
func (e *VarStringEncoder) WriteSlice(texts []string) error {
	// Validate all strings first
	totalSize := 0
	for _, text := range texts {
		if len(text) > MaxNameLength {
			return fmt.Errorf("name length %d exceeds maximum %d", len(text), MaxNameLength)
		}
		totalSize += 1 + len(text) // length byte + string data
	}

	e.buf.Grow(totalSize)

	for _, text := range texts {
		length := uint8(len(text)) //nolint: gosec
		e.buf.MustWrite([]byte{length})
		e.buf.MustWrite([]byte(text))
		e.count++
	}

	return nil
}

// Bytes returns the encoded data as a byte slice.
//
// The returned slice shares the underlying buffer with the encoder.
// Do not modify the returned slice.
//
// Returns:
//   - []byte: Encoded byte slice containing all written strings
func (e *VarStringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of strings encoded.
//
// Returns:
//   - int: Number of strings written since construction
func (e *VarStringEncoder) Len() int {
	return e.count
}

// Size returns the total size of encoded data in bytes.
//
// Returns:
//   - int: Total bytes written to the internal buffer
func (e *VarStringEncoder) Size() int {
	return e.buf.Len()
}

// Finish finalizes the encoding process and returns buffer resources to the pool.
//
// After calling Finish, the encoder is no longer usable.
func (e *VarStringEncoder) Finish() {
	if e.buf != nil {
		pool.PutCountsBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// DecodeVarStrings decodes count uint8-length-prefixed strings from data.
//
// Parameters:
//   - data: Byte slice holding the encoded strings, starting at the first length prefix
//   - count: Number of strings to decode
//
// Returns:
//   - []string: The decoded strings, in order
//   - int: The total number of bytes consumed
//   - error: ErrInvalidPayload when data is truncated
func DecodeVarStrings(data []byte, count int) ([]string, int, error) {
	offset := 0
	texts := make([]string, count)

	for i := range count {
		if offset >= len(data) {
			return nil, 0, fmt.Errorf("%w: cannot read length prefix of string %d at offset %d",
				errs.ErrInvalidPayload, i, offset)
		}

		length := int(data[offset])
		offset++

		if offset+length > len(data) {
			return nil, 0, fmt.Errorf("%w: cannot read %d bytes of string %d at offset %d, have %d total",
				errs.ErrInvalidPayload, length, i, offset, len(data))
		}

		texts[i] = string(data[offset : offset+length])
		offset += length
	}

	return texts, offset, nil
}
