package encoding

import (
	"iter"
	"math"

	"github.com/arloliu/upsetdata/endian"
	"github.com/arloliu/upsetdata/internal/pool"
)

// ValueEncoder is a raw encoder for 64-bit float entry values.
//
// It encodes float64 values in their native binary representation (IEEE 754)
// using the specified endianness with an amortized buffer growth strategy.
// A NaN value marks a missing entry; the encoding carries it verbatim, so the
// decoder recovers missing entries without a separate presence bitmap.
type ValueEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*ValueEncoder)(nil)

// NewValueEncoder creates a new raw value encoder using the specified endian engine.
//
// The encoder draws from the counts buffer pool: value payloads exist only in
// counts blobs, which hold one entry per observed combination and stay small.
//
// Parameters:
//   - engine: Endian engine for byte order (typically little-endian)
//
// Returns:
//   - *ValueEncoder: A new encoder instance ready for float64 encoding
func NewValueEncoder(engine endian.EndianEngine) *ValueEncoder {
	return &ValueEncoder{
		engine: engine,
		buf:    pool.GetCountsBuffer(),
	}
}

// Write encodes a single 64-bit float value with amortized buffer growth.
//
// For encoding multiple values, use WriteSlice for better performance.
//
// Panics if Finish() has been called (nil buffer).
//
// Parameters:
//   - val: The float64 value to encode (NaN marks a missing entry)
func (e *ValueEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++

	e.buf.Grow(8)
	e.writeFloat64(val)
}

// WriteSlice encodes a slice of 64-bit float values with buffer pre-allocation.
//
// This method pre-allocates buffer space for all values (8 bytes each) to
// minimize allocations during bulk encoding.
//
// Panics if Finish() has been called (nil buffer).
//
// Parameters:
//   - values: Slice of float64 values to encode
func (e *ValueEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	valLen := len(values)
	e.count += valLen

	if valLen == 0 {
		return
	}

	// Extend buffer length once for all values
	e.buf.Grow(valLen * 8)
	startIdx := e.buf.Len()
	e.buf.ExtendOrGrow(valLen * 8)

	for i, v := range values {
		offset := startIdx + i*8
		e.engine.PutUint64(e.buf.Slice(offset, offset+8), math.Float64bits(v))
	}
}

// Bytes returns the encoded byte slice containing all written values.
//
// The returned slice is valid until the next call to Write or WriteSlice.
// The caller must not modify the returned slice as it references the internal buffer.
//
// Each float64 value occupies exactly 8 bytes in the output, encoded in the
// byte order specified by the endian engine during construction.
//
// Panics if Finish() has been called (nil buffer).
//
// Returns:
//   - []byte: Encoded byte slice (empty if no values written)
func (e *ValueEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded float values.
func (e *ValueEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded float values.
//
// Panics if Finish() has been called (nil buffer).
func (e *ValueEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset clears the encoder state, allowing it to be reused for a new sequence of values.
//
// Due to the raw encoding strategy, Reset is implemented as a no-op to retain
// the accumulated data in the internal buffer.
func (e *ValueEncoder) Reset() {
	// No-op to retain the accumulated data in the internal buffer.
}

// Finish finalizes the encoding process and returns buffer resources to the pool.
//
// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
// Write(), WriteSlice(), Bytes(), or Size() will panic due to nil buffer.
func (e *ValueEncoder) Finish() {
	if e.buf != nil {
		pool.PutCountsBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// writeFloat64 encodes a single float64 value into the buffer.
//
// The caller must ensure the buffer has capacity for 8 more bytes.
func (e *ValueEncoder) writeFloat64(value float64) {
	bufLen := e.buf.Len()
	bs := e.buf.Slice(bufLen, bufLen+8)
	e.engine.PutUint64(bs, math.Float64bits(value))
	e.buf.SetLength(bufLen + 8)
}

// ValueDecoder is a decoder for raw float64 entry values.
//
// It is designed to decode byte slices produced by ValueEncoder. The decoder
// is immutable and stateless, making value semantics ideal.
type ValueDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = ValueDecoder{}

// NewValueDecoder creates a new raw value decoder using the specified endian engine.
//
// Parameters:
//   - engine: Endian engine for byte order (must match the encoder's engine)
//
// Returns:
//   - ValueDecoder: A new decoder instance (stateless, can be reused)
func NewValueDecoder(engine endian.EndianEngine) ValueDecoder {
	return ValueDecoder{engine: engine}
}

// All decodes all float64 values from the given byte slice.
//
// It returns a sequence of float64 values decoded from the input byte slice.
// The data must hold at least count*8 bytes; otherwise the iterator yields
// nothing and the caller detects the malformed payload by counting.
//
// Parameters:
//   - data: Encoded byte slice from ValueEncoder.Bytes()
//   - count: Expected number of float64 values to decode
//
// Returns:
//   - iter.Seq[float64]: Iterator yielding decoded float64 values
func (d ValueDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count == 0 || len(data) < count*8 {
			return
		}

		for i := range count {
			start := i * 8
			bits := d.engine.Uint64(data[start : start+8])
			if !yield(math.Float64frombits(bits)) {
				return
			}
		}
	}
}

// At retrieves the float64 value at the specified index from the encoded data.
//
// If the index is out of bounds (negative or >= count), the method returns false.
//
// Parameters:
//   - data: Encoded byte slice from ValueEncoder.Bytes()
//   - index: Zero-based index of the float64 value to retrieve
//   - count: Total number of float64 values in the encoded data
//
// Returns:
//   - float64: The value at the specified index
//   - bool: true if the index exists and was successfully decoded, false otherwise
func (d ValueDecoder) At(data []byte, index int, count int) (float64, bool) {
	if len(data) == 0 || index < 0 || index >= count {
		return 0, false
	}

	start := index * 8
	if start+8 > len(data) {
		return 0, false
	}

	bits := d.engine.Uint64(data[start : start+8])

	return math.Float64frombits(bits), true
}
