// Package bitmask implements the packed category-membership encoding used
// throughout upsetdata.
//
// A Mask encodes one sample's membership across an ordered category set of a
// fixed width (the number of categories). Bit i, counted from the most
// significant end of the width-bit value, encodes membership in category i:
// the first category occupies the highest bit. A mask's numeric value is
// therefore sum(member_i * 2^(width-1-i)) and always falls in
// [0, 2^width - 1].
//
// Masks up to 64 categories wide are held in a machine word; wider masks fall
// back to arbitrary precision. The two representations are observably
// identical, and every operation supports every width.
//
// Masks are immutable values and safe to copy and compare.
package bitmask

import (
	"fmt"
	"math/big"
	"math/bits"
	"slices"
	"strings"

	"github.com/arloliu/upsetdata/errs"
)

// Mask is the packed membership of one sample across width categories.
//
// The zero value is a degenerate width-0 mask; real masks come from the
// package constructors or Pack.
type Mask struct {
	width int
	small uint64   // value when width <= 64
	wide  *big.Int // value when width > 64, nil otherwise
}

// FromUint creates a mask of the given width from an unsigned value.
//
// Returns ErrMaskOutOfRange when value does not fit in width bits, and
// ErrWidthMismatch when width is not positive.
func FromUint(value uint64, width int) (Mask, error) {
	if width < 1 {
		return Mask{}, fmt.Errorf("%w: width %d, want >= 1", errs.ErrWidthMismatch, width)
	}
	if width < 64 && value >= 1<<uint(width) {
		return Mask{}, fmt.Errorf("%w: value %d exceeds %d-bit range", errs.ErrMaskOutOfRange, value, width)
	}
	if width > 64 {
		return Mask{width: width, wide: new(big.Int).SetUint64(value)}, nil
	}

	return Mask{width: width, small: value}, nil
}

// FromBigInt creates a mask of the given width from an arbitrary-precision
// value. The value is copied.
//
// Returns ErrMaskOutOfRange when value is negative or does not fit in width
// bits, and ErrWidthMismatch when width is not positive.
func FromBigInt(value *big.Int, width int) (Mask, error) {
	if width < 1 {
		return Mask{}, fmt.Errorf("%w: width %d, want >= 1", errs.ErrWidthMismatch, width)
	}
	if value.Sign() < 0 || value.BitLen() > width {
		return Mask{}, fmt.Errorf("%w: value %s exceeds %d-bit range", errs.ErrMaskOutOfRange, value, width)
	}
	if width > 64 {
		return Mask{width: width, wide: new(big.Int).Set(value)}, nil
	}

	return Mask{width: width, small: value.Uint64()}, nil
}

// FromBits creates a mask from per-category membership flags. bits[i] is
// category i, so bits[0] lands in the most significant position. The mask's
// width is len(bits).
func FromBits(memberBits []bool) Mask {
	width := len(memberBits)
	if width > 64 {
		buf := make([]byte, (width+7)/8)
		pad := len(buf)*8 - width
		for i, set := range memberBits {
			if set {
				pos := pad + i
				buf[pos/8] |= 1 << uint(7-pos%8)
			}
		}

		return Mask{width: width, wide: new(big.Int).SetBytes(buf)}
	}

	var v uint64
	for _, set := range memberBits {
		v <<= 1
		if set {
			v |= 1
		}
	}

	return Mask{width: width, small: v}
}

// FromBytes creates a mask of the given width from its fixed-width big-endian
// byte form, the inverse of Bytes.
//
// Returns ErrWidthMismatch when the data length is not ceil(width/8) bytes,
// and ErrMaskOutOfRange when padding bits beyond the width are set.
func FromBytes(data []byte, width int) (Mask, error) {
	if width < 1 {
		return Mask{}, fmt.Errorf("%w: width %d, want >= 1", errs.ErrWidthMismatch, width)
	}
	if len(data) != (width+7)/8 {
		return Mask{}, fmt.Errorf("%w: %d bytes for width %d, want %d",
			errs.ErrWidthMismatch, len(data), width, (width+7)/8)
	}

	if width > 64 {
		v := new(big.Int).SetBytes(data)
		if v.BitLen() > width {
			return Mask{}, fmt.Errorf("%w: padding bits set for width %d", errs.ErrMaskOutOfRange, width)
		}

		return Mask{width: width, wide: v}, nil
	}

	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	if width < 64 && v >= 1<<uint(width) {
		return Mask{}, fmt.Errorf("%w: padding bits set for width %d", errs.ErrMaskOutOfRange, width)
	}

	return Mask{width: width, small: v}, nil
}

// Width returns the number of categories the mask spans.
func (m Mask) Width() int {
	return m.width
}

// Bit reports membership in category i. Panics when i is outside [0, width).
func (m Mask) Bit(i int) bool {
	if i < 0 || i >= m.width {
		panic("bitmask: category index out of range")
	}
	if m.width > 64 {
		return m.wide.Bit(m.width-1-i) == 1
	}

	return m.small>>uint(m.width-1-i)&1 == 1
}

// Bits returns the per-category membership flags, the inverse of FromBits.
func (m Mask) Bits() []bool {
	memberBits := make([]bool, m.width)
	for i := range memberBits {
		memberBits[i] = m.Bit(i)
	}

	return memberBits
}

// Degree returns the number of categories the sample belongs to.
func (m Mask) Degree() int {
	if m.width > 64 {
		n := 0
		for _, w := range m.wide.Bits() {
			n += bits.OnesCount(uint(w))
		}

		return n
	}

	return bits.OnesCount64(m.small)
}

// Uint64 returns the mask's numeric value when it fits in a uint64.
func (m Mask) Uint64() (uint64, bool) {
	if m.width > 64 {
		if !m.wide.IsUint64() {
			return 0, false
		}

		return m.wide.Uint64(), true
	}

	return m.small, true
}

// BigInt returns a copy of the mask's numeric value.
func (m Mask) BigInt() *big.Int {
	if m.width > 64 {
		return new(big.Int).Set(m.wide)
	}

	return new(big.Int).SetUint64(m.small)
}

// Bytes returns the mask's fixed-width big-endian byte form, ceil(width/8)
// bytes with zero padding in the leading bits.
func (m Mask) Bytes() []byte {
	return m.AppendBytes(nil)
}

// AppendBytes appends the mask's fixed-width byte form to dst and returns the
// extended slice.
func (m Mask) AppendBytes(dst []byte) []byte {
	nb := (m.width + 7) / 8
	start := len(dst)
	dst = slices.Grow(dst, nb)[:start+nb]

	if m.width > 64 {
		m.wide.FillBytes(dst[start:])
		return dst
	}

	v := m.small
	for i := start + nb - 1; i >= start; i-- {
		dst[i] = byte(v)
		v >>= 8
	}

	return dst
}

// Key returns the byte form as a string, usable as a map key for grouping.
func (m Mask) Key() string {
	return string(m.Bytes())
}

// Cmp compares the numeric values of two masks, returning -1, 0 or 1.
func (m Mask) Cmp(other Mask) int {
	if m.width <= 64 && other.width <= 64 {
		switch {
		case m.small < other.small:
			return -1
		case m.small > other.small:
			return 1
		default:
			return 0
		}
	}

	return m.bigValue().Cmp(other.bigValue())
}

// Equal reports whether both masks have the same width and value.
func (m Mask) Equal(other Mask) bool {
	return m.width == other.width && m.Cmp(other) == 0
}

// String renders the mask as width membership flags in category order,
// '1' for member and '0' for non-member.
func (m Mask) String() string {
	var sb strings.Builder
	sb.Grow(m.width)
	for i := range m.width {
		if m.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// bigValue returns the value as a big.Int without copying when possible.
// Callers must not mutate the result.
func (m Mask) bigValue() *big.Int {
	if m.width > 64 {
		return m.wide
	}

	return new(big.Int).SetUint64(m.small)
}
