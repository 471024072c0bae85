package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/upsetdata/bitmask"
)

func mustMask(t *testing.T, value uint64, width int) bitmask.Mask {
	t.Helper()

	m, err := bitmask.FromUint(value, width)
	require.NoError(t, err)

	return m
}

func TestMaskEncoder_Write(t *testing.T) {
	encoder := NewMaskEncoder(3)
	defer encoder.Finish()

	encoder.Write(mustMask(t, 0b101, 3))
	encoder.Write(mustMask(t, 0b010, 3))

	require.Equal(t, 2, encoder.Len())
	require.Equal(t, 2, encoder.Size()) // width 3 packs into 1 byte per mask
	require.Equal(t, []byte{0x05, 0x02}, encoder.Bytes())
}

func TestMaskEncoder_Write_MultiByte(t *testing.T) {
	encoder := NewMaskEncoder(12)
	defer encoder.Finish()

	encoder.Write(mustMask(t, 0xABC, 12))
	encoder.Write(mustMask(t, 0x001, 12))

	require.Equal(t, 2, encoder.Len())
	require.Equal(t, 4, encoder.Size()) // width 12 packs into 2 bytes per mask

	// Big-endian byte order with padding in the leading bits
	require.Equal(t, []byte{0x0A, 0xBC, 0x00, 0x01}, encoder.Bytes())
}

func TestMaskEncoder_WriteSlice(t *testing.T) {
	masks := []bitmask.Mask{
		mustMask(t, 0b10000, 5),
		mustMask(t, 0b00001, 5),
		mustMask(t, 0b11111, 5),
		mustMask(t, 0b00000, 5),
	}

	encoder := NewMaskEncoder(5)
	defer encoder.Finish()

	encoder.WriteSlice(masks)
	require.Equal(t, 4, encoder.Len())
	require.Equal(t, 4, encoder.Size())
	require.Equal(t, []byte{0x10, 0x01, 0x1F, 0x00}, encoder.Bytes())

	// WriteSlice matches the equivalent sequence of Write calls
	sequential := NewMaskEncoder(5)
	defer sequential.Finish()
	for _, m := range masks {
		sequential.Write(m)
	}
	require.Equal(t, sequential.Bytes(), encoder.Bytes())
}

func TestMaskEncoder_WriteSlice_Empty(t *testing.T) {
	encoder := NewMaskEncoder(4)
	defer encoder.Finish()

	encoder.WriteSlice(nil)
	require.Equal(t, 0, encoder.Len())
	require.Equal(t, 0, encoder.Size())
}

func TestMaskEncoder_WideMasks(t *testing.T) {
	const width = 70 // exceeds the uint64 fast path, 9 bytes per mask

	memberBits := make([]bool, width)
	memberBits[0] = true
	memberBits[width-1] = true
	mask := bitmask.FromBits(memberBits)

	encoder := NewMaskEncoder(width)
	defer encoder.Finish()

	encoder.Write(mask)
	require.Equal(t, 1, encoder.Len())
	require.Equal(t, 9, encoder.Size())

	data := encoder.Bytes()
	require.Equal(t, byte(0x20), data[0]) // category 0 sits after 2 padding bits
	require.Equal(t, byte(0x01), data[8]) // category 69 is the last wire bit

	decoded, ok := NewMaskDecoder(width).At(data, 0, 1)
	require.True(t, ok)
	require.True(t, decoded.Equal(mask))
}

func TestMaskEncoder_Finish(t *testing.T) {
	encoder := NewMaskEncoder(3)
	encoder.Write(mustMask(t, 0b111, 3))

	encoder.Finish()
	require.Equal(t, 0, encoder.Len())

	// Finish is idempotent
	encoder.Finish()
}

func TestMaskDecoder_All(t *testing.T) {
	masks := []bitmask.Mask{
		mustMask(t, 0b000000, 6),
		mustMask(t, 0b000001, 6),
		mustMask(t, 0b100001, 6),
		mustMask(t, 0b111111, 6),
	}

	encoder := NewMaskEncoder(6)
	defer encoder.Finish()
	encoder.WriteSlice(masks)
	data := encoder.Bytes()

	decoder := NewMaskDecoder(6)

	t.Run("round trip", func(t *testing.T) {
		decoded := make([]bitmask.Mask, 0, len(masks))
		for m := range decoder.All(data, len(masks)) {
			decoded = append(decoded, m)
		}

		require.Len(t, decoded, len(masks))
		for i, m := range decoded {
			require.Equal(t, 6, m.Width())
			require.True(t, m.Equal(masks[i]), "mask %d mismatch", i)
		}
	})

	t.Run("early termination", func(t *testing.T) {
		var count int
		for range decoder.All(data, len(masks)) {
			count++
			if count == 2 {
				break
			}
		}
		require.Equal(t, 2, count)
	})

	t.Run("zero count", func(t *testing.T) {
		for range decoder.All(data, 0) {
			t.Fatal("expected no masks")
		}
	})

	t.Run("short data yields nothing", func(t *testing.T) {
		for range decoder.All(data[:len(data)-1], len(masks)) {
			t.Fatal("expected no masks for truncated data")
		}
	})

	t.Run("padding bits stop decoding", func(t *testing.T) {
		corrupted := append([]byte{}, data...)
		corrupted[1] = 0x40 // bit beyond width 6

		var count int
		for range decoder.All(corrupted, len(masks)) {
			count++
		}
		require.Equal(t, 1, count)
	})
}

func TestMaskDecoder_At(t *testing.T) {
	masks := []bitmask.Mask{
		mustMask(t, 0b0011, 4),
		mustMask(t, 0b1100, 4),
		mustMask(t, 0b1001, 4),
	}

	encoder := NewMaskEncoder(4)
	defer encoder.Finish()
	encoder.WriteSlice(masks)
	data := encoder.Bytes()

	decoder := NewMaskDecoder(4)

	for i, want := range masks {
		got, ok := decoder.At(data, i, len(masks))
		require.True(t, ok, "index %d", i)
		require.True(t, got.Equal(want), "index %d", i)
	}

	_, ok := decoder.At(data, -1, len(masks))
	require.False(t, ok)

	_, ok = decoder.At(data, len(masks), len(masks))
	require.False(t, ok)

	// Count claims more entries than the data holds
	_, ok = decoder.At(data, 3, 4)
	require.False(t, ok)

	_, ok = decoder.At(nil, 0, 1)
	require.False(t, ok)

	// Corrupted entry with padding bits set
	corrupted := append([]byte{}, data...)
	corrupted[2] = 0xF0
	_, ok = decoder.At(corrupted, 2, len(masks))
	require.False(t, ok)
}
