package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/upsetdata/endian"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/format"
)

func TestNewCountsHeader(t *testing.T) {
	header := NewCountsHeader()

	require.NotNil(t, header)
	require.Equal(t, uint64(0), header.SetID)
	require.Equal(t, uint32(0), header.EntryCount)
	require.Equal(t, uint32(0), header.CategoryCount)
	require.Equal(t, uint32(NamesOffset), header.NamesOffset)
	require.True(t, header.Flag.IsValidMagicNumber())
	require.True(t, header.Flag.IsLittleEndian())
	require.Equal(t, format.CompressionNone, header.Flag.MaskCompression())
	require.Equal(t, format.CompressionZstd, header.Flag.ValueCompression())
}

func TestCountsHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := NewCountsHeader()
		original.SetID = 0xDEADBEEFCAFEF00D
		original.EntryCount = 8
		original.CategoryCount = 3
		original.MasksOffset = 100
		original.ValuesOffset = 200

		data := original.Bytes()

		parsed := &CountsHeader{}
		err := parsed.Parse(data)

		require.NoError(t, err)
		require.Equal(t, original.SetID, parsed.SetID)
		require.Equal(t, original.EntryCount, parsed.EntryCount)
		require.Equal(t, original.CategoryCount, parsed.CategoryCount)
		require.Equal(t, original.NamesOffset, parsed.NamesOffset)
		require.Equal(t, original.MasksOffset, parsed.MasksOffset)
		require.Equal(t, original.ValuesOffset, parsed.ValuesOffset)
		require.Equal(t, original.Flag, parsed.Flag)
	})

	t.Run("Big-endian header", func(t *testing.T) {
		original := NewCountsHeader()
		original.Flag.WithBigEndian()
		original.SetID = 42
		original.EntryCount = 7
		original.CategoryCount = 2
		original.MasksOffset = 64
		original.ValuesOffset = 96

		parsed := &CountsHeader{}
		err := parsed.Parse(original.Bytes())

		require.NoError(t, err)
		require.True(t, parsed.Flag.IsBigEndian())
		require.Equal(t, original.SetID, parsed.SetID)
		require.Equal(t, original.EntryCount, parsed.EntryCount)
		require.Equal(t, original.MasksOffset, parsed.MasksOffset)
	})

	t.Run("Invalid size", func(t *testing.T) {
		header := &CountsHeader{}
		err := header.Parse([]byte{1, 2, 3})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Invalid magic number", func(t *testing.T) {
		data := make([]byte, HeaderSize)

		header := &CountsHeader{}
		err := header.Parse(data)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Reserved bits set", func(t *testing.T) {
		original := NewCountsHeader()
		data := original.Bytes()
		data[0] |= 0x04 // one of the reserved option bits

		header := &CountsHeader{}
		err := header.Parse(data)

		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Reserved byte set", func(t *testing.T) {
		original := NewCountsHeader()
		data := original.Bytes()
		data[3] = 0xFF

		header := &CountsHeader{}
		err := header.Parse(data)

		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("Invalid compression", func(t *testing.T) {
		original := NewCountsHeader()
		data := original.Bytes()
		data[2] = 0x0F // invalid mask compression nibble

		header := &CountsHeader{}
		err := header.Parse(data)

		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}

func TestCountsHeader_Bytes(t *testing.T) {
	t.Run("Fixed size", func(t *testing.T) {
		header := NewCountsHeader()
		header.EntryCount = 42
		header.MasksOffset = 1000
		header.ValuesOffset = 2000

		data := header.Bytes()

		require.Len(t, data, HeaderSize)

		parsed := &CountsHeader{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, header.EntryCount, parsed.EntryCount)
		require.Equal(t, header.MasksOffset, parsed.MasksOffset)
	})

	t.Run("Options field stays little-endian under big-endian flag", func(t *testing.T) {
		header := NewCountsHeader()
		header.Flag.WithBigEndian()

		data := header.Bytes()

		options := uint16(data[0]) | (uint16(data[1]) << 8)
		require.Equal(t, header.Flag.Options, options)
	})
}

func TestCountsHeader_Endianness(t *testing.T) {
	t.Run("Little endian", func(t *testing.T) {
		header := NewCountsHeader()
		header.Flag.WithLittleEndian()

		engine := header.Flag.GetEndianEngine()
		require.Equal(t, endian.GetLittleEndianEngine(), engine)
	})

	t.Run("Big endian", func(t *testing.T) {
		header := NewCountsHeader()
		header.Flag.WithBigEndian()

		engine := header.Flag.GetEndianEngine()
		require.Equal(t, endian.GetBigEndianEngine(), engine)
	})
}

func TestCountsFlag_Compression(t *testing.T) {
	flag := NewCountsFlag()

	flag.SetMaskCompression(format.CompressionLZ4)
	flag.SetValueCompression(format.CompressionS2)

	require.Equal(t, format.CompressionLZ4, flag.MaskCompression())
	require.Equal(t, format.CompressionS2, flag.ValueCompression())
	require.True(t, flag.IsValidCompression())
	require.NoError(t, flag.Validate())

	flag.SetMaskCompression(format.CompressionType(0x0F))
	require.False(t, flag.IsValidCompression())
	require.ErrorIs(t, flag.Validate(), errs.ErrInvalidHeaderFlags)
}

func TestParseCountsHeader(t *testing.T) {
	t.Run("Header with trailing payload", func(t *testing.T) {
		original := NewCountsHeader()
		original.EntryCount = 3

		data := append(original.Bytes(), []byte{0xAA, 0xBB, 0xCC}...)

		parsed, err := ParseCountsHeader(data)
		require.NoError(t, err)
		require.Equal(t, uint32(3), parsed.EntryCount)
	})

	t.Run("Too short", func(t *testing.T) {
		_, err := ParseCountsHeader(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})
}
