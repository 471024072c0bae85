package upsetdata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/upsetdata/blob"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/format"
)

func TestCategorizedCounts_Encode_RoundTrip(t *testing.T) {
	counts := newCounts(t,
		[]string{"liver", "heart", "lung"},
		[]uint64{0b100, 0b110, 0b011, 0b111},
		[]float64{12, 5, 4, 2},
	)

	snapshot, err := counts.Encode()
	require.NoError(t, err)

	restored, err := DecodeCounts(snapshot)
	require.NoError(t, err)
	require.True(t, counts.Equal(restored))
}

func TestCategorizedCounts_Encode_PreservesSortOrder(t *testing.T) {
	counts := newCounts(t,
		[]string{"liver", "heart", "lung"},
		[]uint64{0b111, 0b100, 0b011, 0b010},
		[]float64{2, 12, 4, 9},
	)
	require.NoError(t, counts.Sort(WithSortBy(SortByCardinality)))

	snapshot, err := counts.Encode()
	require.NoError(t, err)

	restored, err := DecodeCounts(snapshot)
	require.NoError(t, err)
	require.True(t, counts.Equal(restored))
	require.Equal(t, comboValues(t, counts), comboValues(t, restored))
}

func TestCategorizedCounts_Encode_MissingCombinations(t *testing.T) {
	counts := newCounts(t,
		[]string{"liver", "heart"},
		[]uint64{0b10, 0b01, 0b11},
		[]float64{7, math.NaN(), 3},
	)

	snapshot, err := counts.Encode()
	require.NoError(t, err)

	restored, err := DecodeCounts(snapshot)
	require.NoError(t, err)
	require.True(t, counts.Equal(restored))

	require.True(t, restored.At(0).Present)
	require.Equal(t, 7.0, restored.At(0).Value)
	require.False(t, restored.At(1).Present)
	require.Zero(t, restored.At(1).Value)
}

func TestCategorizedCounts_Encode_WireOptions(t *testing.T) {
	counts := newCounts(t,
		[]string{"liver", "heart", "lung"},
		[]uint64{0b100, 0b110},
		[]float64{12, 5},
	)

	snapshot, err := counts.Encode(
		blob.WithBigEndian(),
		blob.WithMaskCompression(format.CompressionZstd),
		blob.WithValueCompression(format.CompressionS2),
	)
	require.NoError(t, err)

	restored, err := DecodeCounts(snapshot)
	require.NoError(t, err)
	require.True(t, counts.Equal(restored))

	_, err = counts.Encode(blob.WithValueCompression(format.CompressionType(0x7)))
	require.Error(t, err)
}

func TestCategorizedData_EncodeAssignment_RoundTrip(t *testing.T) {
	memberships := [][]string{
		{"liver"},
		{"liver", "heart"},
		{},
		{"heart", "lung"},
		{"liver"},
	}

	cd, err := FromMemberships(memberships, nil)
	require.NoError(t, err)

	snapshot, err := cd.EncodeAssignment()
	require.NoError(t, err)

	restored, err := DecodeAssignment(snapshot)
	require.NoError(t, err)
	require.Equal(t, cd.CategoryNames(), restored.CategoryNames())
	require.Equal(t, cd.Masks(), restored.Masks())
	require.Equal(t, cd.NumRows(), restored.NumRows())
	require.Nil(t, restored.Data())

	// The restored assignment still aggregates: four distinct combinations,
	// including the all-outside rows.
	counts, err := restored.Counts()
	require.NoError(t, err)
	require.Equal(t, 4, counts.Len())
}

func TestCategorizedData_EncodeAssignment_WireOptions(t *testing.T) {
	cd, err := FromMemberships([][]string{{"a"}, {"a", "b"}}, nil)
	require.NoError(t, err)

	snapshot, err := cd.EncodeAssignment(
		blob.WithBigEndian(),
		blob.WithMaskCompression(format.CompressionLZ4),
	)
	require.NoError(t, err)

	restored, err := DecodeAssignment(snapshot)
	require.NoError(t, err)
	require.Equal(t, cd.Masks(), restored.Masks())

	_, err = cd.EncodeAssignment(blob.WithValueCompression(format.CompressionZstd))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestDecodeCounts_WrongBlobKind(t *testing.T) {
	cd, err := FromMemberships([][]string{{"a"}, {"b"}}, nil)
	require.NoError(t, err)

	assignment, err := cd.EncodeAssignment()
	require.NoError(t, err)

	_, err = DecodeCounts(assignment)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)

	_, err = DecodeAssignment([]byte("not a snapshot"))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestSetID_MatchesSnapshotHeader(t *testing.T) {
	names := []string{"liver", "heart", "lung"}

	id := SetID(names)
	require.NotZero(t, id)
	require.NotEqual(t, id, SetID([]string{"heart", "liver", "lung"}))

	counts := newCounts(t, names, []uint64{0b100}, []float64{12})

	snapshot, err := counts.Encode()
	require.NoError(t, err)

	payload, err := blob.DecodeCounts(snapshot)
	require.NoError(t, err)
	require.Equal(t, id, payload.SetID)
}
