package gen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSamples(t *testing.T) {
	t.Run("deterministic for a seed", func(t *testing.T) {
		first, err := Samples(WithSeed(42), WithSampleCount(200))
		require.NoError(t, err)
		second, err := Samples(WithSeed(42), WithSampleCount(200))
		require.NoError(t, err)

		require.True(t, first.Equal(second))
	})

	t.Run("seeds diverge", func(t *testing.T) {
		first, err := Samples(WithSeed(1), WithSampleCount(200))
		require.NoError(t, err)
		second, err := Samples(WithSeed(2), WithSampleCount(200))
		require.NoError(t, err)

		require.False(t, first.Equal(second))
	})

	t.Run("shape", func(t *testing.T) {
		samples, err := Samples(WithSeed(7), WithSampleCount(100), WithCategoryCount(4))
		require.NoError(t, err)

		require.Equal(t, 100, samples.NumRows())
		require.Equal(t, []string{"index", "value"}, samples.ColumnNames())
		require.Equal(t, []string{"cat0", "cat1", "cat2", "cat3"}, samples.Index().LevelNames())

		ids, err := samples.Ints("index")
		require.NoError(t, err)
		for i, id := range ids.Values() {
			require.Equal(t, int64(i), id)
		}

		// each value accumulates one uniform draw per category
		values, err := samples.Floats("value")
		require.NoError(t, err)
		for _, v := range values.Values() {
			require.GreaterOrEqual(t, v, 0.0)
			require.Less(t, v, 4.0)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		samples, err := Samples()
		require.NoError(t, err)
		require.Equal(t, 10000, samples.NumRows())
		require.Equal(t, []string{"cat0", "cat1", "cat2"}, samples.Index().LevelNames())
	})

	t.Run("rejects non-positive sample count", func(t *testing.T) {
		_, err := Samples(WithSampleCount(0))
		require.Error(t, err)
	})

	t.Run("rejects non-positive category count", func(t *testing.T) {
		_, err := Samples(WithCategoryCount(-1))
		require.Error(t, err)
	})
}

func TestCounts(t *testing.T) {
	t.Run("counts sum to the sample count", func(t *testing.T) {
		counts, err := Counts(WithSeed(3), WithSampleCount(500))
		require.NoError(t, err)

		var total float64
		for entry := range counts.Entries() {
			require.True(t, entry.Present)
			require.Greater(t, entry.Value, 0.0)
			total += entry.Value
		}
		require.Equal(t, 500.0, total)
	})

	t.Run("groups ascend by combination", func(t *testing.T) {
		counts, err := Counts(WithSeed(3), WithSampleCount(500))
		require.NoError(t, err)
		require.Greater(t, counts.Len(), 1)

		for i := 1; i < counts.Len(); i++ {
			prev := counts.At(i - 1).Combination
			curr := counts.At(i).Combination
			require.Positive(t, curr.Cmp(prev))
		}
	})

	t.Run("deterministic for a seed", func(t *testing.T) {
		first, err := Counts(WithSeed(11), WithSampleCount(300), WithCategoryCount(5))
		require.NoError(t, err)
		second, err := Counts(WithSeed(11), WithSampleCount(300), WithCategoryCount(5))
		require.NoError(t, err)

		require.True(t, first.Equal(second))
	})
}
