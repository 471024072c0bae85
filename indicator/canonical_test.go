package indicator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/frame"
)

func TestAsBoolColumn(t *testing.T) {
	t.Run("bool passes through", func(t *testing.T) {
		col := frame.NewBoolColumn("flag", []bool{true, false})
		got, err := AsBoolColumn(col)
		require.NoError(t, err)
		require.Same(t, col, got)
	})

	t.Run("zero one ints coerce", func(t *testing.T) {
		got, err := AsBoolColumn(frame.NewIntColumn("flag", []int64{1, 0, 1}))
		require.NoError(t, err)
		require.Equal(t, "flag", got.Name())
		require.Equal(t, []bool{true, false, true}, got.Values())
	})

	t.Run("zero one floats coerce", func(t *testing.T) {
		got, err := AsBoolColumn(frame.NewFloatColumn("flag", []float64{0, 1, 0}))
		require.NoError(t, err)
		require.Equal(t, []bool{false, true, false}, got.Values())
	})

	t.Run("other int values rejected", func(t *testing.T) {
		_, err := AsBoolColumn(frame.NewIntColumn("flag", []int64{0, 2}))
		require.ErrorIs(t, err, errs.ErrNotBoolean)
	})

	t.Run("other float values rejected", func(t *testing.T) {
		_, err := AsBoolColumn(frame.NewFloatColumn("flag", []float64{0.5}))
		require.ErrorIs(t, err, errs.ErrNotBoolean)
	})

	t.Run("string column rejected", func(t *testing.T) {
		_, err := AsBoolColumn(frame.NewStringColumn("flag", []string{"true"}))
		require.ErrorIs(t, err, errs.ErrNotBoolean)
	})
}

func TestCanonicalize(t *testing.T) {
	t.Run("coerces and sorts columns", func(t *testing.T) {
		f, err := frame.New(
			frame.NewIntColumn("zeta", []int64{1, 0}),
			frame.NewBoolColumn("alpha", []bool{false, true}),
			frame.NewFloatColumn("mid", []float64{1, 1}),
		)
		require.NoError(t, err)

		got, err := Canonicalize(f)
		require.NoError(t, err)
		require.Equal(t, []string{"alpha", "mid", "zeta"}, got.ColumnNames())

		for _, name := range got.ColumnNames() {
			_, err := got.Bools(name)
			require.NoError(t, err)
		}

		zeta, err := got.Bools("zeta")
		require.NoError(t, err)
		require.Equal(t, []bool{true, false}, zeta.Values())
	})

	t.Run("carries index", func(t *testing.T) {
		f, err := frame.New(frame.NewBoolColumn("cat", []bool{true, false}))
		require.NoError(t, err)
		f, err = f.WithIndex(frame.NewStringColumn("id", []string{"a", "b"}))
		require.NoError(t, err)

		got, err := Canonicalize(f)
		require.NoError(t, err)
		require.True(t, got.HasIndex())
		require.Equal(t, []string{"id"}, got.Index().LevelNames())
	})

	t.Run("non boolean column rejected", func(t *testing.T) {
		f, err := frame.New(frame.NewIntColumn("cat", []int64{3}))
		require.NoError(t, err)

		_, err = Canonicalize(f)
		require.ErrorIs(t, err, errs.ErrNotBoolean)
	})

	t.Run("no columns", func(t *testing.T) {
		f, err := frame.New()
		require.NoError(t, err)

		_, err = Canonicalize(f)
		require.ErrorIs(t, err, errs.ErrNoCategories)

		_, err = Canonicalize(nil)
		require.ErrorIs(t, err, errs.ErrNoCategories)
	})
}

// contentsFixture builds the indicator frame and universe for a small
// three-category contents map whose universe is a through e.
func contentsFixture(t *testing.T) (*frame.Frame, []string) {
	t.Helper()

	indicators, ids, err := FromContents(Contents{
		"cat1": {"a", "b", "c"},
		"cat2": {"b", "d"},
		"cat3": {"e"},
	})
	require.NoError(t, err)

	return indicators, ids
}

// dataFixture builds a single-column data frame indexed by the given
// identifiers.
func dataFixture(t *testing.T, ids []string, values []float64) *frame.Frame {
	t.Helper()

	data, err := frame.New(frame.NewFloatColumn("value", values))
	require.NoError(t, err)
	data, err = data.WithIndex(frame.NewStringColumn("id", ids))
	require.NoError(t, err)

	return data
}

func TestAttachData(t *testing.T) {
	t.Run("aligns data rows to universe order", func(t *testing.T) {
		indicators, ids := contentsFixture(t)
		data := dataFixture(t, []string{"e", "d", "c", "b", "a"}, []float64{5, 4, 3, 2, 1})

		combined, err := AttachData(indicators, ids, data, "id")
		require.NoError(t, err)

		require.Equal(t, []string{"id", "value"}, combined.ColumnNames())

		idCol, err := combined.Strings("id")
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c", "d", "e"}, idCol.Values())

		value, err := combined.Floats("value")
		require.NoError(t, err)
		require.Equal(t, []float64{1, 2, 3, 4, 5}, value.Values())

		require.True(t, combined.HasIndex())
		require.Equal(t, []string{"cat1", "cat2", "cat3"}, combined.Index().LevelNames())

		cat2, err := combined.Index().Level("cat2")
		require.NoError(t, err)
		require.Equal(t, []bool{false, true, false, true, false}, cat2.(*frame.BoolColumn).Values())
	})

	t.Run("drops data rows the contents never reference", func(t *testing.T) {
		indicators, ids := contentsFixture(t)
		data := dataFixture(t, []string{"a", "b", "c", "d", "e", "zz"}, []float64{1, 2, 3, 4, 5, 99})

		combined, err := AttachData(indicators, ids, data, "id")
		require.NoError(t, err)
		require.Equal(t, 5, combined.NumRows())

		value, err := combined.Floats("value")
		require.NoError(t, err)
		require.NotContains(t, value.Values(), 99.0)
	})

	t.Run("nil data keeps only the identifier column", func(t *testing.T) {
		indicators, ids := contentsFixture(t)

		combined, err := AttachData(indicators, ids, nil, "id")
		require.NoError(t, err)
		require.Equal(t, []string{"id"}, combined.ColumnNames())
		require.Equal(t, 5, combined.NumRows())
		require.Equal(t, []string{"cat1", "cat2", "cat3"}, combined.Index().LevelNames())
	})

	t.Run("identifier missing from data", func(t *testing.T) {
		indicators, ids := contentsFixture(t)
		data := dataFixture(t, []string{"a", "b", "c", "d"}, []float64{1, 2, 3, 4})

		_, err := AttachData(indicators, ids, data, "id")
		require.ErrorIs(t, err, errs.ErrIdentifierNotInData)
		require.ErrorContains(t, err, `"e"`)
	})

	t.Run("duplicate identifier in data", func(t *testing.T) {
		indicators, ids := contentsFixture(t)
		data := dataFixture(t, []string{"a", "b", "c", "d", "d"}, []float64{1, 2, 3, 4, 5})

		_, err := AttachData(indicators, ids, data, "id")
		require.ErrorIs(t, err, errs.ErrDuplicateIdentifier)
	})

	t.Run("identifier column name clashes with category", func(t *testing.T) {
		indicators, ids := contentsFixture(t)

		_, err := AttachData(indicators, ids, nil, "cat1")
		require.ErrorIs(t, err, errs.ErrReservedColumn)
	})

	t.Run("data already holds identifier column", func(t *testing.T) {
		indicators, ids := contentsFixture(t)

		data, err := frame.New(frame.NewStringColumn("id", []string{"a", "b", "c", "d", "e"}))
		require.NoError(t, err)
		data, err = data.WithIndex(frame.NewStringColumn("ix", []string{"a", "b", "c", "d", "e"}))
		require.NoError(t, err)

		_, err = AttachData(indicators, ids, data, "id")
		require.ErrorIs(t, err, errs.ErrReservedColumn)
	})

	t.Run("data column name clashes with category", func(t *testing.T) {
		indicators, ids := contentsFixture(t)

		data, err := frame.New(frame.NewFloatColumn("cat2", []float64{1, 2, 3, 4, 5}))
		require.NoError(t, err)
		data, err = data.WithIndex(frame.NewStringColumn("id", []string{"a", "b", "c", "d", "e"}))
		require.NoError(t, err)

		_, err = AttachData(indicators, ids, data, "id")
		require.ErrorIs(t, err, errs.ErrColumnCollision)
	})

	t.Run("data without identifier index", func(t *testing.T) {
		indicators, ids := contentsFixture(t)

		data, err := frame.New(frame.NewFloatColumn("value", []float64{1, 2, 3, 4, 5}))
		require.NoError(t, err)

		_, err = AttachData(indicators, ids, data, "id")
		require.ErrorIs(t, err, errs.ErrNoIndex)
	})

	t.Run("data index level is not string typed", func(t *testing.T) {
		indicators, ids := contentsFixture(t)

		data, err := frame.New(frame.NewFloatColumn("value", []float64{1, 2, 3, 4, 5}))
		require.NoError(t, err)
		data, err = data.WithIndex(frame.NewIntColumn("id", []int64{0, 1, 2, 3, 4}))
		require.NoError(t, err)

		_, err = AttachData(indicators, ids, data, "id")
		require.ErrorIs(t, err, errs.ErrNotString)
	})

	t.Run("identifier count disagrees with indicator rows", func(t *testing.T) {
		indicators, _ := contentsFixture(t)

		_, err := AttachData(indicators, []string{"a"}, nil, "id")
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})
}
