package indicator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/upsetdata/errs"
)

func TestFromMemberships(t *testing.T) {
	t.Run("three categories four samples", func(t *testing.T) {
		f, err := FromMemberships([][]string{
			{"cat1", "cat3"},
			{"cat2", "cat3"},
			{"cat1"},
			{},
		})
		require.NoError(t, err)

		require.Equal(t, []string{"cat1", "cat2", "cat3"}, f.ColumnNames())
		require.Equal(t, 4, f.NumRows())

		cat1, err := f.Bools("cat1")
		require.NoError(t, err)
		require.Equal(t, []bool{true, false, true, false}, cat1.Values())

		cat2, err := f.Bools("cat2")
		require.NoError(t, err)
		require.Equal(t, []bool{false, true, false, false}, cat2.Values())

		cat3, err := f.Bools("cat3")
		require.NoError(t, err)
		require.Equal(t, []bool{true, true, false, false}, cat3.Values())
	})

	t.Run("columns sorted regardless of appearance order", func(t *testing.T) {
		f, err := FromMemberships([][]string{
			{"zeta"},
			{"alpha", "zeta"},
			{"mid"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"alpha", "mid", "zeta"}, f.ColumnNames())
	})

	t.Run("repeated name within a sample counts once", func(t *testing.T) {
		f, err := FromMemberships([][]string{{"a", "a"}})
		require.NoError(t, err)

		col, err := f.Bools("a")
		require.NoError(t, err)
		require.Equal(t, []bool{true}, col.Values())
	})

	t.Run("no categories", func(t *testing.T) {
		_, err := FromMemberships([][]string{{}, {}})
		require.ErrorIs(t, err, errs.ErrNoCategories)

		_, err = FromMemberships(nil)
		require.ErrorIs(t, err, errs.ErrNoCategories)
	})
}

func TestFromContents(t *testing.T) {
	t.Run("identifier universe in first occurrence order", func(t *testing.T) {
		f, ids, err := FromContents(Contents{
			"cat1": {"a", "b", "c"},
			"cat2": {"b", "d"},
			"cat3": {"e"},
		})
		require.NoError(t, err)

		require.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
		require.Equal(t, []string{"cat1", "cat2", "cat3"}, f.ColumnNames())
		require.Equal(t, 5, f.NumRows())

		cat1, err := f.Bools("cat1")
		require.NoError(t, err)
		require.Equal(t, []bool{true, true, true, false, false}, cat1.Values())

		cat2, err := f.Bools("cat2")
		require.NoError(t, err)
		require.Equal(t, []bool{false, true, false, true, false}, cat2.Values())

		cat3, err := f.Bools("cat3")
		require.NoError(t, err)
		require.Equal(t, []bool{false, false, false, false, true}, cat3.Values())
	})

	t.Run("categories iterate in sorted order", func(t *testing.T) {
		// "beta" holds x, "alpha" holds y; sorted iteration visits alpha
		// first, so y enters the universe before x.
		_, ids, err := FromContents(Contents{
			"beta":  {"x"},
			"alpha": {"y"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"y", "x"}, ids)
	})

	t.Run("empty category yields all false column", func(t *testing.T) {
		f, ids, err := FromContents(Contents{
			"full":  {"a"},
			"empty": {},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"a"}, ids)

		col, err := f.Bools("empty")
		require.NoError(t, err)
		require.Equal(t, []bool{false}, col.Values())
	})

	t.Run("duplicate identifier within a category", func(t *testing.T) {
		_, _, err := FromContents(Contents{"cat1": {"a", "b", "a"}})
		require.ErrorIs(t, err, errs.ErrDuplicateIdentifier)
	})

	t.Run("no categories", func(t *testing.T) {
		_, _, err := FromContents(Contents{})
		require.ErrorIs(t, err, errs.ErrNoCategories)

		_, _, err = FromContents(nil)
		require.ErrorIs(t, err, errs.ErrNoCategories)
	})
}

func TestSplitMemberships(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		sep   *regexp.Regexp
		want  [][]string
	}{
		{
			name:  "default separator",
			texts: []string{"cat1;cat2", "cat1", ""},
			want:  [][]string{{"cat1", "cat2"}, {"cat1"}, {}},
		},
		{
			name:  "spaces are not separators",
			texts: []string{"alpha beta;gamma"},
			want:  [][]string{{"alpha beta", "gamma"}},
		},
		{
			name:  "mixed punctuation",
			texts: []string{"a,b|c"},
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "consecutive separators discarded",
			texts: []string{";;a;;b;;"},
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "custom separator",
			texts: []string{"a::b::c", "a:b"},
			sep:   regexp.MustCompile(`::`),
			want:  [][]string{{"a", "b", "c"}, {"a:b"}},
		},
		{
			name:  "empty input",
			texts: nil,
			want:  [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitMemberships(tt.texts, tt.sep)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSplitMemberships_FeedsFromMemberships(t *testing.T) {
	memberships := SplitMemberships([]string{"cat1;cat3", "cat2,cat3", "cat1", ""}, nil)

	f, err := FromMemberships(memberships)
	require.NoError(t, err)
	require.Equal(t, []string{"cat1", "cat2", "cat3"}, f.ColumnNames())

	cat3, err := f.Bools("cat3")
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, false, false}, cat3.Values())
}
