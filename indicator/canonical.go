package indicator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/frame"
)

// AsBoolColumn coerces a column to boolean. Boolean columns pass through;
// integer and float columns pass when every observed value is 0 or 1.
//
// Returns ErrNotBoolean otherwise.
func AsBoolColumn(col frame.Column) (*frame.BoolColumn, error) {
	switch c := col.(type) {
	case *frame.BoolColumn:
		return c, nil
	case *frame.IntColumn:
		values := make([]bool, c.Len())
		for i, v := range c.Values() {
			switch v {
			case 0:
			case 1:
				values[i] = true
			default:
				return nil, fmt.Errorf("%w: column %q holds %d at row %d", errs.ErrNotBoolean, c.Name(), v, i)
			}
		}

		return frame.NewBoolColumn(c.Name(), values), nil
	case *frame.FloatColumn:
		values := make([]bool, c.Len())
		for i, v := range c.Values() {
			switch v {
			case 0:
			case 1:
				values[i] = true
			default:
				return nil, fmt.Errorf("%w: column %q holds %v at row %d", errs.ErrNotBoolean, c.Name(), v, i)
			}
		}

		return frame.NewBoolColumn(c.Name(), values), nil
	default:
		return nil, fmt.Errorf("%w: column %q is %s", errs.ErrNotBoolean, col.Name(), col.Kind())
	}
}

// Canonicalize validates an explicit boolean table and returns it in
// canonical form: every column coerced to boolean and columns sorted
// lexicographically by name. The frame's index, when present, is carried
// over.
//
// Returns ErrNoCategories when the frame has no columns and ErrNotBoolean
// when a column is not boolean-valued.
func Canonicalize(f *frame.Frame) (*frame.Frame, error) {
	if f == nil || f.NumCols() == 0 {
		return nil, fmt.Errorf("%w: indicator frame has no columns", errs.ErrNoCategories)
	}

	cols := make([]frame.Column, f.NumCols())
	for i, col := range f.Columns() {
		bc, err := AsBoolColumn(col)
		if err != nil {
			return nil, err
		}
		cols[i] = bc
	}

	slices.SortStableFunc(cols, func(a, b frame.Column) int {
		return strings.Compare(a.Name(), b.Name())
	})

	canonical, err := frame.New(cols...)
	if err != nil {
		return nil, err
	}
	if f.HasIndex() {
		return canonical.WithIndex(f.Index().Levels()...)
	}

	return canonical, nil
}

// AttachData aligns per-sample data to a contents identifier universe and
// returns the combined frame: an identifier column named idColumn, followed
// by data's columns reordered to the universe, indexed by the indicator
// frame's boolean category levels.
//
// The indicator frame and ids come from FromContents and share row order.
// data must be indexed by a single string level holding the identifiers; its
// rows are aligned to the universe, so data rows not referenced by any
// category are dropped. A nil data yields a frame holding only the
// identifier column.
//
// Returns ErrReservedColumn when idColumn names a category or an existing
// data column, ErrColumnCollision when data column names collide with
// category names, ErrDuplicateIdentifier when data's identifier level
// repeats a value, and ErrIdentifierNotInData when the universe references
// an identifier data does not carry.
func AttachData(indicators *frame.Frame, ids []string, data *frame.Frame, idColumn string) (*frame.Frame, error) {
	if indicators.NumRows() != len(ids) {
		return nil, fmt.Errorf("%w: %d indicator rows, %d identifiers",
			errs.ErrLengthMismatch, indicators.NumRows(), len(ids))
	}
	if indicators.HasColumn(idColumn) {
		return nil, fmt.Errorf("%w: a category cannot be named %q", errs.ErrReservedColumn, idColumn)
	}

	aligned, err := alignToUniverse(indicators.ColumnNames(), ids, data, idColumn)
	if err != nil {
		return nil, err
	}

	cols := make([]frame.Column, 0, 1+aligned.NumCols())
	cols = append(cols, frame.NewStringColumn(idColumn, slices.Clone(ids)))
	cols = append(cols, aligned.Columns()...)

	combined, err := frame.New(cols...)
	if err != nil {
		return nil, err
	}

	return combined.WithIndex(indicators.Columns()...)
}

// alignToUniverse reorders data rows to the identifier universe, validating
// the schema and referential integrity along the way. A nil data yields an
// empty frame.
func alignToUniverse(catNames []string, ids []string, data *frame.Frame, idColumn string) (*frame.Frame, error) {
	if data == nil {
		return frame.New()
	}

	for _, col := range data.Columns() {
		if col.Name() == idColumn {
			return nil, fmt.Errorf("%w: data cannot contain a column named %q",
				errs.ErrReservedColumn, idColumn)
		}
		if slices.Contains(catNames, col.Name()) {
			return nil, fmt.Errorf("%w: data column %q", errs.ErrColumnCollision, col.Name())
		}
	}

	if !data.HasIndex() || data.Index().NumLevels() != 1 {
		return nil, fmt.Errorf("%w: data must be indexed by a single identifier level", errs.ErrNoIndex)
	}
	idLevel, ok := data.Index().Levels()[0].(*frame.StringColumn)
	if !ok {
		return nil, fmt.Errorf("%w: identifier level %q is %s",
			errs.ErrNotString, data.Index().LevelNames()[0], data.Index().Levels()[0].Kind())
	}

	positions := make(map[string]int, idLevel.Len())
	for i, id := range idLevel.Values() {
		if _, ok := positions[id]; ok {
			return nil, fmt.Errorf("%w: %q in data index", errs.ErrDuplicateIdentifier, id)
		}
		positions[id] = i
	}

	var missing []string
	take := make([]int, 0, len(ids))
	for _, id := range ids {
		pos, ok := positions[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		take = append(take, pos)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: found identifiers in contents that are not in data: %q",
			errs.ErrIdentifierNotInData, missing)
	}

	aligned, err := data.Take(take)
	if err != nil {
		return nil, err
	}

	// The identifier level is superseded by the explicit identifier column.
	return frame.New(aligned.Columns()...)
}
