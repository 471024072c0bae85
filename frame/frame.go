// Package frame implements the minimal columnar table the upsetdata pipeline
// is built on: ordered, uniquely named, equal-length typed columns plus an
// optional multi-level row index.
//
// Frames are immutable by convention. Shape-changing operations return a new
// frame; column storage is shared between the input and the result unless an
// operation documents otherwise. Clone produces a fully independent copy.
//
// The package deliberately implements only the operations the membership
// pipeline needs: column selection, row filtering and taking, column
// appending, and index attachment and reset. It is not a general dataframe
// engine.
package frame

import (
	"fmt"

	"github.com/arloliu/upsetdata/errs"
)

// Frame is an ordered collection of named, equal-length columns with an
// optional row index.
type Frame struct {
	cols   []Column
	byName map[string]int
	index  *Index
}

// New creates a frame from the given columns.
//
// Returns an error when column names repeat or columns disagree on length.
// A frame with no columns is valid and has zero rows until an index is
// attached.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{
		cols:   make([]Column, 0, len(cols)),
		byName: make(map[string]int, len(cols)),
	}

	for _, col := range cols {
		if _, ok := f.byName[col.Name()]; ok {
			return nil, fmt.Errorf("%w: column %q", errs.ErrDuplicateColumn, col.Name())
		}
		if len(f.cols) > 0 && col.Len() != f.cols[0].Len() {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				errs.ErrLengthMismatch, col.Name(), col.Len(), f.cols[0].Len())
		}

		f.byName[col.Name()] = len(f.cols)
		f.cols = append(f.cols, col)
	}

	return f, nil
}

// NumRows returns the number of rows. A frame with no columns takes its row
// count from its index, or zero when it has neither.
func (f *Frame) NumRows() int {
	if len(f.cols) > 0 {
		return f.cols[0].Len()
	}
	if f.index != nil {
		return f.index.NumRows()
	}

	return 0
}

// NumCols returns the number of columns, excluding index levels.
func (f *Frame) NumCols() int {
	return len(f.cols)
}

// Columns returns the columns in order. The returned slice is a copy; the
// columns are shared.
func (f *Frame) Columns() []Column {
	cols := make([]Column, len(f.cols))
	copy(cols, f.cols)

	return cols
}

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, col := range f.cols {
		names[i] = col.Name()
	}

	return names
}

// HasColumn reports whether a column with the given name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (Column, error) {
	idx, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: column %q", errs.ErrColumnNotFound, name)
	}

	return f.cols[idx], nil
}

// Bools returns the named column as a boolean column.
func (f *Frame) Bools(name string) (*BoolColumn, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	bc, ok := col.(*BoolColumn)
	if !ok {
		return nil, fmt.Errorf("%w: column %q is %s, want Bool", errs.ErrNotBoolean, name, col.Kind())
	}

	return bc, nil
}

// Ints returns the named column as an int64 column.
func (f *Frame) Ints(name string) (*IntColumn, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	ic, ok := col.(*IntColumn)
	if !ok {
		return nil, fmt.Errorf("%w: column %q is %s, want Int", errs.ErrNotNumeric, name, col.Kind())
	}

	return ic, nil
}

// Floats returns the named column as a float64 column.
func (f *Frame) Floats(name string) (*FloatColumn, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	fc, ok := col.(*FloatColumn)
	if !ok {
		return nil, fmt.Errorf("%w: column %q is %s, want Float", errs.ErrNotNumeric, name, col.Kind())
	}

	return fc, nil
}

// Strings returns the named column as a string column.
func (f *Frame) Strings(name string) (*StringColumn, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	sc, ok := col.(*StringColumn)
	if !ok {
		return nil, fmt.Errorf("%w: column %q is %s, want String", errs.ErrNotString, name, col.Kind())
	}

	return sc, nil
}

// Select returns a new frame holding the named columns in the given order.
// The index, when present, is carried over.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	selected, err := New(cols...)
	if err != nil {
		return nil, err
	}
	selected.index = f.index

	return selected, nil
}

// WithColumn returns a new frame with col appended after the existing
// columns.
//
// Returns an error when the name already exists or the length disagrees with
// the frame's row count.
func (f *Frame) WithColumn(col Column) (*Frame, error) {
	if f.HasColumn(col.Name()) {
		return nil, fmt.Errorf("%w: column %q", errs.ErrDuplicateColumn, col.Name())
	}
	if len(f.cols) > 0 || f.index != nil {
		if col.Len() != f.NumRows() {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				errs.ErrLengthMismatch, col.Name(), col.Len(), f.NumRows())
		}
	}

	cols := make([]Column, 0, len(f.cols)+1)
	cols = append(cols, f.cols...)
	cols = append(cols, col)

	appended, err := New(cols...)
	if err != nil {
		return nil, err
	}
	appended.index = f.index

	return appended, nil
}

// Filter returns a new frame holding the rows where keep is true, preserving
// row order. The index, when present, is filtered alongside the columns.
func (f *Frame) Filter(keep []bool) (*Frame, error) {
	if len(keep) != f.NumRows() {
		return nil, fmt.Errorf("%w: filter mask has %d rows, want %d",
			errs.ErrLengthMismatch, len(keep), f.NumRows())
	}

	positions := make([]int, 0, len(keep))
	for i, k := range keep {
		if k {
			positions = append(positions, i)
		}
	}

	return f.takeUnchecked(positions), nil
}

// Take returns a new frame holding the rows at the given positions, in the
// given order. The index, when present, is taken alongside the columns.
func (f *Frame) Take(positions []int) (*Frame, error) {
	numRows := f.NumRows()
	for _, pos := range positions {
		if pos < 0 || pos >= numRows {
			return nil, fmt.Errorf("%w: position %d of %d rows",
				errs.ErrRowOutOfRange, pos, numRows)
		}
	}

	return f.takeUnchecked(positions), nil
}

func (f *Frame) takeUnchecked(positions []int) *Frame {
	cols := make([]Column, len(f.cols))
	for i, col := range f.cols {
		cols[i] = col.Take(positions)
	}

	taken := &Frame{
		cols:   cols,
		byName: make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		taken.byName[col.Name()] = i
	}
	if f.index != nil {
		taken.index = f.index.Take(positions)
	}

	return taken
}

// HasIndex reports whether the frame has an index.
func (f *Frame) HasIndex() bool {
	return f.index != nil
}

// Index returns the frame's index, or nil when it has none.
func (f *Frame) Index() *Index {
	return f.index
}

// WithIndex returns a new frame with the given levels as its index, replacing
// any existing index.
//
// Returns an error when the levels are invalid or their row count disagrees
// with the frame's columns.
func (f *Frame) WithIndex(levels ...Column) (*Frame, error) {
	index, err := NewIndex(levels...)
	if err != nil {
		return nil, err
	}
	if len(f.cols) > 0 && index.NumRows() != f.cols[0].Len() {
		return nil, fmt.Errorf("%w: index has %d rows, frame has %d",
			errs.ErrLengthMismatch, index.NumRows(), f.cols[0].Len())
	}

	indexed := &Frame{cols: f.cols, byName: f.byName, index: index}

	return indexed, nil
}

// ResetIndex returns a new frame with the index levels inserted as leading
// columns, in level order, and no index. A frame without an index is returned
// unchanged.
//
// Returns an error when a level name collides with an existing column.
func (f *Frame) ResetIndex() (*Frame, error) {
	if f.index == nil {
		return f, nil
	}

	levels := f.index.Levels()
	cols := make([]Column, 0, len(levels)+len(f.cols))
	cols = append(cols, levels...)
	cols = append(cols, f.cols...)

	return New(cols...)
}

// Clone returns a deep copy of the frame, including its index.
func (f *Frame) Clone() *Frame {
	cols := make([]Column, len(f.cols))
	for i, col := range f.cols {
		cols[i] = col.Clone()
	}

	clone := &Frame{
		cols:   cols,
		byName: make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		clone.byName[col.Name()] = i
	}
	if f.index != nil {
		clone.index = f.index.Clone()
	}

	return clone
}

// Equal reports whether both frames hold the same columns, values and index.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || len(other.cols) != len(f.cols) {
		return false
	}
	for i, col := range f.cols {
		if !col.Equal(other.cols[i]) {
			return false
		}
	}
	if (f.index == nil) != (other.index == nil) {
		return false
	}
	if f.index != nil && !f.index.Equal(other.index) {
		return false
	}

	return true
}
