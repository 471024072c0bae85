package bitmask

import (
	"fmt"

	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/frame"
)

// Pack encodes boolean indicator columns into one mask per row. Column order
// is significant: the first column becomes the most significant bit of every
// mask. Columns must already be in the caller's canonical category order.
//
// Returns ErrNoCategories when no columns are given and ErrLengthMismatch
// when columns disagree on length.
func Pack(cols []*frame.BoolColumn) ([]Mask, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: pack requires at least one indicator column", errs.ErrNoCategories)
	}

	numRows := cols[0].Len()
	for _, col := range cols {
		if col.Len() != numRows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				errs.ErrLengthMismatch, col.Name(), col.Len(), numRows)
		}
	}

	width := len(cols)
	masks := make([]Mask, numRows)

	if width <= 64 {
		packSmall(cols, masks)
	} else {
		packWide(cols, masks)
	}

	return masks, nil
}

// packSmall accumulates each row into a machine word, one column at a time
// from the most significant bit down.
func packSmall(cols []*frame.BoolColumn, masks []Mask) {
	width := len(cols)
	values := make([]uint64, len(masks))
	for _, col := range cols {
		colValues := col.Values()
		for row := range values {
			values[row] <<= 1
			if colValues[row] {
				values[row] |= 1
			}
		}
	}

	for row := range masks {
		masks[row] = Mask{width: width, small: values[row]}
	}
}

// packWide builds each row's fixed-width byte form and promotes it to an
// arbitrary-precision value.
func packWide(cols []*frame.BoolColumn, masks []Mask) {
	width := len(cols)
	rowBits := make([]bool, width)
	for row := range masks {
		for i, col := range cols {
			rowBits[i] = col.Value(row)
		}
		masks[row] = FromBits(rowBits)
	}
}

// Unpack decodes masks back into boolean indicator columns named after the
// given categories, the exact inverse of Pack at every width.
//
// Returns ErrNoCategories when no names are given and ErrWidthMismatch when
// any mask's width differs from the category count.
func Unpack(masks []Mask, names []string) ([]*frame.BoolColumn, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: unpack requires at least one category name", errs.ErrNoCategories)
	}

	width := len(names)
	for row, m := range masks {
		if m.Width() != width {
			return nil, fmt.Errorf("%w: mask at row %d has width %d, want %d",
				errs.ErrWidthMismatch, row, m.Width(), width)
		}
	}

	columns := make([][]bool, width)
	for i := range columns {
		columns[i] = make([]bool, len(masks))
	}
	for row, m := range masks {
		for i := range columns {
			columns[i][row] = m.Bit(i)
		}
	}

	cols := make([]*frame.BoolColumn, width)
	for i, name := range names {
		cols[i] = frame.NewBoolColumn(name, columns[i])
	}

	return cols, nil
}
