package frame

import (
	"fmt"

	"github.com/arloliu/upsetdata/errs"
)

// Index is an ordered set of named label columns (levels) attached to a
// frame's rows. All levels share the frame's row count and row order.
type Index struct {
	levels []Column
}

// NewIndex creates an index from one or more levels.
//
// Returns an error when no levels are given, when level names repeat, or when
// levels disagree on length.
func NewIndex(levels ...Column) (*Index, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: index requires at least one level", errs.ErrNoIndex)
	}

	seen := make(map[string]struct{}, len(levels))
	numRows := levels[0].Len()
	for _, level := range levels {
		if _, ok := seen[level.Name()]; ok {
			return nil, fmt.Errorf("%w: index level %q", errs.ErrDuplicateColumn, level.Name())
		}
		seen[level.Name()] = struct{}{}

		if level.Len() != numRows {
			return nil, fmt.Errorf("%w: index level %q has %d rows, want %d",
				errs.ErrLengthMismatch, level.Name(), level.Len(), numRows)
		}
	}

	return &Index{levels: levels}, nil
}

// NumLevels returns the number of index levels.
func (ix *Index) NumLevels() int {
	return len(ix.levels)
}

// NumRows returns the number of rows the index covers.
func (ix *Index) NumRows() int {
	return ix.levels[0].Len()
}

// Levels returns the index levels in order. The returned slice is a copy; the
// columns are shared.
func (ix *Index) Levels() []Column {
	levels := make([]Column, len(ix.levels))
	copy(levels, ix.levels)

	return levels
}

// LevelNames returns the level names in order.
func (ix *Index) LevelNames() []string {
	names := make([]string, len(ix.levels))
	for i, level := range ix.levels {
		names[i] = level.Name()
	}

	return names
}

// Level returns the level with the given name.
func (ix *Index) Level(name string) (Column, error) {
	for _, level := range ix.levels {
		if level.Name() == name {
			return level, nil
		}
	}

	return nil, fmt.Errorf("%w: index level %q", errs.ErrColumnNotFound, name)
}

// HasLevel reports whether a level with the given name exists.
func (ix *Index) HasLevel(name string) bool {
	for _, level := range ix.levels {
		if level.Name() == name {
			return true
		}
	}

	return false
}

// Take returns a new index holding the rows at the given positions.
// Positions must already be bounds checked by the caller.
func (ix *Index) Take(positions []int) *Index {
	levels := make([]Column, len(ix.levels))
	for i, level := range ix.levels {
		levels[i] = level.Take(positions)
	}

	return &Index{levels: levels}
}

// Clone returns a deep copy of the index.
func (ix *Index) Clone() *Index {
	levels := make([]Column, len(ix.levels))
	for i, level := range ix.levels {
		levels[i] = level.Clone()
	}

	return &Index{levels: levels}
}

// Equal reports whether both indexes hold the same levels in the same order.
func (ix *Index) Equal(other *Index) bool {
	if other == nil || len(other.levels) != len(ix.levels) {
		return false
	}
	for i, level := range ix.levels {
		if !level.Equal(other.levels[i]) {
			return false
		}
	}

	return true
}
