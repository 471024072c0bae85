package upsetdata

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/frame"
	"github.com/arloliu/upsetdata/indicator"
)

// VennData answers intersection queries over a frame whose index levels are
// boolean category indicators. It works directly on the indicator levels,
// independent of the mask encoding, and never mutates the wrapped frame.
//
// Row positions per category are held in Roaring bitmaps, so queries combine
// categories with bitmap intersections rather than row scans.
type VennData struct {
	source  *frame.Frame
	names   []string
	members []*roaring.Bitmap
	byName  map[string]int
	numRows int
}

// NewVennData wraps an indicator-indexed frame. Every index level must be
// boolean-valued (bool, or int/float restricted to 0 and 1).
//
// Returns ErrNoIndex when the frame is nil or unindexed, and ErrNotBoolean
// for a non-indicator level.
func NewVennData(f *frame.Frame) (*VennData, error) {
	if f == nil || !f.HasIndex() {
		return nil, fmt.Errorf("%w: venn data needs an indicator index", errs.ErrNoIndex)
	}

	levels := f.Index().Levels()
	v := &VennData{
		source:  f,
		names:   make([]string, len(levels)),
		members: make([]*roaring.Bitmap, len(levels)),
		byName:  make(map[string]int, len(levels)),
		numRows: f.NumRows(),
	}
	for i, level := range levels {
		bc, err := indicator.AsBoolColumn(level)
		if err != nil {
			return nil, err
		}
		v.names[i] = bc.Name()
		v.byName[bc.Name()] = i

		bm := roaring.New()
		for row, member := range bc.Values() {
			if member {
				bm.Add(uint32(row)) //nolint: gosec
			}
		}
		v.members[i] = bm
	}

	return v, nil
}

// VennFromMemberships builds a VennData from per-sample category-name
// collections, indexing data (or a ones value column when data is nil) by the
// resulting indicators.
func VennFromMemberships(memberships [][]string, data *frame.Frame) (*VennData, error) {
	f, err := MembershipFrame(memberships, data)
	if err != nil {
		return nil, err
	}

	return NewVennData(f)
}

// VennFromContents builds a VennData from a category-to-identifiers mapping,
// indexing the identifier universe (plus data's columns when given) by the
// resulting indicators. An empty idColumn means "id".
func VennFromContents(contents indicator.Contents, data *frame.Frame, idColumn string) (*VennData, error) {
	f, err := ContentsFrame(contents, data, idColumn)
	if err != nil {
		return nil, err
	}

	return NewVennData(f)
}

// CategoryNames returns the category names in index level order.
func (v *VennData) CategoryNames() []string {
	names := make([]string, len(v.names))
	copy(names, v.names)

	return names
}

// NumRows returns the number of sample rows.
func (v *VennData) NumRows() int {
	return v.numRows
}

// Intersection returns the sample rows belonging to every named category.
// With inclusive false the intersection is strict: rows belonging to any
// category outside the set are excluded too. An empty category list selects
// the whole frame (inclusive) or the rows belonging to no category at all
// (strict).
//
// The result carries the index levels as leading columns and keeps the
// original row order.
//
// Returns ErrCategoryNotFound when a named category is not an index level.
func (v *VennData) Intersection(categories []string, inclusive bool) (*frame.Frame, error) {
	rows, err := v.selection(categories, inclusive)
	if err != nil {
		return nil, err
	}

	positions := make([]int, 0, rows.GetCardinality())
	it := rows.Iterator()
	for it.HasNext() {
		positions = append(positions, int(it.Next()))
	}

	matched, err := v.source.Take(positions)
	if err != nil {
		return nil, err
	}

	return matched.ResetIndex()
}

// CountIntersection returns the number of rows Intersection would return,
// without materializing them.
func (v *VennData) CountIntersection(categories []string, inclusive bool) (int, error) {
	rows, err := v.selection(categories, inclusive)
	if err != nil {
		return 0, err
	}

	return int(rows.GetCardinality()), nil
}

// selection computes the bitmap of row positions matching the query.
func (v *VennData) selection(categories []string, inclusive bool) (*roaring.Bitmap, error) {
	inside := make([]bool, len(v.names))
	for _, name := range categories {
		i, ok := v.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrCategoryNotFound, name)
		}
		inside[i] = true
	}

	rows := roaring.New()
	rows.AddRange(0, uint64(v.numRows)) //nolint: gosec
	for i, in := range inside {
		if in {
			rows.And(v.members[i])
		} else if !inclusive {
			rows.AndNot(v.members[i])
		}
	}

	return rows, nil
}
