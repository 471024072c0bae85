package upsetdata

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/arloliu/upsetdata/bitmask"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/internal/options"
)

// SortBy selects the row ordering Sort applies to a CategorizedCounts.
type SortBy uint8

const (
	// SortByDegree orders rows by ascending number of active categories and
	// expands the rows to every possible combination. It is the default.
	SortByDegree SortBy = iota

	// SortByCardinality orders rows by descending aggregated value.
	SortByCardinality
)

// String returns a human-readable representation of the sort key.
func (s SortBy) String() string {
	switch s {
	case SortByDegree:
		return "degree"
	case SortByCardinality:
		return "cardinality"
	default:
		return fmt.Sprintf("SortBy(%d)", uint8(s))
	}
}

// CategoryOrder selects how Sort orders the categories themselves.
type CategoryOrder uint8

const (
	// CategoryOrderUnchanged keeps the current category order. It is the
	// default.
	CategoryOrderUnchanged CategoryOrder = iota

	// CategoryOrderCardinality reorders categories by descending marginal
	// total, keeping the current relative order on ties.
	CategoryOrderCardinality
)

// String returns a human-readable representation of the category order.
func (o CategoryOrder) String() string {
	switch o {
	case CategoryOrderUnchanged:
		return "unchanged"
	case CategoryOrderCardinality:
		return "cardinality"
	default:
		return fmt.Sprintf("CategoryOrder(%d)", uint8(o))
	}
}

// sortConfig holds the resolved Sort configuration.
type sortConfig struct {
	sortBy        SortBy
	categoryOrder CategoryOrder
}

// SortOption represents a functional option for configuring Sort and Sorted.
type SortOption = options.Option[*sortConfig]

// WithSortBy selects the row ordering. The zero value SortByDegree is the
// default.
//
// Returns ErrUnknownSortKey when the value is not a defined SortBy.
func WithSortBy(by SortBy) SortOption {
	return options.New(func(c *sortConfig) error {
		switch by {
		case SortByDegree, SortByCardinality:
			c.sortBy = by
			return nil
		default:
			return fmt.Errorf("%w: %v", errs.ErrUnknownSortKey, by)
		}
	})
}

// WithCategoryOrder selects the category ordering. The zero value
// CategoryOrderUnchanged is the default.
//
// Returns ErrUnknownCategoryOrder when the value is not a defined
// CategoryOrder.
func WithCategoryOrder(order CategoryOrder) SortOption {
	return options.New(func(c *sortConfig) error {
		switch order {
		case CategoryOrderUnchanged, CategoryOrderCardinality:
			c.categoryOrder = order
			return nil
		default:
			return fmt.Errorf("%w: %v", errs.ErrUnknownCategoryOrder, order)
		}
	})
}

// CountEntry is one aggregated row of a CategorizedCounts: a category
// combination, its aggregated value, and whether the combination was observed
// at all. Entries with Present false only arise from degree-sort expansion or
// from decoding a snapshot; they mean "missing", not zero.
type CountEntry struct {
	Combination bitmask.Mask
	Value       float64
	Present     bool
}

// CategoryTotal pairs a category name with its marginal total: the sum of
// values over present combinations that include the category.
type CategoryTotal struct {
	Name  string
	Value float64
}

// CategorizedCounts is the aggregated form of categorized data: one row per
// category combination with a float64 value. Rows are unique by combination.
//
// Sort mutates the receiver in place; every other method is a read or returns
// an independent value. A CategorizedCounts must not be sorted concurrently
// with any other access to the same instance.
type CategorizedCounts struct {
	names   []string
	masks   []bitmask.Mask
	values  []float64
	present []bool
}

// NewCategorizedCounts creates a CategorizedCounts from parallel combination
// and value slices. A NaN value marks its combination missing, matching the
// snapshot wire form; the entry is kept with value zero and Present false.
//
// Parameters:
//   - names: ordered category names, unique, at least one
//   - masks: one combination per row, each of width len(names)
//   - values: aggregated value per row, parallel to masks
//
// Returns ErrNoCategories, ErrDuplicateCategory, ErrLengthMismatch,
// ErrWidthMismatch or ErrDuplicateCombination when the inputs violate the
// contract above.
func NewCategorizedCounts(names []string, masks []bitmask.Mask, values []float64) (*CategorizedCounts, error) {
	if err := validateCategoryNames(names); err != nil {
		return nil, err
	}
	if len(masks) != len(values) {
		return nil, fmt.Errorf("%w: %d combinations, %d values", errs.ErrLengthMismatch, len(masks), len(values))
	}

	width := len(names)
	keys := make(map[string]struct{}, len(masks))
	for i, m := range masks {
		if m.Width() != width {
			return nil, fmt.Errorf("%w: combination %d has width %d, want %d",
				errs.ErrWidthMismatch, i, m.Width(), width)
		}
		key := m.Key()
		if _, ok := keys[key]; ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateCombination, m)
		}
		keys[key] = struct{}{}
	}

	c := &CategorizedCounts{
		names:   slices.Clone(names),
		masks:   slices.Clone(masks),
		values:  make([]float64, len(values)),
		present: make([]bool, len(values)),
	}
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		c.values[i] = v
		c.present[i] = true
	}

	return c, nil
}

// CategoryNames returns the category names in their current order.
func (c *CategorizedCounts) CategoryNames() []string {
	return slices.Clone(c.names)
}

// NumCategories returns the number of categories.
func (c *CategorizedCounts) NumCategories() int {
	return len(c.names)
}

// Len returns the number of combination rows.
func (c *CategorizedCounts) Len() int {
	return len(c.masks)
}

// At returns the combination row at position i. Panics when i is outside
// [0, Len()).
func (c *CategorizedCounts) At(i int) CountEntry {
	return CountEntry{
		Combination: c.masks[i],
		Value:       c.values[i],
		Present:     c.present[i],
	}
}

// Entries returns an iterator over the combination rows in their current
// order. The receiver must not be sorted while iterating.
func (c *CategorizedCounts) Entries() iter.Seq[CountEntry] {
	return func(yield func(CountEntry) bool) {
		for i := range c.masks {
			if !yield(c.At(i)) {
				return
			}
		}
	}
}

// Totals returns the marginal total per category, in category order. A
// category's total is the sum of values over present combinations where the
// category is active; missing rows contribute nothing.
func (c *CategorizedCounts) Totals() []CategoryTotal {
	totals := make([]CategoryTotal, len(c.names))
	for i, name := range c.names {
		totals[i].Name = name
	}
	for i, m := range c.masks {
		if !c.present[i] {
			continue
		}
		for bit := range c.names {
			if m.Bit(bit) {
				totals[bit].Value += c.values[i]
			}
		}
	}

	return totals
}

// Sort orders the rows, and optionally the categories, in place.
//
// With WithCategoryOrder(CategoryOrderCardinality) the categories are first
// reordered by descending marginal total (stable on ties) and every
// combination is remapped to the new bit order; row order is unaffected by
// this step. Rows are then ordered per WithSortBy:
//
//   - SortByCardinality: stable descending by value; missing rows sort after
//     all present rows, both blocks keeping their relative order.
//   - SortByDegree: the rows are replaced by the full listing of all 2^n
//     combinations, in ascending-degree blocks, each block in lexicographic
//     combination order over the current category order. Combinations absent
//     from the receiver appear as missing.
//
// Option validation and all derived orderings happen before any mutation; on
// error the receiver is unchanged.
//
// Returns ErrUnknownSortKey or ErrUnknownCategoryOrder for undefined option
// values, and ErrTooManyCategories when a degree expansion cannot be
// represented.
func (c *CategorizedCounts) Sort(opts ...SortOption) error {
	var cfg sortConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return err
	}

	names := c.names
	masks := c.masks
	if cfg.categoryOrder == CategoryOrderCardinality {
		names, masks = c.reorderByCardinality()
	}

	var (
		sortedMasks   []bitmask.Mask
		sortedValues  []float64
		sortedPresent []bool
		err           error
	)
	switch cfg.sortBy {
	case SortByCardinality:
		sortedMasks, sortedValues, sortedPresent = sortRowsByValue(masks, c.values, c.present)
	case SortByDegree:
		sortedMasks, sortedValues, sortedPresent, err = expandByDegree(len(names), masks, c.values, c.present)
		if err != nil {
			return err
		}
	}

	c.names = names
	c.masks = sortedMasks
	c.values = sortedValues
	c.present = sortedPresent

	return nil
}

// Sorted returns an independently sorted copy, leaving the receiver
// untouched. It accepts the same options as Sort.
func (c *CategorizedCounts) Sorted(opts ...SortOption) (*CategorizedCounts, error) {
	sorted := c.Clone()
	if err := sorted.Sort(opts...); err != nil {
		return nil, err
	}

	return sorted, nil
}

// Clone returns a deep copy of the counts.
func (c *CategorizedCounts) Clone() *CategorizedCounts {
	return &CategorizedCounts{
		names:   slices.Clone(c.names),
		masks:   slices.Clone(c.masks),
		values:  slices.Clone(c.values),
		present: slices.Clone(c.present),
	}
}

// Equal reports whether both counts hold the same categories in the same
// order and the same rows in the same order. Values of missing rows are not
// compared.
func (c *CategorizedCounts) Equal(other *CategorizedCounts) bool {
	if other == nil || !slices.Equal(c.names, other.names) || len(c.masks) != len(other.masks) {
		return false
	}
	for i := range c.masks {
		if !c.masks[i].Equal(other.masks[i]) || c.present[i] != other.present[i] {
			return false
		}
		if c.present[i] && c.values[i] != other.values[i] {
			return false
		}
	}

	return true
}

// reorderByCardinality computes the category order of descending marginal
// total, stable on ties, and remaps every combination to the new bit order.
// Row order is untouched. The receiver is not modified.
func (c *CategorizedCounts) reorderByCardinality() ([]string, []bitmask.Mask) {
	totals := c.Totals()
	order := make([]int, len(c.names))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(totals[b].Value, totals[a].Value)
	})

	names := make([]string, len(order))
	for i, from := range order {
		names[i] = totals[from].Name
	}

	masks := make([]bitmask.Mask, len(c.masks))
	memberBits := make([]bool, len(order))
	for i, m := range c.masks {
		for j, from := range order {
			memberBits[j] = m.Bit(from)
		}
		masks[i] = bitmask.FromBits(memberBits)
	}

	return names, masks
}

// sortRowsByValue computes the row order of descending value with missing
// rows last, stable within both blocks, and returns reordered copies.
func sortRowsByValue(masks []bitmask.Mask, values []float64, present []bool) ([]bitmask.Mask, []float64, []bool) {
	order := make([]int, len(masks))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if present[a] != present[b] {
			if present[a] {
				return -1
			}

			return 1
		}
		if !present[a] {
			return 0
		}

		return cmp.Compare(values[b], values[a])
	})

	outMasks := make([]bitmask.Mask, len(order))
	outValues := make([]float64, len(order))
	outPresent := make([]bool, len(order))
	for i, from := range order {
		outMasks[i] = masks[from]
		outValues[i] = values[from]
		outPresent[i] = present[from]
	}

	return outMasks, outValues, outPresent
}

// expandByDegree produces the full 2^width combination listing: blocks of
// ascending degree, combinations within a block in lexicographic order over
// the current category positions. Combinations absent from the input rows
// come out missing.
func expandByDegree(width int, masks []bitmask.Mask, values []float64, present []bool) ([]bitmask.Mask, []float64, []bool, error) {
	if width > 62 {
		return nil, nil, nil, fmt.Errorf("%w: degree ordering expands %d categories into 2^%d rows",
			errs.ErrTooManyCategories, width, width)
	}

	rowAt := make(map[string]int, len(masks))
	for i, m := range masks {
		rowAt[m.Key()] = i
	}

	total := 1 << width
	outMasks := make([]bitmask.Mask, 0, total)
	outValues := make([]float64, 0, total)
	outPresent := make([]bool, 0, total)

	memberBits := make([]bool, width)
	emit := func(positions []int) {
		clear(memberBits)
		for _, p := range positions {
			memberBits[p] = true
		}
		m := bitmask.FromBits(memberBits)
		outMasks = append(outMasks, m)
		if i, ok := rowAt[m.Key()]; ok {
			outValues = append(outValues, values[i])
			outPresent = append(outPresent, present[i])
		} else {
			outValues = append(outValues, 0)
			outPresent = append(outPresent, false)
		}
	}

	for d := 0; d <= width; d++ {
		combinations(width, d, emit)
	}

	return outMasks, outValues, outPresent, nil
}

// combinations calls emit with every size-d ascending index combination drawn
// from 0..n-1, in lexicographic order.
func combinations(n, d int, emit func([]int)) {
	if d == 0 {
		emit(nil)
		return
	}

	idx := make([]int, d)
	for i := range idx {
		idx[i] = i
	}
	for {
		emit(idx)

		i := d - 1
		for i >= 0 && idx[i] == n-d+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < d; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
