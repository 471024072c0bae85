package upsetdata

import (
	"fmt"
	"math"
	"regexp"
	"slices"

	"github.com/arloliu/upsetdata/bitmask"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/frame"
	"github.com/arloliu/upsetdata/indicator"
	"github.com/arloliu/upsetdata/internal/options"
)

// defaultIDColumn names the identifier column of contents-built data when the
// caller does not choose one.
const defaultIDColumn = "id"

// dataConfig holds the resolved NewCategorizedData configuration.
type dataConfig struct {
	categoryNames []string
}

// DataOption represents a functional option for configuring
// NewCategorizedData.
type DataOption = options.Option[*dataConfig]

// WithCategoryNames renames the indicator columns, in column order. The name
// count must match the column count and the names must be unique; both are
// validated by the constructor.
func WithCategoryNames(names []string) DataOption {
	return options.NoError(func(c *dataConfig) {
		c.categoryNames = names
	})
}

// CategorizedData binds an optional sample frame to its category assignment:
// one mask per row, in data row order, over a fixed ordered category set.
//
// Instances are immutable; ReorderCategories returns a new value. The sample
// frame is shared, not copied, and must not be mutated while the instance is
// in use.
type CategorizedData struct {
	names []string
	masks []bitmask.Mask
	data  *frame.Frame
}

// NewCategorizedData creates a CategorizedData from an explicit indicator
// frame. Column order is preserved and becomes the category order; columns
// must be boolean-valued (bool, or int/float restricted to 0 and 1).
//
// Parameters:
//   - indicators: one column per category, one row per sample
//   - data: optional sample frame, same row order as indicators; nil when the
//     assignment has no sample columns
//   - opts: optional configuration (WithCategoryNames)
//
// Returns ErrNoCategories for an empty indicator frame, ErrNotBoolean for a
// non-indicator column, ErrLengthMismatch when data disagrees on row count or
// WithCategoryNames on name count, and ErrDuplicateCategory for repeated
// names.
func NewCategorizedData(indicators *frame.Frame, data *frame.Frame, opts ...DataOption) (*CategorizedData, error) {
	var cfg dataConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if indicators == nil || indicators.NumCols() == 0 {
		return nil, fmt.Errorf("%w: indicator frame has no columns", errs.ErrNoCategories)
	}

	cols := make([]*frame.BoolColumn, indicators.NumCols())
	for i, col := range indicators.Columns() {
		bc, err := indicator.AsBoolColumn(col)
		if err != nil {
			return nil, err
		}
		cols[i] = bc
	}

	names := indicators.ColumnNames()
	if cfg.categoryNames != nil {
		if len(cfg.categoryNames) != len(cols) {
			return nil, fmt.Errorf("%w: %d category names for %d indicator columns",
				errs.ErrLengthMismatch, len(cfg.categoryNames), len(cols))
		}
		names = slices.Clone(cfg.categoryNames)
	}
	if err := validateCategoryNames(names); err != nil {
		return nil, err
	}

	masks, err := bitmask.Pack(cols)
	if err != nil {
		return nil, err
	}

	return newCategorized(names, masks, data)
}

// NewCategorizedDataFromBitmasks creates a CategorizedData from a pre-packed
// integer assignment column and explicit category names. Every value must lie
// in [0, 2^len(names) - 1].
//
// Returns ErrMaskOutOfRange for a value outside that range, plus the name and
// data validation errors of NewCategorizedData.
func NewCategorizedDataFromBitmasks(col *frame.IntColumn, names []string, data *frame.Frame) (*CategorizedData, error) {
	if col == nil {
		return nil, fmt.Errorf("%w: nil assignment column", errs.ErrNoData)
	}
	if err := validateCategoryNames(names); err != nil {
		return nil, err
	}

	width := len(names)
	masks := make([]bitmask.Mask, col.Len())
	for i, v := range col.Values() {
		if v < 0 {
			return nil, fmt.Errorf("%w: value %d at row %d is negative", errs.ErrMaskOutOfRange, v, i)
		}
		m, err := bitmask.FromUint(uint64(v), width) //nolint: gosec
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		masks[i] = m
	}

	return newCategorized(slices.Clone(names), masks, data)
}

// NewCategorizedDataFromMasks creates a CategorizedData from an explicit mask
// slice. Every mask's width must equal len(names).
//
// Returns ErrWidthMismatch for a mask of the wrong width, plus the name and
// data validation errors of NewCategorizedData.
func NewCategorizedDataFromMasks(masks []bitmask.Mask, names []string, data *frame.Frame) (*CategorizedData, error) {
	if err := validateCategoryNames(names); err != nil {
		return nil, err
	}

	width := len(names)
	for i, m := range masks {
		if m.Width() != width {
			return nil, fmt.Errorf("%w: mask %d has width %d, want %d", errs.ErrWidthMismatch, i, m.Width(), width)
		}
	}

	return newCategorized(slices.Clone(names), slices.Clone(masks), data)
}

// FromIndicatorColumns creates a CategorizedData from indicator columns that
// live inside the sample frame itself. The named columns become the category
// set, in the given order; data keeps all its columns.
//
// Returns ErrNoData when data is nil, ErrNoCategories when no columns are
// named, ErrColumnNotFound for a missing column and ErrNotBoolean for a
// non-indicator column.
func FromIndicatorColumns(data *frame.Frame, columns ...string) (*CategorizedData, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: indicator columns need a sample frame", errs.ErrNoData)
	}
	if err := validateCategoryNames(columns); err != nil {
		return nil, err
	}

	cols := make([]*frame.BoolColumn, len(columns))
	for i, name := range columns {
		col, err := data.Column(name)
		if err != nil {
			return nil, err
		}
		bc, err := indicator.AsBoolColumn(col)
		if err != nil {
			return nil, err
		}
		cols[i] = bc
	}

	masks, err := bitmask.Pack(cols)
	if err != nil {
		return nil, err
	}

	return newCategorized(slices.Clone(columns), masks, data)
}

// FromMemberships creates a CategorizedData from per-sample category-name
// collections. Categories come out sorted by name; rows keep input order.
// data, when non-nil, must have one row per membership collection.
func FromMemberships(memberships [][]string, data *frame.Frame) (*CategorizedData, error) {
	indicators, err := indicator.FromMemberships(memberships)
	if err != nil {
		return nil, err
	}

	return NewCategorizedData(indicators, data)
}

// FromMembershipsText creates a CategorizedData from delimiter-joined
// membership strings, one per sample. A nil sep splits on any run of
// characters that are neither word characters nor spaces.
func FromMembershipsText(texts []string, sep *regexp.Regexp, data *frame.Frame) (*CategorizedData, error) {
	return FromMemberships(indicator.SplitMemberships(texts, sep), data)
}

// FromMembershipsColumn creates a CategorizedData from a membership-string
// column of the sample frame itself, splitting it like FromMembershipsText.
//
// Returns ErrNoData when data is nil, and ErrColumnNotFound or ErrNotString
// when the column is missing or not a string column.
func FromMembershipsColumn(data *frame.Frame, column string, sep *regexp.Regexp) (*CategorizedData, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: membership column needs a sample frame", errs.ErrNoData)
	}
	col, err := data.Strings(column)
	if err != nil {
		return nil, err
	}

	return FromMemberships(indicator.SplitMemberships(col.Values(), sep), data)
}

// FromContents creates a CategorizedData from a category-to-identifiers
// mapping. The sample frame holds an "id" column with the identifier universe
// in first-occurrence order, followed by data's columns aligned to it; a nil
// data yields the identifier column alone. data must be indexed by a single
// string identifier level.
//
// Returns the indicator package's contents and alignment errors
// (ErrDuplicateIdentifier, ErrIdentifierNotInData, ErrColumnCollision,
// ErrReservedColumn, ErrNoIndex).
func FromContents(contents indicator.Contents, data *frame.Frame) (*CategorizedData, error) {
	indicators, ids, err := indicator.FromContents(contents)
	if err != nil {
		return nil, err
	}
	combined, err := indicator.AttachData(indicators, ids, data, defaultIDColumn)
	if err != nil {
		return nil, err
	}

	// The mask column carries the combination; keep the samples unindexed.
	samples, err := frame.New(combined.Columns()...)
	if err != nil {
		return nil, err
	}

	cols, err := boolColumns(indicators)
	if err != nil {
		return nil, err
	}
	masks, err := bitmask.Pack(cols)
	if err != nil {
		return nil, err
	}

	return newCategorized(indicators.ColumnNames(), masks, samples)
}

// CategoryNames returns the category names in bit order.
func (d *CategorizedData) CategoryNames() []string {
	return slices.Clone(d.names)
}

// NumCategories returns the number of categories.
func (d *CategorizedData) NumCategories() int {
	return len(d.names)
}

// NumRows returns the number of sample rows.
func (d *CategorizedData) NumRows() int {
	return len(d.masks)
}

// Masks returns the per-row category assignment, in row order.
func (d *CategorizedData) Masks() []bitmask.Mask {
	return slices.Clone(d.masks)
}

// Data returns the sample frame, or nil when the assignment carries none.
// The frame is shared with the receiver.
func (d *CategorizedData) Data() *frame.Frame {
	return d.data
}

// IndicatorFrame returns the sample frame re-indexed by the unpacked boolean
// combination per row, one index level per category. A nil sample frame
// yields a zero-column frame carrying only the boolean index.
func (d *CategorizedData) IndicatorFrame() (*frame.Frame, error) {
	cols, err := bitmask.Unpack(d.masks, d.names)
	if err != nil {
		return nil, err
	}

	levels := make([]frame.Column, len(cols))
	for i, col := range cols {
		levels[i] = col
	}

	base := d.data
	if base == nil {
		base, err = frame.New()
		if err != nil {
			return nil, err
		}
	}

	return base.WithIndex(levels...)
}

// ReorderCategories returns a new CategorizedData with the categories, and
// every mask's bit order, permuted to newOrder. Row order and the sample
// frame are unchanged.
//
// Returns ErrNotPermutation unless newOrder holds exactly the current
// category names, each once.
func (d *CategorizedData) ReorderCategories(newOrder []string) (*CategorizedData, error) {
	if len(newOrder) != len(d.names) {
		return nil, fmt.Errorf("%w: got %d names, want %d", errs.ErrNotPermutation, len(newOrder), len(d.names))
	}

	position := make(map[string]int, len(d.names))
	for i, name := range d.names {
		position[name] = i
	}
	perm := make([]int, len(newOrder))
	seen := make(map[string]struct{}, len(newOrder))
	for i, name := range newOrder {
		from, ok := position[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", errs.ErrNotPermutation, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: category %q repeats", errs.ErrNotPermutation, name)
		}
		seen[name] = struct{}{}
		perm[i] = from
	}

	masks := make([]bitmask.Mask, len(d.masks))
	memberBits := make([]bool, len(perm))
	for i, m := range d.masks {
		for j, from := range perm {
			memberBits[j] = m.Bit(from)
		}
		masks[i] = bitmask.FromBits(memberBits)
	}

	return &CategorizedData{names: slices.Clone(newOrder), masks: masks, data: d.data}, nil
}

// Counts aggregates the rows into a CategorizedCounts, counting the rows of
// each observed combination. Only observed combinations appear; rows come out
// in ascending combination order.
func (d *CategorizedData) Counts() (*CategorizedCounts, error) {
	return d.aggregate(nil)
}

// WeightedCounts aggregates like Counts but sums the named numeric column
// within each combination instead of counting rows. NaN weights are skipped,
// the way column sums treat missing values.
//
// Returns ErrNoData when the receiver has no sample frame, ErrColumnNotFound
// when the column is missing and ErrNotNumeric when it is not int or float.
func (d *CategorizedData) WeightedCounts(column string) (*CategorizedCounts, error) {
	if d.data == nil {
		return nil, fmt.Errorf("%w: weighted counts need a sample frame", errs.ErrNoData)
	}
	weights, err := numericValues(d.data, column)
	if err != nil {
		return nil, err
	}

	return d.aggregate(weights)
}

// aggregate groups rows by combination. A nil weights slice counts rows;
// otherwise each row contributes its weight.
func (d *CategorizedData) aggregate(weights []float64) (*CategorizedCounts, error) {
	var (
		masks  []bitmask.Mask
		values []float64
	)
	if len(d.names) <= 64 {
		masks, values = d.groupSmall(weights)
	} else {
		masks, values = d.groupWide(weights)
	}

	order := make([]int, len(masks))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return masks[a].Cmp(masks[b]) })

	outMasks := make([]bitmask.Mask, len(order))
	outValues := make([]float64, len(order))
	for i, from := range order {
		outMasks[i] = masks[from]
		outValues[i] = values[from]
	}

	return NewCategorizedCounts(d.names, outMasks, outValues)
}

// groupSmall groups rows of machine-word masks, keyed by numeric value.
func (d *CategorizedData) groupSmall(weights []float64) ([]bitmask.Mask, []float64) {
	slots := make(map[uint64]int, len(d.masks))
	masks := make([]bitmask.Mask, 0)
	values := make([]float64, 0)
	for i, m := range d.masks {
		key, _ := m.Uint64()
		slot, ok := slots[key]
		if !ok {
			slot = len(masks)
			slots[key] = slot
			masks = append(masks, m)
			values = append(values, 0)
		}
		if weights == nil {
			values[slot]++
		} else if !math.IsNaN(weights[i]) {
			values[slot] += weights[i]
		}
	}

	return masks, values
}

// groupWide groups rows of arbitrary-width masks, keyed by byte form.
func (d *CategorizedData) groupWide(weights []float64) ([]bitmask.Mask, []float64) {
	slots := make(map[string]int, len(d.masks))
	masks := make([]bitmask.Mask, 0)
	values := make([]float64, 0)
	for i, m := range d.masks {
		key := m.Key()
		slot, ok := slots[key]
		if !ok {
			slot = len(masks)
			slots[key] = slot
			masks = append(masks, m)
			values = append(values, 0)
		}
		if weights == nil {
			values[slot]++
		} else if !math.IsNaN(weights[i]) {
			values[slot] += weights[i]
		}
	}

	return masks, values
}

// newCategorized finishes construction, checking the sample frame's row count
// against the assignment.
func newCategorized(names []string, masks []bitmask.Mask, data *frame.Frame) (*CategorizedData, error) {
	if data != nil && data.NumRows() != len(masks) {
		return nil, fmt.Errorf("%w: data has %d rows, assignment has %d",
			errs.ErrLengthMismatch, data.NumRows(), len(masks))
	}

	return &CategorizedData{names: names, masks: masks, data: data}, nil
}

// validateCategoryNames checks a category name list is non-empty and free of
// duplicates. Names are opaque case-sensitive strings.
func validateCategoryNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: no category names", errs.ErrNoCategories)
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateCategory, name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// numericValues returns the named column's values as float64s, converting an
// int column element-wise.
func numericValues(f *frame.Frame, column string) ([]float64, error) {
	col, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	switch c := col.(type) {
	case *frame.FloatColumn:
		return c.Values(), nil
	case *frame.IntColumn:
		values := make([]float64, c.Len())
		for i, v := range c.Values() {
			values[i] = float64(v)
		}

		return values, nil
	default:
		return nil, fmt.Errorf("%w: column %q is %s", errs.ErrNotNumeric, column, col.Kind())
	}
}

// boolColumns returns every column of f as a boolean column, in column order.
func boolColumns(f *frame.Frame) ([]*frame.BoolColumn, error) {
	names := f.ColumnNames()
	cols := make([]*frame.BoolColumn, len(names))
	for i, name := range names {
		bc, err := f.Bools(name)
		if err != nil {
			return nil, err
		}
		cols[i] = bc
	}

	return cols, nil
}
