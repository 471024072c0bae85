package frame

import "math"

// Kind identifies the value type held by a column.
type Kind uint8

const (
	KindBool   Kind = 0x1 // KindBool represents a boolean column.
	KindInt    Kind = 0x2 // KindInt represents an int64 column.
	KindFloat  Kind = 0x3 // KindFloat represents a float64 column.
	KindString Kind = 0x4 // KindString represents a string column.
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Column is the read surface shared by the typed column kinds.
//
// Columns are immutable by convention: operations that change shape return a
// new column, and callers must not modify slices returned by the typed
// Values accessors.
type Column interface {
	// Name returns the column name.
	Name() string
	// Len returns the number of rows.
	Len() int
	// Kind returns the column's value kind.
	Kind() Kind
	// Take returns a new column holding the rows at the given positions, in
	// the given order. Positions must be valid row indexes; Take panics on an
	// out-of-range position, so callers validate bounds first.
	Take(positions []int) Column
	// Rename returns a copy of the column with a new name, sharing storage.
	Rename(name string) Column
	// Clone returns a deep copy of the column.
	Clone() Column
	// Equal reports whether other has the same name, kind, length and values.
	Equal(other Column) bool
}

// BoolColumn holds boolean values.
type BoolColumn struct {
	name   string
	values []bool
}

// NewBoolColumn creates a boolean column. The column takes ownership of
// values; the caller must not modify the slice afterwards.
func NewBoolColumn(name string, values []bool) *BoolColumn {
	return &BoolColumn{name: name, values: values}
}

func (c *BoolColumn) Name() string { return c.name }
func (c *BoolColumn) Len() int     { return len(c.values) }
func (c *BoolColumn) Kind() Kind   { return KindBool }

// Value returns the value at row i.
func (c *BoolColumn) Value(i int) bool { return c.values[i] }

// Values returns the underlying slice. Callers must not modify it.
func (c *BoolColumn) Values() []bool { return c.values }

func (c *BoolColumn) Take(positions []int) Column {
	taken := make([]bool, len(positions))
	for i, pos := range positions {
		taken[i] = c.values[pos]
	}

	return &BoolColumn{name: c.name, values: taken}
}

func (c *BoolColumn) Rename(name string) Column {
	return &BoolColumn{name: name, values: c.values}
}

func (c *BoolColumn) Clone() Column {
	values := make([]bool, len(c.values))
	copy(values, c.values)

	return &BoolColumn{name: c.name, values: values}
}

func (c *BoolColumn) Equal(other Column) bool {
	o, ok := other.(*BoolColumn)
	if !ok || o.name != c.name || len(o.values) != len(c.values) {
		return false
	}
	for i, v := range c.values {
		if o.values[i] != v {
			return false
		}
	}

	return true
}

// IntColumn holds int64 values.
type IntColumn struct {
	name   string
	values []int64
}

// NewIntColumn creates an int64 column. The column takes ownership of values;
// the caller must not modify the slice afterwards.
func NewIntColumn(name string, values []int64) *IntColumn {
	return &IntColumn{name: name, values: values}
}

func (c *IntColumn) Name() string { return c.name }
func (c *IntColumn) Len() int     { return len(c.values) }
func (c *IntColumn) Kind() Kind   { return KindInt }

// Value returns the value at row i.
func (c *IntColumn) Value(i int) int64 { return c.values[i] }

// Values returns the underlying slice. Callers must not modify it.
func (c *IntColumn) Values() []int64 { return c.values }

func (c *IntColumn) Take(positions []int) Column {
	taken := make([]int64, len(positions))
	for i, pos := range positions {
		taken[i] = c.values[pos]
	}

	return &IntColumn{name: c.name, values: taken}
}

func (c *IntColumn) Rename(name string) Column {
	return &IntColumn{name: name, values: c.values}
}

func (c *IntColumn) Clone() Column {
	values := make([]int64, len(c.values))
	copy(values, c.values)

	return &IntColumn{name: c.name, values: values}
}

func (c *IntColumn) Equal(other Column) bool {
	o, ok := other.(*IntColumn)
	if !ok || o.name != c.name || len(o.values) != len(c.values) {
		return false
	}
	for i, v := range c.values {
		if o.values[i] != v {
			return false
		}
	}

	return true
}

// FloatColumn holds float64 values.
type FloatColumn struct {
	name   string
	values []float64
}

// NewFloatColumn creates a float64 column. The column takes ownership of
// values; the caller must not modify the slice afterwards.
func NewFloatColumn(name string, values []float64) *FloatColumn {
	return &FloatColumn{name: name, values: values}
}

func (c *FloatColumn) Name() string { return c.name }
func (c *FloatColumn) Len() int     { return len(c.values) }
func (c *FloatColumn) Kind() Kind   { return KindFloat }

// Value returns the value at row i.
func (c *FloatColumn) Value(i int) float64 { return c.values[i] }

// Values returns the underlying slice. Callers must not modify it.
func (c *FloatColumn) Values() []float64 { return c.values }

func (c *FloatColumn) Take(positions []int) Column {
	taken := make([]float64, len(positions))
	for i, pos := range positions {
		taken[i] = c.values[pos]
	}

	return &FloatColumn{name: c.name, values: taken}
}

func (c *FloatColumn) Rename(name string) Column {
	return &FloatColumn{name: name, values: c.values}
}

func (c *FloatColumn) Clone() Column {
	values := make([]float64, len(c.values))
	copy(values, c.values)

	return &FloatColumn{name: c.name, values: values}
}

// Equal reports whether other holds the same name and values.
// NaN values compare equal so frames holding missing markers can be compared.
func (c *FloatColumn) Equal(other Column) bool {
	o, ok := other.(*FloatColumn)
	if !ok || o.name != c.name || len(o.values) != len(c.values) {
		return false
	}
	for i, v := range c.values {
		if v != o.values[i] && !(math.IsNaN(v) && math.IsNaN(o.values[i])) {
			return false
		}
	}

	return true
}

// StringColumn holds string values.
type StringColumn struct {
	name   string
	values []string
}

// NewStringColumn creates a string column. The column takes ownership of
// values; the caller must not modify the slice afterwards.
func NewStringColumn(name string, values []string) *StringColumn {
	return &StringColumn{name: name, values: values}
}

func (c *StringColumn) Name() string { return c.name }
func (c *StringColumn) Len() int     { return len(c.values) }
func (c *StringColumn) Kind() Kind   { return KindString }

// Value returns the value at row i.
func (c *StringColumn) Value(i int) string { return c.values[i] }

// Values returns the underlying slice. Callers must not modify it.
func (c *StringColumn) Values() []string { return c.values }

func (c *StringColumn) Take(positions []int) Column {
	taken := make([]string, len(positions))
	for i, pos := range positions {
		taken[i] = c.values[pos]
	}

	return &StringColumn{name: c.name, values: taken}
}

func (c *StringColumn) Rename(name string) Column {
	return &StringColumn{name: name, values: c.values}
}

func (c *StringColumn) Clone() Column {
	values := make([]string, len(c.values))
	copy(values, c.values)

	return &StringColumn{name: c.name, values: values}
}

func (c *StringColumn) Equal(other Column) bool {
	o, ok := other.(*StringColumn)
	if !ok || o.name != c.name || len(o.values) != len(c.values) {
		return false
	}
	for i, v := range c.values {
		if o.values[i] != v {
			return false
		}
	}

	return true
}
