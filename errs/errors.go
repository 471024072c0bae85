// Package errs defines the sentinel errors returned by upsetdata packages.
//
// All errors produced by this module either are one of these sentinels or
// wrap one with additional context via fmt.Errorf and the %w verb, so callers
// can match them with errors.Is regardless of the added detail.
package errs

import "errors"

// Input shape errors.
var (
	// ErrNoCategories indicates an operation received zero categories where at
	// least one is required.
	ErrNoCategories = errors.New("no categories")

	// ErrDuplicateCategory indicates the same category name appears more than
	// once in a category set.
	ErrDuplicateCategory = errors.New("duplicate category name")

	// ErrDuplicateIdentifier indicates a category's member list names the same
	// identifier more than once.
	ErrDuplicateIdentifier = errors.New("duplicate identifier in category")

	// ErrLengthMismatch indicates parallel inputs (columns, masks, values,
	// rows) disagree on length.
	ErrLengthMismatch = errors.New("length mismatch")
)

// Schema conflict errors.
var (
	// ErrColumnCollision indicates a data column name collides with a category
	// name.
	ErrColumnCollision = errors.New("column name collides with category name")

	// ErrReservedColumn indicates a reserved column name (such as the
	// identifier column) already exists in the data.
	ErrReservedColumn = errors.New("reserved column name already in data")

	// ErrDuplicateColumn indicates a frame would contain two columns with the
	// same name.
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// Referential errors.
var (
	// ErrIdentifierNotInData indicates a contents identifier has no matching
	// row in the supplied data.
	ErrIdentifierNotInData = errors.New("identifier not present in data")

	// ErrCategoryNotFound indicates a requested category is not part of the
	// category set.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrColumnNotFound indicates a requested column is not part of the frame.
	ErrColumnNotFound = errors.New("column not found")

	// ErrNoData indicates an operation requires sample data but the receiver
	// carries none.
	ErrNoData = errors.New("no sample data attached")

	// ErrNoIndex indicates an operation requires an indexed frame but the
	// frame has no index.
	ErrNoIndex = errors.New("frame has no index")
)

// Validation errors.
var (
	// ErrNotBoolean indicates a column holds values other than booleans
	// (or 0/1 integers where that coercion is allowed).
	ErrNotBoolean = errors.New("column is not boolean")

	// ErrNotNumeric indicates a column is not numeric where a numeric column
	// is required.
	ErrNotNumeric = errors.New("column is not numeric")

	// ErrNotString indicates a column is not a string column where one is
	// required.
	ErrNotString = errors.New("column is not string")

	// ErrRowOutOfRange indicates a row position falls outside a frame's rows.
	ErrRowOutOfRange = errors.New("row position out of range")

	// ErrMaskOutOfRange indicates a bitmask value falls outside
	// [0, 2^width - 1] for the declared category count.
	ErrMaskOutOfRange = errors.New("bitmask value out of range")

	// ErrWidthMismatch indicates a mask's width disagrees with the category
	// count it is used with.
	ErrWidthMismatch = errors.New("mask width mismatch")

	// ErrNotPermutation indicates a category reordering is not a permutation
	// of the existing category names.
	ErrNotPermutation = errors.New("not a permutation of category names")

	// ErrDuplicateCombination indicates the same category combination appears
	// more than once in a counts collection.
	ErrDuplicateCombination = errors.New("duplicate category combination")

	// ErrUnknownSortKey indicates an unrecognized SortBy value.
	ErrUnknownSortKey = errors.New("unknown sort key")

	// ErrUnknownCategoryOrder indicates an unrecognized CategoryOrder value.
	ErrUnknownCategoryOrder = errors.New("unknown category order")

	// ErrTooManyCategories indicates a category count beyond what the
	// operation or the blob format can represent.
	ErrTooManyCategories = errors.New("too many categories")
)

// Snapshot codec errors.
var (
	// ErrInvalidHeaderSize indicates blob data is too short to contain a
	// complete header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidHeaderFlags indicates blob header flags fail validation
	// (bad magic number or unknown compression type).
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidPayload indicates a blob payload is truncated, misaligned or
	// otherwise inconsistent with its header.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrChecksumMismatch indicates blob data fails checksum verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidCompression indicates an unrecognized compression type.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrNoEntries indicates an encoder was asked to produce a blob with no
	// entries.
	ErrNoEntries = errors.New("no entries to encode")
)
