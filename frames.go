package upsetdata

import (
	"fmt"

	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/frame"
	"github.com/arloliu/upsetdata/indicator"
)

// MembershipFrame indexes a sample frame by the boolean indicators built from
// per-sample category-name collections, one index level per category in
// sorted name order. A nil data yields a single ones column named "value", so
// the result aggregates to plain row counts.
//
// Returns ErrLengthMismatch when data's row count disagrees with the number
// of membership collections, and ErrNoCategories when no category name
// appears at all.
func MembershipFrame(memberships [][]string, data *frame.Frame) (*frame.Frame, error) {
	indicators, err := indicator.FromMemberships(memberships)
	if err != nil {
		return nil, err
	}

	if data == nil {
		ones := make([]float64, len(memberships))
		for i := range ones {
			ones[i] = 1
		}
		data, err = frame.New(frame.NewFloatColumn("value", ones))
		if err != nil {
			return nil, err
		}
	} else if data.NumRows() != len(memberships) {
		return nil, fmt.Errorf("%w: data has %d rows, memberships have %d",
			errs.ErrLengthMismatch, data.NumRows(), len(memberships))
	}

	return data.WithIndex(indicators.Columns()...)
}

// ContentsFrame builds the indicator-indexed frame of a category-to-
// identifiers mapping: an identifier column holding the universe in
// first-occurrence order, then data's columns aligned to it, indexed by the
// boolean category levels. An empty idColumn means "id"; a nil data yields
// the identifier column alone.
//
// Returns the indicator package's contents and alignment errors
// (ErrDuplicateIdentifier, ErrIdentifierNotInData, ErrColumnCollision,
// ErrReservedColumn, ErrNoIndex).
func ContentsFrame(contents indicator.Contents, data *frame.Frame, idColumn string) (*frame.Frame, error) {
	if idColumn == "" {
		idColumn = defaultIDColumn
	}

	indicators, ids, err := indicator.FromContents(contents)
	if err != nil {
		return nil, err
	}

	return indicator.AttachData(indicators, ids, data, idColumn)
}
