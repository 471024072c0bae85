// Package indicator converts raw membership inputs into canonical boolean
// indicator frames.
//
// Three input shapes are supported: per-sample membership lists
// (FromMemberships), category-to-identifiers mappings (FromContents), and
// explicit boolean tables (Canonicalize). All three produce a frame with one
// boolean column per category, columns sorted lexicographically by category
// name, one row per sample, and absent memberships filled false.
//
// Membership positions are collected in Roaring bitmaps before the columns
// are materialized, so sparse inputs with many categories stay compact while
// they are being built.
package indicator

import (
	"fmt"
	"maps"
	"regexp"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/frame"
)

// Contents maps a category name to the identifiers of its member samples.
// Identifiers must be unique within a category.
type Contents map[string][]string

// DefaultSeparator is the membership-string separator used when none is
// given: any run of characters that are neither word characters nor spaces.
var DefaultSeparator = regexp.MustCompile(`[^\w ]`)

// FromMemberships builds a canonical indicator frame from per-sample
// category-name collections. Row order follows the input; a sample with an
// empty collection yields an all-false row.
//
// Returns ErrNoCategories when no category name appears across all
// memberships.
func FromMemberships(memberships [][]string) (*frame.Frame, error) {
	members := make(map[string]*roaring.Bitmap)
	for row, names := range memberships {
		for _, name := range names {
			bm := members[name]
			if bm == nil {
				bm = roaring.New()
				members[name] = bm
			}
			bm.Add(uint32(row)) //nolint: gosec
		}
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("%w: none were found across memberships", errs.ErrNoCategories)
	}

	names := slices.Collect(maps.Keys(members))
	slices.Sort(names)

	cols := make([]frame.Column, len(names))
	for i, name := range names {
		cols[i] = materializeColumn(name, members[name], len(memberships))
	}

	return frame.New(cols...)
}

// FromContents builds a canonical indicator frame from a category-to-
// identifiers mapping. It returns the frame plus the identifier universe:
// every identifier in first-occurrence order, iterating categories in sorted
// name order. The frame's rows follow the universe.
//
// Returns ErrNoCategories when contents is empty and ErrDuplicateIdentifier
// when a category names the same identifier twice.
func FromContents(contents Contents) (*frame.Frame, []string, error) {
	if len(contents) == 0 {
		return nil, nil, fmt.Errorf("%w: contents is empty", errs.ErrNoCategories)
	}

	names := slices.Collect(maps.Keys(contents))
	slices.Sort(names)

	// Intern identifiers into positions in first-occurrence order, and record
	// each category's member positions in a bitmap. A bitmap already holding
	// a position flags a duplicate within that category.
	positions := make(map[string]int)
	ids := make([]string, 0)
	members := make(map[string]*roaring.Bitmap, len(names))

	for _, name := range names {
		bm := roaring.New()
		members[name] = bm
		for _, id := range contents[name] {
			pos, ok := positions[id]
			if !ok {
				pos = len(ids)
				positions[id] = pos
				ids = append(ids, id)
			}

			upos := uint32(pos) //nolint: gosec
			if bm.Contains(upos) {
				return nil, nil, fmt.Errorf("%w: %q in category %q",
					errs.ErrDuplicateIdentifier, id, name)
			}
			bm.Add(upos)
		}
	}

	cols := make([]frame.Column, len(names))
	for i, name := range names {
		cols[i] = materializeColumn(name, members[name], len(ids))
	}

	indicators, err := frame.New(cols...)
	if err != nil {
		return nil, nil, err
	}

	return indicators, ids, nil
}

// SplitMemberships splits delimiter-joined membership strings into membership
// lists. A nil sep uses DefaultSeparator. Empty segments are discarded, so
// consecutive delimiters and empty strings yield empty memberships rather
// than empty category names.
func SplitMemberships(texts []string, sep *regexp.Regexp) [][]string {
	if sep == nil {
		sep = DefaultSeparator
	}

	memberships := make([][]string, len(texts))
	for i, text := range texts {
		parts := sep.Split(text, -1)
		names := make([]string, 0, len(parts))
		for _, part := range parts {
			if part != "" {
				names = append(names, part)
			}
		}
		memberships[i] = names
	}

	return memberships
}

// materializeColumn expands a bitmap of member row positions into a boolean
// column of numRows rows.
func materializeColumn(name string, members *roaring.Bitmap, numRows int) *frame.BoolColumn {
	values := make([]bool, numRows)
	it := members.Iterator()
	for it.HasNext() {
		values[it.Next()] = true
	}

	return frame.NewBoolColumn(name, values)
}
