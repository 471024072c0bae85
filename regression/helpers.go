package regression

import (
	"errors"
	"slices"

	"github.com/arloliu/upsetdata/bitmask"
	"github.com/arloliu/upsetdata/blob"
)

// measureResult bundles the measured RPB/BPR arrays and the integer chunk sizes.
type measureResult struct {
	RPB       []float64
	BPR       []float64
	ChunkRows []int
}

// chunkAndMeasure encodes the assignment rows at several rows-per-blob chunk
// sizes and records one (RPB, BPR) point per size.
//
// For each chunk size the rows are split into consecutive chunks, every chunk
// is encoded into its own assignment blob, and BPR is the total encoded bytes
// divided by the total row count. Small chunks repeat the fixed header and
// names payload often and give compression little to work with; the fitted
// models capture exactly that amortization curve.
func chunkAndMeasure(names []string, masks []bitmask.Mask, cfg AnalyzeConfig) (measureResult, error) {
	totalRows := len(masks)
	if totalRows == 0 {
		return measureResult{}, errors.New("no assignment rows to measure")
	}

	ladder := cfg.ChunkRows
	if len(ladder) == 0 {
		ladder = chunkLadder(totalRows)
	} else {
		ladder = clampLadder(ladder, totalRows)
	}
	if len(ladder) == 0 {
		return measureResult{}, errors.New("no usable chunk sizes derived")
	}

	enc, err := blob.NewAssignmentEncoder(blob.WithMaskCompression(cfg.MaskCompression))
	if err != nil {
		return measureResult{}, err
	}

	rpbValues := make([]float64, 0, len(ladder))
	bprValues := make([]float64, 0, len(ladder))
	chunkRows := make([]int, 0, len(ladder))

	for _, rows := range ladder {
		totalBytes, encErr := encodeChunks(enc, names, masks, rows)
		if encErr != nil {
			return measureResult{}, encErr
		}

		rpbValues = append(rpbValues, float64(rows))
		bprValues = append(bprValues, float64(totalBytes)/float64(totalRows))
		chunkRows = append(chunkRows, rows)
	}

	return measureResult{RPB: rpbValues, BPR: bprValues, ChunkRows: chunkRows}, nil
}

// encodeChunks splits masks into consecutive chunks of at most rows entries,
// encodes each chunk into its own blob and returns the summed blob sizes.
// The encoder is reusable, so one instance serves every chunk.
func encodeChunks(enc *blob.AssignmentEncoder, names []string, masks []bitmask.Mask, rows int) (int, error) {
	totalBytes := 0
	for start := 0; start < len(masks); start += rows {
		end := min(start+rows, len(masks))
		data, err := enc.Encode(names, masks[start:end])
		if err != nil {
			return 0, err
		}
		totalBytes += len(data)
	}

	return totalBytes, nil
}

// chunkLadder chooses the rows-per-blob values to measure: a standard ladder
// capped at the available row count.
func chunkLadder(maxRows int) []int {
	standard := []int{1, 2, 5, 10, 20, 50, 100, 150, 200, 500, 1000, 2000, 5000}
	var out []int
	for _, r := range standard {
		if r <= maxRows {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		if maxRows > 0 {
			return []int{maxRows}
		}

		return nil
	}

	// Append the full row count when it extends the ladder meaningfully,
	// so the fit sees the single-blob end of the curve.
	last := out[len(out)-1]
	if maxRows > last && float64(maxRows)/float64(last) > 1.2 {
		out = append(out, maxRows)
	}

	return out
}

// clampLadder caps an explicit ladder at the available row count, keeping it
// sorted and deduplicated. A rung larger than the row count would measure the
// same single blob as the row count itself, just mislabeled.
func clampLadder(ladder []int, maxRows int) []int {
	out := make([]int, 0, len(ladder))
	for _, r := range ladder {
		out = append(out, min(r, maxRows))
	}
	slices.Sort(out)

	return slices.Compact(out)
}
