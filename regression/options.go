package regression

import (
	"errors"
	"fmt"
	"slices"

	"github.com/arloliu/upsetdata/format"
	"github.com/arloliu/upsetdata/internal/options"
)

// AnalyzeConfig holds configuration for the measurement encoding parameters.
type AnalyzeConfig struct {
	// MaskCompression is the compression applied to the masks payload of the
	// measured snapshots.
	MaskCompression format.CompressionType
	// ChunkRows overrides the automatic chunk size ladder when non-empty.
	ChunkRows []int
}

// defaultAnalyzeConfig returns the default config (uncompressed masks,
// automatic chunk size ladder).
func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		MaskCompression: format.CompressionNone,
	}
}

// newAnalyzeConfig builds an AnalyzeConfig from defaults plus options.
func newAnalyzeConfig(opts ...AnalyzeOption) (AnalyzeConfig, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return AnalyzeConfig{}, err
	}

	return cfg, nil
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithMaskCompression sets the mask compression used while measuring.
// Match it to the compression your stored snapshots use so the fitted
// formula predicts real sizes.
func WithMaskCompression(compression format.CompressionType) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.MaskCompression = compression
	})
}

// WithChunkRows replaces the automatic chunk size ladder with an explicit
// list of rows-per-blob values. The list is sorted and deduplicated; every
// value must be positive.
func WithChunkRows(rows []int) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if len(rows) == 0 {
			return errors.New("chunk rows must not be empty")
		}
		ladder := make([]int, 0, len(rows))
		for _, r := range rows {
			if r <= 0 {
				return fmt.Errorf("chunk rows must be positive, got %d", r)
			}
			ladder = append(ladder, r)
		}
		slices.Sort(ladder)
		cfg.ChunkRows = slices.Compact(ladder)

		return nil
	})
}
