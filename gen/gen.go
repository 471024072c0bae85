// Package gen produces deterministic synthetic fixtures for demos, tests and
// benchmarks. Samples builds a boolean-indexed sample frame and Counts the
// aggregated combination counts, both reproducible from a seed.
package gen

import (
	"fmt"
	"math/rand"

	"github.com/arloliu/upsetdata"
	"github.com/arloliu/upsetdata/frame"
	"github.com/arloliu/upsetdata/internal/options"
)

type genConfig struct {
	seed          int64
	sampleCount   int
	categoryCount int
}

// Option configures fixture generation.
type Option = options.Option[*genConfig]

// WithSeed sets the random seed. The same seed always yields the same data.
func WithSeed(seed int64) Option {
	return options.NoError(func(cfg *genConfig) {
		cfg.seed = seed
	})
}

// WithSampleCount sets the number of generated samples (default 10000).
func WithSampleCount(count int) Option {
	return options.New(func(cfg *genConfig) error {
		if count <= 0 {
			return fmt.Errorf("sample count must be positive, got %d", count)
		}
		cfg.sampleCount = count

		return nil
	})
}

// WithCategoryCount sets the number of generated categories (default 3).
func WithCategoryCount(count int) Option {
	return options.New(func(cfg *genConfig) error {
		if count <= 0 {
			return fmt.Errorf("category count must be positive, got %d", count)
		}
		cfg.categoryCount = count

		return nil
	})
}

func newGenConfig(opts ...Option) (*genConfig, error) {
	cfg := &genConfig{
		seed:          0,
		sampleCount:   10000,
		categoryCount: 3,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Samples generates a sample frame indexed by boolean membership levels.
//
// Categories are named cat0..catN-1 and become index levels in creation
// order. Each category draws a membership threshold, then one uniform draw
// per sample: the sample joins the category when its draw exceeds the
// threshold, and the draw is added to the sample's value. The frame carries
// an int64 "index" column holding the original row id and a float64 "value"
// column holding the accumulated draws.
//
// Parameters:
//   - opts: Optional settings (WithSeed, WithSampleCount, WithCategoryCount)
//
// Returns:
//   - *frame.Frame: Generated samples, deterministic for a given seed
//   - error: Option validation failure
//
// Example:
//
//	samples, err := gen.Samples(gen.WithSeed(42), gen.WithSampleCount(1000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(samples.Index().LevelNames()) // [cat0 cat1 cat2]
func Samples(opts ...Option) (*frame.Frame, error) {
	cfg, err := newGenConfig(opts...)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.seed))

	ids := make([]int64, cfg.sampleCount)
	values := make([]float64, cfg.sampleCount)
	for i := range ids {
		ids[i] = int64(i)
	}

	levels := make([]frame.Column, cfg.categoryCount)
	for c := range cfg.categoryCount {
		threshold := rng.Float64()
		members := make([]bool, cfg.sampleCount)
		for i := range members {
			draw := rng.Float64()
			members[i] = draw > threshold
			values[i] += draw
		}
		levels[c] = frame.NewBoolColumn(fmt.Sprintf("cat%d", c), members)
	}

	base, err := frame.New(
		frame.NewIntColumn("index", ids),
		frame.NewFloatColumn("value", values),
	)
	if err != nil {
		return nil, err
	}

	return base.WithIndex(levels...)
}

// Counts generates samples and aggregates them into per-combination row
// counts, grouped in ascending combination order.
//
// Parameters:
//   - opts: Optional settings (WithSeed, WithSampleCount, WithCategoryCount)
//
// Returns:
//   - *upsetdata.CategorizedCounts: Row counts per membership combination
//   - error: Option validation failure
//
// Example:
//
//	counts, err := gen.Counts(gen.WithCategoryCount(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = counts.Sort(upsetdata.WithSortBy(upsetdata.SortByCardinality))
func Counts(opts ...Option) (*upsetdata.CategorizedCounts, error) {
	samples, err := Samples(opts...)
	if err != nil {
		return nil, err
	}

	indicators, err := frame.New(samples.Index().Levels()...)
	if err != nil {
		return nil, err
	}

	data, err := upsetdata.NewCategorizedData(indicators, nil)
	if err != nil {
		return nil, err
	}

	return data.Counts()
}
