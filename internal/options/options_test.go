package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// sortConfig mimics the option targets used by the exported packages.
type sortConfig struct {
	key        string
	descending bool
	limit      int
}

func (c *sortConfig) setLimit(n int) error {
	if n < 0 {
		return errors.New("limit cannot be negative")
	}
	c.limit = n

	return nil
}

func TestOption_New(t *testing.T) {
	t.Run("applies and reports success", func(t *testing.T) {
		cfg := &sortConfig{}
		opt := New(func(c *sortConfig) error {
			return c.setLimit(8)
		})

		err := opt.apply(cfg)
		require.NoError(t, err)
		require.Equal(t, 8, cfg.limit)
	})

	t.Run("propagates errors from the option function", func(t *testing.T) {
		cfg := &sortConfig{}
		opt := New(func(c *sortConfig) error {
			return c.setLimit(-1)
		})

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "limit cannot be negative")
	})
}

func TestOption_NoError(t *testing.T) {
	cfg := &sortConfig{}
	opt := NoError(func(c *sortConfig) {
		c.key = "degree"
		c.descending = true
	})

	err := opt.apply(cfg)
	require.NoError(t, err)
	require.Equal(t, "degree", cfg.key)
	require.True(t, cfg.descending)
}

func TestOption_Apply(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := &sortConfig{}
		err := Apply(cfg,
			New(func(c *sortConfig) error { return c.setLimit(4) }),
			NoError(func(c *sortConfig) { c.key = "cardinality" }),
			NoError(func(c *sortConfig) { c.limit = 16 }),
		)

		require.NoError(t, err)
		require.Equal(t, "cardinality", cfg.key)
		require.Equal(t, 16, cfg.limit, "later options override earlier ones")
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &sortConfig{}
		err := Apply(cfg,
			New(func(c *sortConfig) error { return c.setLimit(4) }),
			New(func(c *sortConfig) error { return c.setLimit(-1) }),
			NoError(func(c *sortConfig) { c.key = "should not be set" }),
		)

		require.Error(t, err)
		require.Equal(t, 4, cfg.limit, "first option applied")
		require.Equal(t, "", cfg.key, "options after the failure are skipped")
	})

	t.Run("accepts empty option slice", func(t *testing.T) {
		cfg := &sortConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, sortConfig{}, *cfg)
	})
}

func TestOption_GenericsAcrossTypes(t *testing.T) {
	var width int
	opt := NoError(func(n *int) {
		*n = 42
	})

	require.NoError(t, opt.apply(&width))
	require.Equal(t, 42, width)
}
