package series

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/tswindow/errs"
	"github.com/arloliu/tswindow/internal/options"
)

// Config holds series construction settings.
type Config struct {
	logger        *slog.Logger
	clampVariance bool
	quantiles     []float64
}

// Option configures a Series.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for diagnostics and query tracing.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithVarianceClamp clamps negative bucket variance to zero.
//
// Without it, floating-point cancellation can make sumSq/n - mean² slightly
// negative and the bucket std becomes NaN.
func WithVarianceClamp() Option {
	return options.NoError(func(c *Config) {
		c.clampVariance = true
	})
}

// WithQuantiles computes the given quantiles per bucket and column with a t-digest.
//
// Each q must be within [0, 1].
func WithQuantiles(qs ...float64) Option {
	return options.New(func(c *Config) error {
		for _, q := range qs {
			if math.IsNaN(q) || q < 0 || q > 1 {
				return fmt.Errorf("%w: %v", errs.ErrInvalidQuantile, q)
			}
		}
		c.quantiles = append(c.quantiles[:0], qs...)

		return nil
	})
}
