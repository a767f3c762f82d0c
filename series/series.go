// Package series implements an immutable time-indexed sample matrix with point
// lookup and zoom-level window aggregation.
//
// A Series pairs a non-decreasing time index of length T with a row-major data
// matrix of T*W values, W being the width (number of co-sampled columns per
// timestamp). Two queries are supported:
//
//   - Asof returns the row of the most recent sample at or before a time.
//   - GetValues reduces a time window to about maxPoints time-width buckets,
//     each summarized as mean, population std, min, max and sample count.
//
// Series values are never mutated after construction and are safe for
// concurrent readers.
//
// # Example
//
//	s, err := series.New(times, values)
//	if err != nil {
//	    return err
//	}
//	buckets, err := s.GetValues(series.WithRange(0, 3600), series.WithMaxPoints(500))
package series

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"github.com/arloliu/tswindow/errs"
	"github.com/arloliu/tswindow/internal/hash"
	"github.com/arloliu/tswindow/internal/options"
	"github.com/arloliu/tswindow/payload"
)

// Series is an immutable time index plus data matrix.
type Series struct {
	time  []float64
	data  []float64
	width int

	diagnostics   []Diagnostic
	logger        *slog.Logger
	clampVariance bool
	quantiles     []float64

	idOnce sync.Once
	id     uint64
}

// New builds a series from a decoded time index and data matrix.
//
// Both slices are copied. The width is len(data)/len(time) with integer floor;
// a misaligned matrix or a decreasing time index is reported by Diagnostics and
// logged at warn level, not returned as an error.
//
// Parameters:
//   - time: Non-decreasing timestamps
//   - data: Row-major matrix, width values per timestamp
//   - opts: Optional configuration
//
// Returns:
//   - *Series: The new series
//   - error: An option error (e.g. errs.ErrInvalidQuantile)
func New(time, data []float64, opts ...Option) (*Series, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	s := &Series{
		time:          slices.Clone(time),
		data:          slices.Clone(data),
		logger:        cfg.logger,
		clampVariance: cfg.clampVariance,
		quantiles:     slices.Clone(cfg.quantiles),
	}
	if len(time) > 0 {
		s.width = len(data) / len(time)
	}

	if d, ok := checkAlignment(len(time), len(data)); ok {
		s.diagnostics = append(s.diagnostics, d)
	}
	if d, ok := checkOrder(s.time); ok {
		s.diagnostics = append(s.diagnostics, d)
	}
	for _, d := range s.diagnostics {
		s.logger.Warn("series data integrity",
			"kind", d.Kind.String(),
			"detail", d.Message,
			"time_len", len(time),
			"data_len", len(data),
		)
	}

	return s, nil
}

// FromPayloads decodes a time payload and a data payload and builds a series.
func FromPayloads(timePayload, dataPayload payload.Payload, opts ...Option) (*Series, error) {
	time, err := timePayload.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode time payload: %w", err)
	}

	data, err := dataPayload.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode data payload: %w", err)
	}

	return New(time, data, opts...)
}

// Len returns the number of timestamps.
func (s *Series) Len() int {
	return len(s.time)
}

// Width returns the number of columns per timestamp.
func (s *Series) Width() int {
	return s.width
}

// TimeAt returns the i-th timestamp.
func (s *Series) TimeAt(i int) (float64, bool) {
	if i < 0 || i >= len(s.time) {
		return 0, false
	}

	return s.time[i], true
}

// Row returns the i-th row.
func (s *Series) Row(i int) (Row, bool) {
	if i < 0 || i >= len(s.time) {
		return Row{}, false
	}

	return s.row(i), true
}

func (s *Series) row(i int) Row {
	off := i * s.width
	return Row{values: s.data[off : off+s.width : off+s.width]}
}

// All yields every timestamp with its row, in index order.
func (s *Series) All() iter.Seq2[float64, Row] {
	return func(yield func(float64, Row) bool) {
		for i, t := range s.time {
			if !yield(t, s.row(i)) {
				return
			}
		}
	}
}

// Bounds returns the first and last timestamps. ok is false for an empty series.
func (s *Series) Bounds() (first, last float64, ok bool) {
	if len(s.time) == 0 {
		return 0, 0, false
	}

	return s.time[0], s.time[len(s.time)-1], true
}

// Diagnostics returns the data-integrity problems found at construction.
func (s *Series) Diagnostics() []Diagnostic {
	return slices.Clone(s.diagnostics)
}

// ID returns an xxHash64 fingerprint of the time index and data matrix.
//
// Equal inputs give equal IDs, which makes the ID usable as a cache key for
// rendered windows.
func (s *Series) ID() uint64 {
	s.idOnce.Do(func() {
		s.id = hash.Fingerprint(s.time, s.data)
	})

	return s.id
}

// Index returns the position Asof reads for t.
//
// Returns errs.ErrEmptySeries when the series has no samples.
func (s *Series) Index(t float64) (int, error) {
	if len(s.time) == 0 {
		return 0, errs.ErrEmptySeries
	}

	return Search(t, s.time), nil
}

// Asof returns the row of the most recent sample at or before t.
//
// A t before the first timestamp returns the first row.
//
// Returns errs.ErrEmptySeries when the series has no samples.
func (s *Series) Asof(t float64) (Row, error) {
	i, err := s.Index(t)
	if err != nil {
		return Row{}, err
	}

	return s.row(i), nil
}
