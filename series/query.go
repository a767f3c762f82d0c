package series

import (
	"fmt"

	"github.com/arloliu/tswindow/errs"
	"github.com/arloliu/tswindow/internal/options"
)

// DefaultMaxPoints is the bucket budget used when WithMaxPoints is not given.
const DefaultMaxPoints = 1000

// boundarySnap is the fraction of an interval kept before the sample that
// opens a new bucket, so sparse regions do not produce runs of empty spans.
const boundarySnap = 0.99

// QueryOptions holds the window of a GetValues call.
type QueryOptions struct {
	low, high       float64
	hasLow, hasHigh bool
	maxPoints       int
}

// QueryOption configures a GetValues call.
type QueryOption = options.Option[*QueryOptions]

// WithLowTime sets the low bound of the window. Defaults to the first timestamp.
func WithLowTime(t float64) QueryOption {
	return options.NoError(func(q *QueryOptions) {
		q.low, q.hasLow = t, true
	})
}

// WithHighTime sets the high bound of the window. Defaults to the last timestamp.
func WithHighTime(t float64) QueryOption {
	return options.NoError(func(q *QueryOptions) {
		q.high, q.hasHigh = t, true
	})
}

// WithRange sets both window bounds.
func WithRange(low, high float64) QueryOption {
	return options.NoError(func(q *QueryOptions) {
		q.low, q.hasLow = low, true
		q.high, q.hasHigh = high, true
	})
}

// WithMaxPoints sets the target number of buckets. Must be positive.
func WithMaxPoints(n int) QueryOption {
	return options.New(func(q *QueryOptions) error {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", errs.ErrInvalidMaxPoints, n)
		}
		q.maxPoints = n

		return nil
	})
}

// ResolveWindow maps a time window to the inclusive index range GetValues walks.
//
// start is Search(low). end is Search(high) plus one when that is not already
// the last index, so the window takes in one sample past the high bound.
//
// Returns errs.ErrEmptySeries for an empty series and errs.ErrInvalidWindow
// when low > high.
func (s *Series) ResolveWindow(low, high float64) (start, end int, err error) {
	if len(s.time) == 0 {
		return 0, 0, errs.ErrEmptySeries
	}
	if low > high {
		return 0, 0, fmt.Errorf("%w: low=%v high=%v", errs.ErrInvalidWindow, low, high)
	}

	start = Search(low, s.time)
	end = Search(high, s.time)
	if end < len(s.time)-1 {
		end++
	}

	return start, end, nil
}

// GetValues reduces a time window to about maxPoints bucket summaries.
//
// Buckets have a nominal time width of (time[end]-time[start])/maxPoints, so a
// dense region yields buckets with many samples and a sparse region yields
// buckets with few. A bucket closes when a sample lands past its start plus
// one interval; that sample opens the next bucket, whose start is snapped
// forward to just before it when the data is sparser than the interval.
//
// Every sample in [start, end] lands in exactly one bucket, buckets are in time
// order, and the last partial bucket is always emitted.
//
// An empty series returns an empty result and no error.
//
// Returns errs.ErrInvalidMaxPoints or errs.ErrInvalidWindow for a bad query.
func (s *Series) GetValues(opts ...QueryOption) ([]BucketSummary, error) {
	q := &QueryOptions{maxPoints: DefaultMaxPoints}
	if err := options.Apply(q, opts...); err != nil {
		return nil, err
	}

	if len(s.time) == 0 {
		return []BucketSummary{}, nil
	}

	if !q.hasLow {
		q.low = s.time[0]
	}
	if !q.hasHigh {
		q.high = s.time[len(s.time)-1]
	}

	start, end, err := s.ResolveWindow(q.low, q.high)
	if err != nil {
		return nil, err
	}

	interval := (s.time[end] - s.time[start]) / float64(q.maxPoints)

	acc := newAccumulator(s.width, s.clampVariance, s.quantiles)
	defer acc.close()

	out := make([]BucketSummary, 0, max(0, min(end-start+1, q.maxPoints+1)))
	bucketStart := s.time[start]

	for i := start; i <= end; i++ {
		t := s.time[i]
		if acc.num > 0 && t > bucketStart+interval {
			out = append(out, acc.flush())
			bucketStart = max(bucketStart+interval, t-interval*boundarySnap)
		}

		off := i * s.width
		if err := acc.add(t, s.data[off:off+s.width]); err != nil {
			return nil, err
		}
	}

	if acc.num > 0 {
		out = append(out, acc.flush())
	}

	s.logger.Debug("window aggregated",
		"low", q.low,
		"high", q.high,
		"start", start,
		"end", end,
		"interval", interval,
		"max_points", q.maxPoints,
		"buckets", len(out),
	)

	return out, nil
}
