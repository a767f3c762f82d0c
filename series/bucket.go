package series

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/tswindow/internal/pool"
	"github.com/caio/go-tdigest/v4"
)

// BucketSummary aggregates the samples of one time-width bucket.
//
// Mean, Std, Min and Max hold one value per column. Quantiles holds one
// W-length slice per requested quantile, in request order, and is nil unless
// the series was built with WithQuantiles.
type BucketSummary struct {
	Time      float64     `json:"time"`
	Mean      []float64   `json:"mean"`
	Std       []float64   `json:"std"`
	Min       []float64   `json:"min"`
	Max       []float64   `json:"max"`
	Num       int         `json:"num"`
	Quantiles [][]float64 `json:"quantiles,omitempty"`
}

// accumulator is the running state of the open bucket.
type accumulator struct {
	width     int
	clamp     bool
	quantiles []float64

	num     int
	timeSum float64
	sum     []float64
	sumSq   []float64
	min     []float64
	max     []float64
	digests []*tdigest.TDigest

	release []func()
}

func newAccumulator(width int, clamp bool, quantiles []float64) *accumulator {
	sum, releaseSum := pool.GetFloat64Slice(width)
	sumSq, releaseSumSq := pool.GetFloat64Slice(width)

	return &accumulator{
		width:     width,
		clamp:     clamp,
		quantiles: quantiles,
		sum:       sum,
		sumSq:     sumSq,
		release:   []func(){releaseSum, releaseSumSq},
	}
}

// close returns the scratch slices to the pool.
func (a *accumulator) close() {
	for _, fn := range a.release {
		fn()
	}
	a.release = nil
}

func (a *accumulator) add(t float64, row []float64) error {
	if a.num == 0 {
		// fresh slices so the series data is never written
		a.min = slices.Clone(row)
		a.max = slices.Clone(row)
		if len(a.quantiles) > 0 {
			if err := a.newDigests(); err != nil {
				return err
			}
		}
	} else {
		for j, v := range row {
			a.min[j] = math.Min(a.min[j], v)
			a.max[j] = math.Max(a.max[j], v)
		}
	}

	a.num++
	a.timeSum += t
	for j, v := range row {
		a.sum[j] += v
		a.sumSq[j] += v * v
	}

	for j, td := range a.digests {
		v := row[j]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if err := td.AddWeighted(v, 1); err != nil {
			return fmt.Errorf("add to t-digest: %w", err)
		}
	}

	return nil
}

func (a *accumulator) newDigests() error {
	a.digests = make([]*tdigest.TDigest, a.width)
	for j := range a.digests {
		td, err := tdigest.New()
		if err != nil {
			return fmt.Errorf("tdigest.New failed: %w", err)
		}
		a.digests[j] = td
	}

	return nil
}

// flush closes the open bucket and resets the accumulator.
func (a *accumulator) flush() BucketSummary {
	n := float64(a.num)
	out := BucketSummary{
		Time: a.timeSum / n,
		Mean: make([]float64, a.width),
		Std:  make([]float64, a.width),
		Min:  a.min,
		Max:  a.max,
		Num:  a.num,
	}

	for j := range a.width {
		mean := a.sum[j] / n
		// explicit conversion keeps mean*mean from fusing into an FMA
		variance := a.sumSq[j]/n - float64(mean*mean)
		if a.clamp && variance < 0 {
			variance = 0
		}
		out.Mean[j] = mean
		out.Std[j] = math.Sqrt(variance)
	}

	if len(a.quantiles) > 0 {
		out.Quantiles = make([][]float64, len(a.quantiles))
		for k, q := range a.quantiles {
			vals := make([]float64, a.width)
			for j, td := range a.digests {
				if td.Count() == 0 {
					vals[j] = math.NaN()
					continue
				}
				vals[j] = td.Quantile(q)
			}
			out.Quantiles[k] = vals
		}
	}

	a.num = 0
	a.timeSum = 0
	clear(a.sum)
	clear(a.sumSq)
	a.min, a.max, a.digests = nil, nil, nil

	return out
}
