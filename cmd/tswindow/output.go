package main

import (
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/arloliu/tswindow/series"
)

// jsonFloat encodes NaN and infinities as null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}

	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func jsonFloats(values []float64) []jsonFloat {
	out := make([]jsonFloat, len(values))
	for i, v := range values {
		out[i] = jsonFloat(v)
	}

	return out
}

type bucketJSON struct {
	Time      jsonFloat     `json:"time"`
	Mean      []jsonFloat   `json:"mean"`
	Std       []jsonFloat   `json:"std"`
	Min       []jsonFloat   `json:"min"`
	Max       []jsonFloat   `json:"max"`
	Num       int           `json:"num"`
	Quantiles [][]jsonFloat `json:"quantiles,omitempty"`
}

type windowJSON struct {
	ID      string       `json:"id"`
	Start   int          `json:"start"`
	End     int          `json:"end"`
	Buckets []bucketJSON `json:"buckets"`
}

type asofJSON struct {
	Query  jsonFloat   `json:"query"`
	Index  int         `json:"index"`
	Time   jsonFloat   `json:"time"`
	Values []jsonFloat `json:"values"`
}

func toBucketJSON(b series.BucketSummary) bucketJSON {
	out := bucketJSON{
		Time: jsonFloat(b.Time),
		Mean: jsonFloats(b.Mean),
		Std:  jsonFloats(b.Std),
		Min:  jsonFloats(b.Min),
		Max:  jsonFloats(b.Max),
		Num:  b.Num,
	}
	for _, q := range b.Quantiles {
		out.Quantiles = append(out.Quantiles, jsonFloats(q))
	}

	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
