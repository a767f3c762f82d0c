package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWindowCommand(root *rootFlags) *cobra.Command {
	var (
		low, high     float64
		maxPoints     int
		clampVariance bool
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the bucket summaries of a time window as JSON",
		Long: `
Reduce the window [low, high] of the configured series to about max-points
time-width buckets. Flags override the query section of the config; NaN and
infinite statistics are printed as null.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.setup(cmd, func(c *Config) {
				if cmd.Flags().Changed("low") {
					c.Query.Low = &low
				}
				if cmd.Flags().Changed("high") {
					c.Query.High = &high
				}
				if cmd.Flags().Changed("max-points") {
					c.Query.MaxPoints = maxPoints
				}
				if cmd.Flags().Changed("clamp-variance") {
					c.Query.ClampVariance = clampVariance
				}
			})
			if err != nil {
				return err
			}

			s, err := openSeries(cfg, logger)
			if err != nil {
				return err
			}

			buckets, err := s.GetValues(cfg.queryOptions()...)
			if err != nil {
				return err
			}

			out := windowJSON{
				ID:      fmt.Sprintf("0x%016x", s.ID()),
				Buckets: make([]bucketJSON, 0, len(buckets)),
			}
			if first, last, ok := s.Bounds(); ok {
				lo, hi := first, last
				if cfg.Query.Low != nil {
					lo = *cfg.Query.Low
				}
				if cfg.Query.High != nil {
					hi = *cfg.Query.High
				}
				if out.Start, out.End, err = s.ResolveWindow(lo, hi); err != nil {
					return err
				}
			}
			for _, b := range buckets {
				out.Buckets = append(out.Buckets, toBucketJSON(b))
			}

			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().Float64Var(&low, "low", 0, "low bound of the window (default: first timestamp)")
	cmd.Flags().Float64Var(&high, "high", 0, "high bound of the window (default: last timestamp)")
	cmd.Flags().IntVarP(&maxPoints, "max-points", "n", 0, "target number of buckets")
	cmd.Flags().BoolVar(&clampVariance, "clamp-variance", false, "clamp negative bucket variance to zero")

	return cmd
}

func newAsofCommand(root *rootFlags) *cobra.Command {
	var at float64

	cmd := &cobra.Command{
		Use:   "asof",
		Short: "Print the row of the last sample at or before a time as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.setup(cmd, nil)
			if err != nil {
				return err
			}

			s, err := openSeries(cfg, logger)
			if err != nil {
				return err
			}

			idx, err := s.Index(at)
			if err != nil {
				return err
			}
			ts, _ := s.TimeAt(idx)
			row, _ := s.Row(idx)

			return writeJSON(cmd.OutOrStdout(), asofJSON{
				Query:  jsonFloat(at),
				Index:  idx,
				Time:   jsonFloat(ts),
				Values: jsonFloats(row.Values()),
			})
		},
	}

	cmd.Flags().Float64VarP(&at, "at", "t", 0, "query time")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}
