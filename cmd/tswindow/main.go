// Command tswindow generates, inspects and windows packed time-value buffers.
//
//	tswindow gen --out ./demo --samples 100000 --data-type float32 --compression zstd
//	tswindow window --config ./demo/tswindow.yaml --low 1000 --high 5000 --max-points 200
//	tswindow asof --config ./demo/tswindow.yaml --at 4200
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/tswindow/series"
)

type rootFlags struct {
	config    string
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "tswindow",
		Short:        "Decode packed time-value buffers and print zoom-level windows",
		SilenceUsage: true,
	}
	cmd.InitDefaultHelpCmd()

	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "tswindow.yaml", "path to the YAML config")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "override log.format (text, json)")

	cmd.AddCommand(newGenCommand())
	cmd.AddCommand(newWindowCommand(flags))
	cmd.AddCommand(newAsofCommand(flags))

	return cmd
}

// setup loads the config, applies flag overrides, validates it and builds the logger.
func (f *rootFlags) setup(cmd *cobra.Command, override func(*Config)) (*Config, *slog.Logger, error) {
	cfg, err := LoadConfig(f.config)
	if err != nil {
		return nil, nil, err
	}

	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if override != nil {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", f.config, err)
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

// openSeries reads both buffers described by cfg and builds the series.
func openSeries(cfg *Config, logger *slog.Logger) (*series.Series, error) {
	timeP, err := cfg.Time.load()
	if err != nil {
		return nil, err
	}
	dataP, err := cfg.Data.load()
	if err != nil {
		return nil, err
	}

	opts := append(cfg.seriesOptions(), series.WithLogger(logger))
	s, err := series.FromPayloads(timeP, dataP, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("series loaded",
		"time_path", cfg.Time.Path,
		"data_path", cfg.Data.Path,
		"samples", s.Len(),
		"width", s.Width(),
		"id", fmt.Sprintf("0x%016x", s.ID()),
	)

	return s, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
