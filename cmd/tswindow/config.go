package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/format"
	"github.com/arloliu/tswindow/payload"
	"github.com/arloliu/tswindow/series"
)

// BufferConfig describes one input file.
type BufferConfig struct {
	Path        string `yaml:"path"`
	Type        string `yaml:"type"`
	ByteOrder   string `yaml:"byte_order"`
	Compression string `yaml:"compression"`
	// Checksum is the xxHash64 of the uncompressed file content, in any
	// strconv base prefix form ("0x..."). Empty disables verification.
	Checksum string `yaml:"checksum,omitempty"`
}

// QueryConfig holds the default window query.
type QueryConfig struct {
	Low           *float64  `yaml:"low,omitempty"`
	High          *float64  `yaml:"high,omitempty"`
	MaxPoints     int       `yaml:"max_points"`
	ClampVariance bool      `yaml:"clamp_variance"`
	Quantiles     []float64 `yaml:"quantiles,omitempty"`
}

// LogConfig selects the CLI log handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the YAML configuration of the tswindow CLI.
type Config struct {
	Time  BufferConfig `yaml:"time"`
	Data  BufferConfig `yaml:"data"`
	Query QueryConfig  `yaml:"query"`
	Log   LogConfig    `yaml:"log"`
}

func defaultConfig() *Config {
	return &Config{
		Time: BufferConfig{
			Type:        "uint32",
			ByteOrder:   "little",
			Compression: "none",
		},
		Data: BufferConfig{
			Type:        "uint32",
			ByteOrder:   "little",
			Compression: "none",
		},
		Query: QueryConfig{
			MaxPoints: series.DefaultMaxPoints,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration from r on top of the defaults.
// A nil reader or empty input yields the defaults.
func Load(r io.Reader) (*Config, error) {
	cfg := defaultConfig()
	if r == nil {
		return cfg, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data: %w", err)
	}
	if len(data) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads a configuration file. Relative buffer paths are resolved
// against the directory of the file.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Load(file)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for _, b := range []*BufferConfig{&cfg.Time, &cfg.Data} {
		if b.Path != "" && !filepath.IsAbs(b.Path) {
			b.Path = filepath.Join(dir, b.Path)
		}
	}

	return cfg, nil
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	var errs []error

	if c.Time.Path == "" {
		errs = append(errs, errors.New("time.path is required"))
	}
	if c.Data.Path == "" {
		errs = append(errs, errors.New("data.path is required"))
	}
	if _, err := c.Time.payload(nil); err != nil {
		errs = append(errs, fmt.Errorf("time: %w", err))
	}
	if _, err := c.Data.payload(nil); err != nil {
		errs = append(errs, fmt.Errorf("data: %w", err))
	}
	if c.Query.MaxPoints <= 0 {
		errs = append(errs, fmt.Errorf("query.max_points must be positive, got %d", c.Query.MaxPoints))
	}
	if c.Query.Low != nil && c.Query.High != nil && *c.Query.Low > *c.Query.High {
		errs = append(errs, fmt.Errorf("query.low %v is after query.high %v", *c.Query.Low, *c.Query.High))
	}
	for _, q := range c.Query.Quantiles {
		if q < 0 || q > 1 {
			errs = append(errs, fmt.Errorf("query.quantiles: %v is outside [0, 1]", q))
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format: %s", c.Log.Format))
	}

	return errors.Join(errs...)
}

// payload pairs data with the decoding metadata of b.
func (b BufferConfig) payload(data []byte) (payload.Payload, error) {
	typ, err := format.ParseScalarType(b.Type)
	if err != nil {
		return payload.Payload{}, err
	}
	engine, err := endian.ParseByteOrder(b.ByteOrder)
	if err != nil {
		return payload.Payload{}, err
	}
	comp, err := format.ParseCompressionType(b.Compression)
	if err != nil {
		return payload.Payload{}, err
	}

	var sum uint64
	if b.Checksum != "" {
		sum, err = strconv.ParseUint(b.Checksum, 0, 64)
		if err != nil {
			return payload.Payload{}, fmt.Errorf("invalid checksum %q: %w", b.Checksum, err)
		}
	}

	return payload.Payload{
		Data:        data,
		Type:        typ,
		Engine:      engine,
		Compression: comp,
		Checksum:    sum,
	}, nil
}

// load reads the file at b.Path into a payload.
func (b BufferConfig) load() (payload.Payload, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		return payload.Payload{}, fmt.Errorf("failed to read %s: %w", b.Path, err)
	}

	return b.payload(data)
}

// seriesOptions maps the query section to series construction options.
func (c *Config) seriesOptions() []series.Option {
	var opts []series.Option
	if c.Query.ClampVariance {
		opts = append(opts, series.WithVarianceClamp())
	}
	if len(c.Query.Quantiles) > 0 {
		opts = append(opts, series.WithQuantiles(c.Query.Quantiles...))
	}

	return opts
}

// queryOptions maps the query section to GetValues options.
func (c *Config) queryOptions() []series.QueryOption {
	opts := []series.QueryOption{series.WithMaxPoints(c.Query.MaxPoints)}
	if c.Query.Low != nil {
		opts = append(opts, series.WithLowTime(*c.Query.Low))
	}
	if c.Query.High != nil {
		opts = append(opts, series.WithHighTime(*c.Query.High))
	}

	return opts
}
