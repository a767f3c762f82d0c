package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/format"
	"github.com/arloliu/tswindow/series"
)

func TestLoad_Defaults(t *testing.T) {
	fromNil, err := Load(nil)
	require.NoError(t, err)
	fromEmpty, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, fromNil, fromEmpty)

	cfg := fromNil
	require.Equal(t, "uint32", cfg.Time.Type)
	require.Equal(t, "little", cfg.Data.ByteOrder)
	require.Equal(t, series.DefaultMaxPoints, cfg.Query.MaxPoints)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Nil(t, cfg.Query.Low)
}

func TestLoad_Overrides(t *testing.T) {
	const doc = `
time:
  path: t.bin
data:
  path: d.bin
  type: double
  byte_order: big
  compression: zstd
  checksum: "0x00000000000000ff"
query:
  low: 100
  high: 2000
  max_points: 50
  clamp_variance: true
  quantiles: [0.5, 0.99]
log:
  level: debug
  format: json
`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "uint32", cfg.Time.Type, "unset fields keep defaults")
	require.Equal(t, "double", cfg.Data.Type)
	require.Equal(t, 100.0, *cfg.Query.Low)
	require.Equal(t, 2000.0, *cfg.Query.High)
	require.Equal(t, 50, cfg.Query.MaxPoints)
	require.True(t, cfg.Query.ClampVariance)
	require.Equal(t, []float64{0.5, 0.99}, cfg.Query.Quantiles)

	p, err := cfg.Data.payload([]byte{1})
	require.NoError(t, err)
	require.Equal(t, format.TypeFloat64, p.Type)
	require.False(t, endian.IsLittleEndian(p.Engine))
	require.Equal(t, format.CompressionZstd, p.Compression)
	require.Equal(t, uint64(0xff), p.Checksum)

	require.Len(t, cfg.seriesOptions(), 2)
	require.Len(t, cfg.queryOptions(), 3)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(strings.NewReader("time: [unclosed"))
	require.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	low, high := 10.0, 5.0

	cfg := defaultConfig()
	cfg.Data.Path = "d.bin"
	cfg.Data.Type = "complex64"
	cfg.Time.ByteOrder = "middle"
	cfg.Time.Compression = "brotli"
	cfg.Data.Checksum = "not-a-number"
	cfg.Query.MaxPoints = 0
	cfg.Query.Low, cfg.Query.High = &low, &high
	cfg.Query.Quantiles = []float64{1.5}
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)

	for _, want := range []string{
		"time.path is required",
		"unsupported scalar type",
		"max_points must be positive",
		"is after query.high",
		"outside [0, 1]",
		"invalid log level",
		"invalid log format",
	} {
		require.Contains(t, err.Error(), want)
	}
}

func TestLoadConfig_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	abs := filepath.Join(dir, "elsewhere", "d.bin")
	require.NoError(t, os.WriteFile(path, []byte("time:\n  path: t.bin\ndata:\n  path: "+abs+"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "t.bin"), cfg.Time.Path)
	require.Equal(t, abs, cfg.Data.Path)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var sb strings.Builder

	logger, err := newLogger(LogConfig{Level: "warn", Format: "json"}, &sb)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	require.NotContains(t, sb.String(), "hidden")
	require.Contains(t, sb.String(), `"msg":"shown"`)

	sb.Reset()
	logger, err = newLogger(LogConfig{Level: "debug", Format: "text"}, &sb)
	require.NoError(t, err)
	logger.Debug("details")
	require.Contains(t, sb.String(), "level=DEBUG")

	_, err = newLogger(LogConfig{Level: "verbose"}, &sb)
	require.Error(t, err)
	_, err = newLogger(LogConfig{Format: "xml"}, &sb)
	require.Error(t, err)
}
