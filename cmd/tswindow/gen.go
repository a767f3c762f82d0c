package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/format"
	"github.com/arloliu/tswindow/payload"
)

const (
	timeFileName   = "time.bin"
	dataFileName   = "data.bin"
	configFileName = "tswindow.yaml"
)

type genFlags struct {
	out         string
	samples     int
	width       int
	step        float64
	timeType    string
	dataType    string
	byteOrder   string
	compression string
	checksum    bool
	seed        uint64
}

func newGenCommand() *cobra.Command {
	flags := &genFlags{}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write example time and data buffers plus a matching config",
		Long: `
Generate a synthetic series (one sine wave with noise per column) and write
time.bin, data.bin and tswindow.yaml into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGen(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory")
	cmd.Flags().IntVarP(&flags.samples, "samples", "s", 10000, "number of timestamps")
	cmd.Flags().IntVarP(&flags.width, "width", "w", 3, "values per timestamp")
	cmd.Flags().Float64Var(&flags.step, "step", 10, "time step between samples")
	cmd.Flags().StringVar(&flags.timeType, "time-type", "uint32", "scalar type of the time buffer")
	cmd.Flags().StringVar(&flags.dataType, "data-type", "float32", "scalar type of the data buffer")
	cmd.Flags().StringVar(&flags.byteOrder, "byte-order", "little", "byte order of both buffers (little, big)")
	cmd.Flags().StringVar(&flags.compression, "compression", "none", "compression of both buffers (none, zstd, s2, lz4, snappy)")
	cmd.Flags().BoolVar(&flags.checksum, "checksum", false, "record xxHash64 checksums in the config")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 1, "random seed")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runGen(cmd *cobra.Command, flags *genFlags) error {
	if flags.samples <= 0 || flags.width <= 0 {
		return errors.New("samples and width must be positive")
	}
	if flags.step <= 0 {
		return errors.New("step must be positive")
	}

	timeType, err := format.ParseScalarType(flags.timeType)
	if err != nil {
		return err
	}
	dataType, err := format.ParseScalarType(flags.dataType)
	if err != nil {
		return err
	}
	engine, err := endian.ParseByteOrder(flags.byteOrder)
	if err != nil {
		return err
	}
	comp, err := format.ParseCompressionType(flags.compression)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flags.out, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", flags.out, err)
	}

	times, data := generate(flags.samples, flags.width, flags.step, flags.seed)
	quantize(times, timeType)
	quantize(data, dataType)

	opts := []payload.Option{
		payload.WithEngine(engine),
		payload.WithCompression(comp),
		payload.WithChecksum(flags.checksum),
	}

	cfg := defaultConfig()
	buffers := []struct {
		name   string
		values []float64
		typ    format.ScalarType
		target *BufferConfig
	}{
		{timeFileName, times, timeType, &cfg.Time},
		{dataFileName, data, dataType, &cfg.Data},
	}

	for _, b := range buffers {
		p, err := payload.Encode(b.values, b.typ, opts...)
		if err != nil {
			return fmt.Errorf("encode %s: %w", b.name, err)
		}

		path := filepath.Join(flags.out, b.name)
		if err := os.WriteFile(path, p.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		*b.target = BufferConfig{
			Path:        b.name,
			Type:        b.typ.String(),
			ByteOrder:   endian.Name(engine),
			Compression: strings.ToLower(comp.String()),
		}
		if p.Checksum != 0 {
			b.target.Checksum = fmt.Sprintf("0x%016x", p.Checksum)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d values, %d bytes)\n", path, len(b.values), len(p.Data))
	}

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(flags.out, configFileName)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

	return nil
}

// generate builds evenly spaced timestamps and one noisy sine wave per column.
func generate(samples, width int, step float64, seed uint64) (times, data []float64) {
	r := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))

	times = make([]float64, samples)
	data = make([]float64, 0, samples*width)
	for i := range samples {
		times[i] = float64(i) * step
		for j := range width {
			phase := float64(j) * math.Pi / 3
			wave := 100 * math.Sin(2*math.Pi*float64(i)/1000+phase)
			data = append(data, 1000+200*float64(j)+wave+10*r.NormFloat64())
		}
	}

	return times, data
}

// quantize rounds values in place to the nearest value typ can hold.
func quantize(values []float64, typ format.ScalarType) {
	lo, hi := scalarRange(typ)
	for i, v := range values {
		switch {
		case typ == format.TypeFloat64:
		case typ == format.TypeFloat32:
			values[i] = float64(float32(v))
		default:
			values[i] = math.Max(lo, math.Min(hi, math.Round(v)))
		}
	}
}

func scalarRange(typ format.ScalarType) (lo, hi float64) {
	switch typ {
	case format.TypeInt8:
		return math.MinInt8, math.MaxInt8
	case format.TypeUint8:
		return 0, math.MaxUint8
	case format.TypeInt16:
		return math.MinInt16, math.MaxInt16
	case format.TypeUint16:
		return 0, math.MaxUint16
	case format.TypeInt32:
		return math.MinInt32, math.MaxInt32
	case format.TypeUint32:
		return 0, math.MaxUint32
	default:
		return -math.MaxFloat64, math.MaxFloat64
	}
}
