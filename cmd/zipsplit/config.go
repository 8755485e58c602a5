package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/meigma/zipsplit"
	"github.com/meigma/zipsplit/partition"
)

// fileConfig is the optional YAML configuration file. Flags given on the
// command line take precedence over it.
type fileConfig struct {
	Output          string `yaml:"output"`
	MaxCount        *int   `yaml:"max_count"`
	MaxSize         string `yaml:"max_size"`
	Compression     string `yaml:"compression"`
	StoreCompressed *bool  `yaml:"store_compressed"`
	PayloadDir      string `yaml:"payload_dir"`
	Jobs            int    `yaml:"jobs"`
}

type settings struct {
	output          string
	maxCount        int
	maxSize         uint64
	compression     zipsplit.Compression
	storeCompressed bool
	payloadDir      string
	jobs            int
	debug           bool
	verbose         bool
	sources         []string
}

var (
	errUsage         = errors.New("usage")
	errDuplicateStem = errors.New("sources share an output directory")
)

const usage = `Usage: zipsplit [flags] SOURCE...

Repackages each SOURCE (a directory or a zip archive) into part-NNN.zip
archives bounded by entry count and declared size. With several sources,
each one is written to its own subdirectory of --output.

Flags:
`

// parseSettings parses command line arguments and the optional config file.
func parseSettings(args []string, stderr io.Writer) (settings, error) {
	fs := pflag.NewFlagSet("zipsplit", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		s           settings
		configPath  string
		maxSize     string
		compression string
	)
	fs.StringVarP(&configPath, "config", "f", "", "YAML config file")
	fs.StringVarP(&s.output, "output", "o", "", "output directory")
	fs.IntVarP(&s.maxCount, "max-count", "c", zipsplit.DefaultMaxCount, "maximum entries per part")
	fs.StringVarP(&maxSize, "max-size", "s", humanize.Bytes(zipsplit.DefaultMaxSize), "maximum declared size per part (e.g. 500MB, 1GiB)")
	fs.StringVar(&compression, "compression", zipsplit.CompressionDeflate.String(), "entry compression: deflate, store or zstd")
	fs.BoolVar(&s.storeCompressed, "store-compressed", true, "store already-compressed files (jar, zip, ...) without recompressing")
	fs.StringVar(&s.payloadDir, "payload-dir", zipsplit.DefaultPayloadDir, "payload directory kept from source archives")
	fs.IntVarP(&s.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "sources processed concurrently")
	fs.BoolVar(&s.debug, "debug", false, "trace how archive entries are renamed")
	fs.BoolVarP(&s.verbose, "verbose", "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return settings{}, errUsage
		}
		return settings{}, err
	}

	if configPath != "" {
		fc, err := loadFileConfig(configPath)
		if err != nil {
			return settings{}, err
		}
		applyFileConfig(fs, fc, &s, &maxSize, &compression)
	}

	size, err := humanize.ParseBytes(maxSize)
	if err != nil {
		return settings{}, fmt.Errorf("invalid --max-size %q: %w", maxSize, err)
	}
	s.maxSize = size

	comp, ok := partition.ParseCompression(compression)
	if !ok {
		return settings{}, fmt.Errorf("invalid --compression %q", compression)
	}
	s.compression = comp

	if s.output == "" {
		return settings{}, errors.New("--output is required")
	}
	if s.maxCount < 1 {
		return settings{}, fmt.Errorf("invalid --max-count %d", s.maxCount)
	}
	if s.jobs < 1 {
		s.jobs = 1
	}
	s.sources = fs.Args()
	if len(s.sources) == 0 {
		fs.Usage()
		return settings{}, errUsage
	}
	if err := checkStems(s.sources); err != nil {
		return settings{}, err
	}
	return s, nil
}

// checkStems rejects source lists in which two sources would share an
// output subdirectory.
func checkStems(sources []string) error {
	if len(sources) < 2 {
		return nil
	}
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		stem := sourceStem(src)
		if prev, ok := seen[stem]; ok {
			return fmt.Errorf("%w: %s and %s both write to %q", errDuplicateStem, prev, src, stem)
		}
		seen[stem] = src
	}
	return nil
}

func loadFileConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// applyFileConfig copies values from the config file for every flag that
// was not set explicitly.
func applyFileConfig(fs *pflag.FlagSet, fc fileConfig, s *settings, maxSize, compression *string) {
	if fc.Output != "" && !fs.Changed("output") {
		s.output = fc.Output
	}
	if fc.MaxCount != nil && !fs.Changed("max-count") {
		s.maxCount = *fc.MaxCount
	}
	if fc.MaxSize != "" && !fs.Changed("max-size") {
		*maxSize = fc.MaxSize
	}
	if fc.Compression != "" && !fs.Changed("compression") {
		*compression = fc.Compression
	}
	if fc.StoreCompressed != nil && !fs.Changed("store-compressed") {
		s.storeCompressed = *fc.StoreCompressed
	}
	if fc.PayloadDir != "" && !fs.Changed("payload-dir") {
		s.payloadDir = fc.PayloadDir
	}
	if fc.Jobs != 0 && !fs.Changed("jobs") {
		s.jobs = fc.Jobs
	}
}
