package main

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	"github.com/andybalholm/wordpack"
	"github.com/andybalholm/wordpack/brotli"
	"github.com/andybalholm/wordpack/codec"
	"github.com/andybalholm/wordpack/flate"
	"github.com/andybalholm/wordpack/lz4"
	"github.com/andybalholm/wordpack/snappy"
	"github.com/andybalholm/wordpack/zstd"
)

// Config holds the settings shared by the commands. Values come from the
// defaults, then the --config file, then command-line flags.
type Config struct {
	MaxLen      int               `toml:"max_len"`
	MaxWords    int               `toml:"max_words"`
	Workers     int               `toml:"workers"`
	FastLog     bool              `toml:"fast_log"`
	Compression string            `toml:"compression"`
	Level       int               `toml:"level"`
	MaxInput    datasize.ByteSize `toml:"max_input"`
}

func defaultConfig() Config {
	return Config{
		MaxLen:      wordpack.DefaultMaxLen,
		MaxWords:    wordpack.MaxWords,
		Compression: codec.Raw{}.Name(),
		MaxInput:    1 * datasize.GB,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

var (
	MaxLenFlag = cli.IntFlag{
		Name:  "max-len",
		Usage: "Longest dictionary word",
	}
	MaxWordsFlag = cli.IntFlag{
		Name:  "max-words",
		Usage: "Largest dictionary size",
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "Goroutines used for ranking (0 = GOMAXPROCS)",
	}
	FastLogFlag = cli.BoolFlag{
		Name:  "fast-log",
		Usage: "Use the polynomial log2 approximation",
	}
	CompressionFlag = cli.StringFlag{
		Name:  "compression",
		Usage: "Container for output files: raw, brotli, gzip, lz4, snappy, zstd",
	}
	LevelFlag = cli.IntFlag{
		Name:  "level",
		Usage: "Compression level for the container (0 = its default)",
	}
	MaxInputFlag = cli.StringFlag{
		Name:  "max-input",
		Usage: "Refuse inputs larger than this, e.g. 512MB",
	}
)

// configFromContext loads the --config file and applies any flags that
// were set explicitly.
func configFromContext(ctx *cli.Context) (Config, error) {
	cfg, err := loadConfig(ctx.Path(ConfigFlag.Name))
	if err != nil {
		return cfg, err
	}
	if ctx.IsSet(MaxLenFlag.Name) {
		cfg.MaxLen = ctx.Int(MaxLenFlag.Name)
	}
	if ctx.IsSet(MaxWordsFlag.Name) {
		cfg.MaxWords = ctx.Int(MaxWordsFlag.Name)
	}
	if ctx.IsSet(WorkersFlag.Name) {
		cfg.Workers = ctx.Int(WorkersFlag.Name)
	}
	if ctx.IsSet(FastLogFlag.Name) {
		cfg.FastLog = ctx.Bool(FastLogFlag.Name)
	}
	if ctx.IsSet(CompressionFlag.Name) {
		cfg.Compression = ctx.String(CompressionFlag.Name)
	}
	if ctx.IsSet(LevelFlag.Name) {
		cfg.Level = ctx.Int(LevelFlag.Name)
	}
	if ctx.IsSet(MaxInputFlag.Name) {
		if err := cfg.MaxInput.UnmarshalText([]byte(ctx.String(MaxInputFlag.Name))); err != nil {
			return cfg, fmt.Errorf("--%s: %w", MaxInputFlag.Name, err)
		}
	}
	if cfg.MaxLen < 2 || cfg.MaxLen > wordpack.MaxLen {
		return cfg, fmt.Errorf("max_len %d out of range [2, %d]", cfg.MaxLen, wordpack.MaxLen)
	}
	if cfg.MaxWords < 0 || cfg.MaxWords > wordpack.MaxWords {
		return cfg, fmt.Errorf("max_words %d out of range [0, %d]", cfg.MaxWords, wordpack.MaxWords)
	}
	return cfg, nil
}

func (c Config) builder() *wordpack.Builder {
	return &wordpack.Builder{
		MaxLen:   c.MaxLen,
		MaxWords: c.MaxWords,
		Workers:  c.Workers,
		FastLog:  c.FastLog,
	}
}

func (c Config) container() (codec.Container, error) {
	return containerByName(c.Compression, c.Level)
}

func containerByName(name string, level int) (codec.Container, error) {
	for _, c := range containers(level) {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown compression %q", name)
}

func containers(level int) []codec.Container {
	return []codec.Container{
		codec.Raw{},
		brotli.Container{Level: level},
		flate.Container{Level: level},
		lz4.Container{},
		snappy.Container{},
		zstd.Container{Level: level},
	}
}

// outputPath returns the file name for one of the output files: the prefix,
// the kind (dict or tokens), and the container's suffix unless it is raw.
func outputPath(prefix, kind string, c codec.Container) string {
	p := prefix + "." + kind
	if _, ok := c.(codec.Raw); !ok {
		p += "." + c.Name()
	}
	return p
}
