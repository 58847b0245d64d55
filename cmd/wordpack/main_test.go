package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andybalholm/wordpack"
	"github.com/andybalholm/wordpack/codec"
	"github.com/andybalholm/wordpack/internal/corpus"
	"github.com/andybalholm/wordpack/zstd"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run(append([]string{"wordpack", "--verbosity", "warn"}, args...)))
	return out.String()
}

func writeInput(t *testing.T, data []byte) (dir, path string) {
	dir = t.TempDir()
	path = filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return dir, path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wordpack.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_len = 64
workers = 2
fast_log = true
compression = "zstd"
level = 9
max_input = "16MB"
`), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxLen)
	assert.Equal(t, wordpack.MaxWords, cfg.MaxWords)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.FastLog)
	assert.Equal(t, 16*datasize.MB, cfg.MaxInput)

	c, err := cfg.container()
	require.NoError(t, err)
	assert.Equal(t, zstd.Container{Level: 9}, c)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestContainerByName(t *testing.T) {
	for _, name := range []string{"raw", "brotli", "gzip", "lz4", "snappy", "zstd"} {
		c, err := containerByName(name, 0)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	_, err := containerByName("bzip2", 0)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "a/b.dict", outputPath("a/b", "dict", codec.Raw{}))
	assert.Equal(t, "a/b.tokens.zstd", outputPath("a/b", "tokens", zstd.Container{}))
}

func TestBuildDecode(t *testing.T) {
	data := corpus.Text(1, 20000)
	for _, compression := range []string{"raw", "gzip", "lz4", "snappy", "zstd", "brotli"} {
		t.Run(compression, func(t *testing.T) {
			dir, input := writeInput(t, data)
			prefix := filepath.Join(dir, "out")
			run(t, "build", "--out", prefix, "--compression", compression, "--max-len", "32", "--verify", "--text", input)

			_, err := os.Stat(prefix + ".txt")
			require.NoError(t, err)

			decoded := filepath.Join(dir, "decoded.txt")
			run(t, "decode", "--compression", compression, "--out", decoded, prefix)
			got, err := os.ReadFile(decoded)
			require.NoError(t, err)
			require.True(t, bytes.Equal(data, got), "decoded output doesn't match")
		})
	}
}

func TestBuildEmptyInput(t *testing.T) {
	dir, input := writeInput(t, nil)
	run(t, "build", input)
	out := run(t, "decode", filepath.Join(dir, "input"))
	assert.Empty(t, out)
}

func TestBuildConfigFile(t *testing.T) {
	dir, input := writeInput(t, corpus.Text(2, 5000))
	config := filepath.Join(dir, "wordpack.toml")
	require.NoError(t, os.WriteFile(config, []byte("compression = \"snappy\"\nmax_words = 5\n"), 0644))

	run(t, "--config", config, "build", input)
	var dict [][]byte
	require.NoError(t, codec.ReadFile(filepath.Join(dir, "input.dict.snappy"), mustContainer(t, "snappy"), func(r io.Reader) error {
		var err error
		dict, err = codec.ReadDictionary(r)
		return err
	}))
	assert.Len(t, dict, 5)
}

func TestMaxInput(t *testing.T) {
	_, input := writeInput(t, corpus.Text(3, 4096))
	app := newApp()
	err := app.Run([]string{"wordpack", "build", "--max-input", "1KB", input})
	assert.ErrorContains(t, err, "limit")
}

func TestBadArguments(t *testing.T) {
	app := newApp()
	assert.Error(t, app.Run([]string{"wordpack", "build"}))
	assert.Error(t, app.Run([]string{"wordpack", "--verbosity", "loud", "report", "x"}))

	_, input := writeInput(t, []byte("hello"))
	assert.Error(t, app.Run([]string{"wordpack", "build", "--max-len", "1", input}))
	assert.Error(t, app.Run([]string{"wordpack", "build", "--compression", "bzip2", input}))
}

func TestReport(t *testing.T) {
	_, input := writeInput(t, corpus.Text(4, 20000))
	out := run(t, "report", "--max-len", "32", input)
	for _, name := range []string{"raw", "brotli", "gzip", "lz4", "snappy", "zstd"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "input.txt")
}

func mustContainer(t *testing.T, name string) codec.Container {
	c, err := containerByName(name, 0)
	require.NoError(t, err)
	return c
}
