package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ledgerwatch/log/v3"
	"github.com/urfave/cli/v2"

	"github.com/andybalholm/wordpack"
	"github.com/andybalholm/wordpack/codec"
)

var (
	OutFlag = cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Output file prefix (build) or output file (decode)",
	}
	VerifyFlag = cli.BoolFlag{
		Name:  "verify",
		Usage: "Check the coverage invariants of the result",
	}
	TextFlag = cli.BoolFlag{
		Name:  "text",
		Usage: "Also write a readable rendering of the token stream to <prefix>.txt",
	}
)

var builderFlags = []cli.Flag{
	&MaxLenFlag,
	&MaxWordsFlag,
	&WorkersFlag,
	&FastLogFlag,
	&MaxInputFlag,
}

var buildCommand = cli.Command{
	Action:    build,
	Name:      "build",
	Usage:     "Build a dictionary and write <prefix>.dict and <prefix>.tokens",
	ArgsUsage: "<input>",
	Flags: append([]cli.Flag{
		&OutFlag,
		&CompressionFlag,
		&LevelFlag,
		&VerifyFlag,
		&TextFlag,
	}, builderFlags...),
}

var decodeCommand = cli.Command{
	Action:    decode,
	Name:      "decode",
	Usage:     "Rebuild the corpus from <prefix>.dict and <prefix>.tokens",
	ArgsUsage: "<prefix>",
	Flags: []cli.Flag{
		&OutFlag,
		&CompressionFlag,
	},
}

var reportCommand = cli.Command{
	Action:    report,
	Name:      "report",
	Usage:     "Compare the input with its dictionary and token stream under every container",
	ArgsUsage: "<input>",
	Flags:     builderFlags,
}

// inputArg returns the single positional argument.
func inputArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("%s: expected 1 argument, got %d", ctx.Command.Name, ctx.NArg())
	}
	return ctx.Args().First(), nil
}

func buildResult(cfg Config, path string) (*wordpack.Result, []byte, func() error, error) {
	buf, release, err := mapInput(path, cfg.MaxInput)
	if err != nil {
		return nil, nil, nil, err
	}
	r := cfg.builder().Build(buf)
	return r, buf, release, nil
}

func build(ctx *cli.Context) error {
	input, err := inputArg(ctx)
	if err != nil {
		return err
	}
	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}
	c, err := cfg.container()
	if err != nil {
		return err
	}
	prefix := ctx.String(OutFlag.Name)
	if prefix == "" {
		prefix = strings.TrimSuffix(input, filepath.Ext(input))
	}

	r, _, release, err := buildResult(cfg, input)
	if err != nil {
		return err
	}
	defer release()

	if ctx.Bool(VerifyFlag.Name) {
		if err := r.Verify(); err != nil {
			return fmt.Errorf("verifying %s: %w", input, err)
		}
	}

	entries := r.Entries()
	tokens := r.Tokens()
	dictPath := outputPath(prefix, "dict", c)
	if err := codec.WriteFile(dictPath, c, func(w io.Writer) error {
		return codec.WriteDictionary(w, entries)
	}); err != nil {
		return err
	}
	tokensPath := outputPath(prefix, "tokens", c)
	if err := codec.WriteFile(tokensPath, c, func(w io.Writer) error {
		return codec.WriteTokens(w, tokens)
	}); err != nil {
		return err
	}
	log.Info("Wrote output", "dict", dictPath, "tokens", tokensPath, "words", len(entries), "residual", r.Residual())

	if ctx.Bool(TextFlag.Name) {
		text := wordpack.TextEncoder{}.Encode(nil, entries, tokens)
		if err := os.WriteFile(prefix+".txt", text, 0644); err != nil {
			return err
		}
	}
	return nil
}

func decode(ctx *cli.Context) error {
	prefix, err := inputArg(ctx)
	if err != nil {
		return err
	}
	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}
	c, err := cfg.container()
	if err != nil {
		return err
	}

	var dict [][]byte
	if err := codec.ReadFile(outputPath(prefix, "dict", c), c, func(r io.Reader) error {
		dict, err = codec.ReadDictionary(r)
		return err
	}); err != nil {
		return err
	}
	var tokens []uint16
	if err := codec.ReadFile(outputPath(prefix, "tokens", c), c, func(r io.Reader) error {
		tokens, err = codec.ReadTokens(r)
		return err
	}); err != nil {
		return err
	}

	out, err := codec.Decode(nil, dict, tokens)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", prefix, err)
	}
	if path := ctx.String(OutFlag.Name); path != "" {
		return os.WriteFile(path, out, 0644)
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}

func report(ctx *cli.Context) error {
	input, err := inputArg(ctx)
	if err != nil {
		return err
	}
	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	r, buf, release, err := buildResult(cfg, input)
	if err != nil {
		return err
	}
	defer release()
	elapsed := time.Since(start)

	var dictFile, tokenFile bytes.Buffer
	if err := codec.WriteDictionary(&dictFile, r.Entries()); err != nil {
		return err
	}
	if err := codec.WriteTokens(&tokenFile, r.Tokens()); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(ctx.App.Writer)
	t.SetTitle("%s: %d words, %d tokens, built in %s", filepath.Base(input), len(r.Dictionary), r.Residual(), elapsed.Round(time.Millisecond))
	t.AppendHeader(table.Row{"Container", "Input", "Dictionary", "Tokens", "Dictionary+Tokens", "Ratio"})
	for _, c := range containers(cfg.Level) {
		raw, err := compressedSize(c, buf)
		if err != nil {
			return err
		}
		dict, err := compressedSize(c, dictFile.Bytes())
		if err != nil {
			return err
		}
		tokens, err := compressedSize(c, tokenFile.Bytes())
		if err != nil {
			return err
		}
		ratio := "-"
		if dict+tokens > 0 {
			ratio = fmt.Sprintf("%.3f", float64(raw)/float64(dict+tokens))
		}
		t.AppendRow(table.Row{c.Name(), raw.HumanReadable(), dict.HumanReadable(), tokens.HumanReadable(), (dict + tokens).HumanReadable(), ratio})
	}
	t.Render()
	return nil
}

type countingWriter struct{ n datasize.ByteSize }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += datasize.ByteSize(len(p))
	return len(p), nil
}

func compressedSize(c codec.Container, data []byte) (datasize.ByteSize, error) {
	var cw countingWriter
	w, err := c.NewWriter(&cw)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}
