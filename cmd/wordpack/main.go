// Command wordpack builds a word dictionary for a corpus and rewrites the
// corpus as a stream of 16-bit tokens.
package main

import (
	"fmt"
	"os"

	"github.com/ledgerwatch/log/v3"
	"github.com/urfave/cli/v2"
)

var (
	VerbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level: crit, error, warn, info, debug, trace",
		Value: "info",
	}
	ConfigFlag = cli.PathFlag{
		Name:  "config",
		Usage: "TOML file with builder and output settings",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "wordpack"
	app.Usage = "greedy dictionary construction for 16-bit token streams"
	app.UsageText = app.Name + ` [global flags] command [flags] <args>`
	app.Flags = []cli.Flag{
		&VerbosityFlag,
		&ConfigFlag,
	}
	app.Commands = []*cli.Command{
		&buildCommand,
		&decodeCommand,
		&reportCommand,
	}
	app.Before = setupLogger
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(ctx *cli.Context) error {
	lvl, err := log.LvlFromString(ctx.String(VerbosityFlag.Name))
	if err != nil {
		return err
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StderrHandler))
	return nil
}
