// Command nonnon renders a seven character word onto the nonnon base
// animation and writes the result as an animated GIF.
//
// Usage:
//
//	nonnon generate --font NotoSansJP-Bold.ttf --assets ./assets -o out.gif のんのんびより
//	nonnon config > nonnon.toml
//	nonnon assets --assets ./assets
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/nonnon"
)

// globalOptions are accepted before any command.
type globalOptions struct {
	Verbose []bool `short:"v" long:"verbose" description:"Log more (repeat for debug output)"`
	LogFile string `long:"log-file" description:"Write logs to a rotated file instead of stderr" value-name:"FILE"`
}

func main() {
	var opts globalOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Personalized nonnon animation generator"

	mustAdd(parser.AddCommand("generate", "Render an animation",
		"Render TEXT onto the base animation and write a GIF.", &generateCommand{global: &opts}))
	mustAdd(parser.AddCommand("config", "Print the configuration",
		"Print the default or a loaded configuration as TOML.", &configCommand{}))
	mustAdd(parser.AddCommand("assets", "List animation assets",
		"List GIF assets in a directory and report missing timeline frames.", &assetsCommand{}))

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func mustAdd(_ *flags.Command, err error) {
	if err != nil {
		panic(err)
	}
}

// newLogger builds the CLI logger. Verbosity 0 logs warnings, 1 adds info
// and 2 or more adds debug records. With a file path, output goes to a
// lumberjack rotated file which the returned closer flushes.
func newLogger(verbosity int, file string) (*slog.Logger, io.Closer) {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if file != "" {
		lj := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		w, closer = lj, lj
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer
}

// setupLogging installs the CLI logger as the nonnon package logger.
func setupLogging(opts *globalOptions) (*slog.Logger, io.Closer) {
	logger, closer := newLogger(len(opts.Verbose), opts.LogFile)
	nonnon.SetLogger(logger)
	return logger, closer
}
