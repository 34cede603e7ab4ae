package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gogpu/nonnon"
	"github.com/gogpu/nonnon/anim"
	"github.com/gogpu/nonnon/fetch"
	"github.com/gogpu/nonnon/shellout"
	"github.com/gogpu/nonnon/text"
)

type generateCommand struct {
	global *globalOptions

	Font    string `short:"f" long:"font" description:"TrueType or OpenType font file" value-name:"FILE"`
	Assets  string `short:"a" long:"assets" required:"true" description:"Asset directory or http(s) base URL" value-name:"DIR|URL"`
	Config  string `short:"c" long:"config" description:"TOML configuration file" value-name:"FILE"`
	Mini    bool   `long:"mini" description:"Small output (340x200, 100 colors)"`
	Strict  bool   `long:"strict" description:"Accept only hiragana, katakana and kanji"`
	Backend string `long:"backend" choice:"native" choice:"shell" default:"native" description:"Glyph and encoder backend"`
	Parser  string `long:"parser" choice:"ximage" choice:"gotext" default:"ximage" description:"Font parser for the native backend"`
	Output  string `short:"o" long:"output" default:"nonnon.gif" description:"Output GIF file" value-name:"FILE"`

	Args struct {
		Text string `positional-arg-name:"TEXT" required:"yes"`
	} `positional-args:"yes"`
}

// Execute implements flags.Commander.
func (c *generateCommand) Execute([]string) error {
	logger, closer := setupLogging(c.global)
	defer closer.Close()

	cfg, err := loadConfig(c.Config, c.Mini)
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(c.Assets, logger)
	if err != nil {
		return err
	}
	opts := []nonnon.Option{
		nonnon.WithFetcher(fetcher),
		nonnon.WithLogger(logger),
		nonnon.WithStrict(c.Strict),
		nonnon.WithProgress(printProgress),
	}

	switch c.Backend {
	case "shell":
		for _, tool := range []string{"convert", "gifsicle"} {
			if !shellout.Available(tool) {
				return fmt.Errorf("backend shell: %w: %s", shellout.ErrToolNotFound, tool)
			}
		}
		opts = append(opts,
			nonnon.WithRasterizer(&shellout.MagickRasterizer{Font: c.Font}),
			nonnon.WithEncoder(&shellout.GifsicleEncoder{Colors: cfg.Output.Colors, LoopCount: cfg.Output.LoopCount}),
		)
	default:
		if c.Font == "" {
			return errors.New("backend native: --font is required")
		}
		src, err := text.NewFontSourceFromFile(c.Font, text.WithParser(fontParser(c.Parser)))
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		defer src.Close()
		opts = append(opts,
			nonnon.WithFont(src),
			nonnon.WithEncoder(anim.GIFEncoder{Colors: cfg.Output.Colors, LoopCount: cfg.Output.LoopCount}),
		)
	}

	p, err := nonnon.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	blob, err := p.Run(ctx, c.Args.Text)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, blob, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("animation written", "path", c.Output, "bytes", len(blob))
	return nil
}

// loadConfig returns the default configuration or the one in path, with
// the mini preset applied on request.
func loadConfig(path string, mini bool) (nonnon.Config, error) {
	cfg := nonnon.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = nonnon.LoadConfig(path); err != nil {
			return nonnon.Config{}, err
		}
	}
	if mini {
		cfg = cfg.Mini()
	}
	return cfg, nil
}

// newFetcher picks an HTTP fetcher for URLs and a directory fetcher
// otherwise.
func newFetcher(assets string, logger *slog.Logger) (fetch.Fetcher, error) {
	if strings.HasPrefix(assets, "http://") || strings.HasPrefix(assets, "https://") {
		return fetch.NewHTTP(assets, fetch.WithLogger(logger))
	}
	info, err := os.Stat(assets)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: %s is not a directory", assets)
	}
	return fetch.NewDir(assets), nil
}

func fontParser(name string) text.FontParser {
	if name == "gotext" {
		return text.GoTextParser{}
	}
	return text.XImageParser{}
}

func printProgress(p nonnon.Progress) {
	fmt.Fprintf(os.Stderr, "\r%-8s %3d%%", p.Step, p.Percent)
}
