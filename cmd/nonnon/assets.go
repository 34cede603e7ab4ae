package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/gogpu/nonnon"
	"github.com/gogpu/nonnon/fetch"
)

type assetsCommand struct {
	Assets  string `short:"a" long:"assets" required:"true" description:"Asset directory" value-name:"DIR"`
	Pattern string `long:"pattern" default:"**/*.gif" description:"Glob of files to list"`
	Config  string `short:"c" long:"config" description:"TOML configuration file for the timeline" value-name:"FILE"`
}

// Execute implements flags.Commander.
func (c *assetsCommand) Execute([]string) error {
	cfg, err := loadConfig(c.Config, false)
	if err != nil {
		return err
	}
	names, err := fetch.NewDir(c.Assets).List(c.Pattern)
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}
	return reportAssets(os.Stdout, names, cfg.Timeline)
}

// reportAssets prints every asset followed by the timeline assets that
// are missing.
func reportAssets(w io.Writer, names []string, tl nonnon.Timeline) error {
	have := make(map[string]bool, len(names))
	for _, name := range names {
		have[name] = true
		have[path.Base(name)] = true
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}

	var missing []string
	for i := tl.First; i <= tl.Last; i++ {
		if id := tl.AssetID(i); !have[id] {
			missing = append(missing, id)
		}
	}
	_, err := fmt.Fprintf(w, "%d assets, %d of %d timeline frames missing\n", len(names), len(missing), tl.Frames())
	if err != nil {
		return err
	}
	if tl.Intro != "" && !have[tl.Intro] {
		missing = append(missing, tl.Intro)
	}
	for _, id := range missing {
		if _, err := fmt.Fprintf(w, "missing: %s\n", id); err != nil {
			return err
		}
	}
	return nil
}
