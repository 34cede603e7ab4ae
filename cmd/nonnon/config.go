package main

import "os"

type configCommand struct {
	Config string `short:"c" long:"config" description:"Validate and print this TOML file instead of the defaults" value-name:"FILE"`
	Mini   bool   `long:"mini" description:"Apply the small output preset"`
}

// Execute implements flags.Commander.
func (c *configCommand) Execute([]string) error {
	cfg, err := loadConfig(c.Config, c.Mini)
	if err != nil {
		return err
	}
	return cfg.WriteTOML(os.Stdout)
}
