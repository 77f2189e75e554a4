// Package config reads and validates merge job files.
//
// A job is a TOML file naming the game, the directory of loose ini files to
// merge into, and the delta sets to apply in order:
//
//	[general]
//	game = "LE1"
//	config_dir = "Config"
//	output_encoding = "utf-16"
//
//	[general.backup]
//	enabled = true
//	name_template = "{{asset}}.{{stamp}}.bak"
//
//	[[delta]]
//	name = "PlotManagerFoo"
//	dir = "mods/PlotManagerFoo"
//	prefix = "PlotManagerFoo"
//
// Relative directories are resolved against the job file's directory.
// ValidateConfig reports every problem at once as ValidationErrors, with
// field paths named after the TOML keys.
//
//	cfg, err := config.LoadConfig("m3cd.toml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    return err
//	}
package config
