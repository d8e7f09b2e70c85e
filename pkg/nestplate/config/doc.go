/*
Package config provides type-safe extraction of resolver and catalog
settings from map[string]any.

# Overview

config wraps a map[string]any decoded from YAML or JSON and provides typed
accessors that return a default when a key is missing or has the wrong
type. nestplate.OptionsFromConfig reads delimiter settings through it:

	# nestplate.yaml
	enclosure_begin: "[["
	enclosure_end: "]]"
	name_separator: ","
	substitute: "?"
	max_steps: 500

	cfg, err := config.FromFile("nestplate.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	tmpl, err := nestplate.New(msg, vals, nestplate.OptionsFromConfig(cfg)...)

# Nested Sections

Sub returns a nested mapping as its own Config:

	cfg.Sub("resolver").String("enclosure_begin", "{:")

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
