// Package config builds the two kinds of configuration a run uses.
//
// The base configuration is the tree handed to every template. Load reads
// it from a JSON, TOML, HCL or YAML file (chosen by extension, YAML being the
// fallback) and Compose applies command-line overrides on top.
//
// Settings are pagesmith's own options (output directory, layout, report
// format...). LoadSettings layers them with koanf: built-in defaults, a
// pagesmith.yaml/.toml settings file, PAGESMITH_* environment variables and
// finally explicitly set command-line flags.
package config
