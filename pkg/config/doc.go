// Package config loads smokesignal wiring files.
//
// Sources are layered in this order, later ones winning: embedded
// defaults, the wiring file (TOML or YAML, picked by extension),
// SMOKESIGNAL_* environment variables, and explicit overrides such as
// command-line flags.
package config
