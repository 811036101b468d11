// Package config loads piconlink's layered configuration: embedded TOML
// defaults, an optional piconlink.toml or piconlink.yaml from the XDG config
// directory or the current directory, and PICONLINK_* environment overrides.
package config
