// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Per-stop display preferences (route allow-lists, headsign filters) live
// here and are handed to consumers as plain data.
package config
