// Package config provides functionality for loading and validating application configuration.
//
// Settings are read from an optional YAML file and overridden by HELIX_*
// environment variables. Each section validates itself with
// go-playground/validator before it is handed to the logger, the key metadata
// store or the key file directory.
package config
