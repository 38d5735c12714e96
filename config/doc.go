// Package config loads and validates the groupchain run configuration.
//
// Values come from, lowest precedence first, the built-in Defaults, a YAML
// file, a .env file and GROUPCHAIN_-prefixed environment variables, where
// nested keys join with underscores (GROUPCHAIN_OUTPUT_SEPARATOR sets
// output.separator).
//
// # Usage
//
//	cfg, err := config.Load(config.WithConfigFile("config.yml"))
package config
