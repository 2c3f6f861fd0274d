// Package config loads and merges branchdiff configuration.
//
// Precedence (highest to lowest):
//  1. CLI flags that were explicitly set
//  2. Config file (--config, or <UserConfigDir>/branchdiff/config.yaml)
//  3. Built-in defaults
//
// Environment variables are not consulted. Use [Load] to obtain a merged
// [Config] and [Save] to write one back as YAML.
package config
