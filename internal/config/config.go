package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/dshills/branchdiff/internal/compare"
	"github.com/dshills/branchdiff/internal/logger"
)

// Config represents the branchdiff configuration.
type Config struct {
	Repository   string `koanf:"repository" yaml:"repository,omitempty"`
	MainBranch   string `koanf:"main-branch" yaml:"main-branch,omitempty"`
	LocalBranch  string `koanf:"local-branch" yaml:"local-branch,omitempty"`
	TargetFolder string `koanf:"target-folder" yaml:"target-folder,omitempty"`

	RemoteName      string `koanf:"remote-name" yaml:"remote-name"`
	Editor          string `koanf:"editor" yaml:"editor"`
	KeepTemp        bool   `koanf:"keep-temp" yaml:"keep-temp"`
	ContinueOnError bool   `koanf:"continue-on-error" yaml:"continue-on-error"`
	Format          string `koanf:"format" yaml:"format"`
	LogLevel        string `koanf:"log-level" yaml:"log-level"`
	LogFormat       string `koanf:"log-format" yaml:"log-format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		RemoteName: compare.DefaultRemoteName,
		Editor:     "code",
		KeepTemp:   true,
		Format:     "text",
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if c.RemoteName == "" {
		return errors.New("remote-name must not be empty")
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported output format %q (want text or json)", c.Format)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "branchdiff", "config.yaml"), nil
}

// Load builds the effective config: defaults <- file <- changed flags.
// path may be empty to use ConfigPath; a missing file is not an error
// unless path was given explicitly. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("loading flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
