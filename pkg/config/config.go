// Package config loads optional user preferences from a YAML file in the
// data directory. A missing file yields the defaults; the engine never
// requires configuration to run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pwkeep/pwkeep/pkg/passgen"
	"github.com/pwkeep/pwkeep/pkg/storage"
)

// FileName is the name of the configuration file inside the data directory.
const FileName = "config.yaml"

// DefaultClipboardClearSeconds is how long copied passwords stay on the
// clipboard before being wiped.
const DefaultClipboardClearSeconds = 30

// GeneratorConfig holds the default password generator settings.
type GeneratorConfig struct {
	Length      int    `yaml:"length"`
	NoLowercase bool   `yaml:"no_lowercase"`
	NoUppercase bool   `yaml:"no_uppercase"`
	NoDigits    bool   `yaml:"no_digits"`
	NoSymbols   bool   `yaml:"no_symbols"`
	Exclude     string `yaml:"exclude"`
}

// Config is the on-disk configuration.
type Config struct {
	DataDir               string          `yaml:"data_dir"`
	ClipboardClearSeconds int             `yaml:"clipboard_clear_seconds"`
	Generator             GeneratorConfig `yaml:"generator"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ClipboardClearSeconds: DefaultClipboardClearSeconds,
		Generator: GeneratorConfig{
			Length: passgen.DefaultLength,
		},
	}
}

// Load reads the configuration from dir. If dir is empty the standard data
// directory is used. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	if dir == "" {
		var err error
		dir, err = storage.DataDir()
		if err != nil {
			return nil, err
		}
	}

	content, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.ClipboardClearSeconds < 0 {
		return nil, fmt.Errorf("invalid clipboard_clear_seconds: %d", cfg.ClipboardClearSeconds)
	}
	if cfg.Generator.Length == 0 {
		cfg.Generator.Length = passgen.DefaultLength
	}

	return cfg, nil
}

// GeneratorOptions converts the configured generator defaults into
// passgen options.
func (c *Config) GeneratorOptions() passgen.Options {
	return passgen.Options{
		Length:      c.Generator.Length,
		NoLowercase: c.Generator.NoLowercase,
		NoUppercase: c.Generator.NoUppercase,
		NoDigits:    c.Generator.NoDigits,
		NoSymbols:   c.Generator.NoSymbols,
		Exclude:     c.Generator.Exclude,
	}
}
