// Package config assembles runtime settings from defaults, an optional
// YAML config file, DRILL_-prefixed environment variables, and
// command-line flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "DRILL_"

// Config holds everything the CLI needs to run.
type Config struct {
	DB        string `koanf:"db" validate:"required"`
	TimeBox   int    `koanf:"timebox" validate:"gte=0"`
	ExportDir string `koanf:"export-dir"`
	ReposDir  string `koanf:"repos-dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DB:        "drill.db",
		TimeBox:   20,
		ExportDir: ".",
		ReposDir:  "repos",
	}
}

// Load layers the config file (if present), environment, and flags on
// top of the defaults.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// DRILL_EXPORT_DIR -> export-dir
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "_", "-"), value
		},
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
