package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/skyforge/astropress/pkg/kit"
	"github.com/skyforge/astropress/pkg/latitude"
)

// configFileName is the config file astropress looks for.
const configFileName = "astropress.toml"

// Config holds the optional TOML configuration. Every field is a default
// that the matching command-line flag overrides, so the zero value is a
// valid (empty) configuration.
type Config struct {
	Build BuildConfig `toml:"build"`
	Serve ServeConfig `toml:"serve"`
}

// BuildConfig supplies defaults for the build and pick commands.
type BuildConfig struct {
	Latitudes   []float64 `toml:"latitudes"`
	Languages   []string  `toml:"languages"`
	Types       []string  `toml:"types"`
	Formats     []string  `toml:"formats"`
	Theme       string    `toml:"theme"`
	Output      string    `toml:"output"`
	CheckImages bool      `toml:"check_images"`
}

// ServeConfig supplies defaults for the serve command.
type ServeConfig struct {
	Addr     string `toml:"addr"`
	Cache    string `toml:"cache"`
	RedisURL string `toml:"redis_url"`
}

// loadConfig reads the config file at path. When path is empty the default
// locations are searched and a missing file is not an error; an explicit
// path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		return cfg, nil
	}

	for _, candidate := range configCandidates() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(candidate, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", candidate, err)
		}
		return cfg, nil
	}
	return Config{}, nil
}

// configCandidates returns the default config file locations in search order:
// the working directory first, then the XDG config directory.
func configCandidates() []string {
	candidates := []string{configFileName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configFileName))
	}
	return candidates
}

// configDir returns the config directory using XDG standard (~/.config/astropress/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// buildOptions seeds kit options from the config file. Unset fields stay
// zero so the kit defaults apply.
func (cfg Config) buildOptions() (kit.Options, error) {
	opts := kit.Options{
		Languages:   cfg.Build.Languages,
		Types:       cfg.Build.Types,
		Formats:     cfg.Build.Formats,
		Theme:       cfg.Build.Theme,
		OutputDir:   cfg.Build.Output,
		CheckImages: cfg.Build.CheckImages,
	}
	for _, deg := range cfg.Build.Latitudes {
		lat, err := latitude.New(deg)
		if err != nil {
			return kit.Options{}, fmt.Errorf("config latitude: %w", err)
		}
		opts.Latitudes = append(opts.Latitudes, lat)
	}
	return opts, nil
}
