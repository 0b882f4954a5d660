// Package config resolves everything exitwatch needs before the watch
// starts: .env seeding, the NOTIF_URL webhook target, and the optional
// exitwatch.toml defaults file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvURL is the environment variable holding the webhook target.
const EnvURL = "NOTIF_URL"

// DefaultIntervalSecs is the poll interval used when neither the CLI nor
// the config file sets one.
const DefaultIntervalSecs = 10

const (
	envFileName    = ".env"
	configFileName = "exitwatch.toml"
)

// LogConfig mirrors the [log] table of exitwatch.toml. Rotation parameters
// follow lumberjack semantics.
type LogConfig struct {
	File       string `toml:"file" mapstructure:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
}

// FileConfig represents the top-level exitwatch.toml structure. All fields
// are defaults only: CLI flags override the file, and NOTIF_URL from the
// environment overrides notify_url.
type FileConfig struct {
	IntervalSecs uint64    `toml:"interval" mapstructure:"interval"`
	NotifyURL    string    `toml:"notify_url" mapstructure:"notify_url"`
	NoColor      bool      `toml:"no_color" mapstructure:"no_color"`
	Verbose      bool      `toml:"verbose" mapstructure:"verbose"`
	Log          LogConfig `toml:"log" mapstructure:"log"`
}

// candidateDirs returns the probe order shared by the .env and config file
// lookups: the executable's directory first, then the working directory.
func candidateDirs() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get current exe: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return []string{filepath.Dir(exe), cwd}, nil
}

// LoadEnvFiles seeds the process environment from .env files next to the
// executable and in the working directory, in that order. A missing file is
// not an error; a present one that cannot be parsed is. Variables already
// set in the environment are never overwritten, so the executable's file
// wins over the working directory's for keys both define.
func LoadEnvFiles() error {
	dirs, err := candidateDirs()
	if err != nil {
		return err
	}
	where := []string{"exe directory", "current working directory"}
	for i, dir := range dirs {
		if err := gotenv.Load(filepath.Join(dir, envFileName)); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to read .env file in %s: %w", where[i], err)
		}
	}
	return nil
}

// ResolveURL returns the webhook target: NOTIF_URL from the environment
// wins, the config file's notify_url is the fallback. The result must be
// non-empty and start with "http".
func ResolveURL(fileURL string) (string, error) {
	url := os.Getenv(EnvURL)
	if url == "" {
		url = fileURL
	}
	if url == "" {
		return "", errors.New("'" + EnvURL + "' environment variable needs to be set (to the webhook url)")
	}
	if !strings.HasPrefix(url, "http") {
		return "", errors.New("`" + EnvURL + "` must be a url")
	}
	return url, nil
}

// ProbeFile looks for exitwatch.toml next to the executable, then in the
// working directory; the first file present wins. ok is false when no
// candidate exists, which is not an error.
func ProbeFile() (FileConfig, bool, error) {
	dirs, err := candidateDirs()
	if err != nil {
		return FileConfig{}, false, err
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fc, err := LoadFile(path)
		if err != nil {
			return FileConfig{}, false, err
		}
		return fc, true, nil
	}
	return FileConfig{}, false, nil
}

// LoadFile parses one exitwatch.toml.
func LoadFile(path string) (FileConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return FileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc FileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return FileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}
