// Package config loads pathedit settings from defaults, a TOML file,
// PATHEDIT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. PATHEDIT_STORE=file
// or PATHEDIT_HISTORY_LIMIT=50.
const EnvPrefix = "PATHEDIT_"

// Config is the resolved configuration.
type Config struct {
	Variable  string  `koanf:"variable"`
	Delimiter string  `koanf:"delimiter"`
	Store     string  `koanf:"store"`
	File      string  `koanf:"file"`
	Shell     string  `koanf:"shell"`
	History   History `koanf:"history"`
	Log       Log     `koanf:"log"`
	Web       Web     `koanf:"web"`
}

type History struct {
	Limit int `koanf:"limit"`
}

type Log struct {
	Level   string `koanf:"level"`
	File    string `koanf:"file"`
	Console bool   `koanf:"console"`
}

type Web struct {
	Port int `koanf:"port"`
}

// DelimiterRune returns the configured delimiter as a rune.
func (c Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Validate checks the values that cannot be fixed up silently.
func (c Config) Validate() error {
	if c.Variable == "" {
		return errors.New("variable must not be empty")
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	switch c.Store {
	case "env", "memory":
	case "file":
		if c.File == "" {
			return errors.New("store \"file\" needs file to be set")
		}
	default:
		return fmt.Errorf("unknown store %q (want env, file or memory)", c.Store)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port out of range: %d", c.Web.Port)
	}
	return nil
}

// Defaults returns the built-in settings.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"variable":      "PATH",
		"delimiter":     string(os.PathListSeparator),
		"store":         "env",
		"file":          filepath.Join(xdg.ConfigHome, "pathedit", "path.sh"),
		"shell":         "",
		"history.limit": 0,
		"log.level":     "info",
		"log.file":      "",
		"log.console":   false,
		"web.port":      8080,
	}
}

// DefaultFile returns $XDG_CONFIG_HOME/pathedit/config.toml.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigHome, "pathedit", "config.toml")
}

// Load resolves the configuration. path is the TOML file to read; when it is
// empty, DefaultFile is used if it exists. overrides holds already-parsed
// flag values keyed like the TOML keys (e.g. "history.limit").
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	explicit := path != ""
	if !explicit {
		path = DefaultFile()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
