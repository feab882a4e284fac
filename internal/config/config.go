package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/tabdeck/internal/app"
	"github.com/atomicstack/tabdeck/internal/storage"
	"github.com/atomicstack/tabdeck/internal/theme"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig  = "TABDECK_CONFIG"
	envDB      = "TABDECK_DB"
	envWidth   = "TABDECK_WIDTH"
	envHeight  = "TABDECK_HEIGHT"
	envFooter  = "TABDECK_FOOTER"
	envMouse   = "TABDECK_MOUSE"
	envTrace   = "TABDECK_TRACE"
	envLogFile = "TABDECK_LOG_FILE"
)

// binding ties a config-file key to the flag and environment variable that
// override it.
type binding struct {
	key  string
	flag string
	env  string
	kind kind
}

type kind int

const (
	kindString kind = iota
	kindInt
	kindBool
)

var bindings = []binding{
	{key: "database.path", flag: "db", env: envDB, kind: kindString},
	{key: "ui.width", flag: "width", env: envWidth, kind: kindInt},
	{key: "ui.height", flag: "height", env: envHeight, kind: kindInt},
	{key: "ui.footer", flag: "footer", env: envFooter, kind: kindBool},
	{key: "ui.mouse", flag: "mouse", env: envMouse, kind: kindBool},
	{key: "logging.trace", flag: "trace", env: envTrace, kind: kindBool},
	{key: "logging.file", flag: "log-file", env: envLogFile, kind: kindString},
}

type fileConfig struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	UI struct {
		Width  int  `mapstructure:"width"`
		Height int  `mapstructure:"height"`
		Footer bool `mapstructure:"footer"`
		Mouse  bool `mapstructure:"mouse"`
	} `mapstructure:"ui"`
	Logging struct {
		File  string `mapstructure:"file"`
		Trace bool   `mapstructure:"trace"`
	} `mapstructure:"logging"`
	Palette []theme.Spec `mapstructure:"palette"`
}

// Load parses configuration from CLI arguments, environment variables and the
// optional config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then environment, then config file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tabdeck", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", envOrDefault(env, envConfig, ""), "path to a TOML config file")
	fs.String("db", "", "path to the SQLite database")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("footer", false, "enable footer hint row")
	fs.Bool("mouse", true, "enable mouse support")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("log-file", "", "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("database.path", storage.DefaultPath())
	v.SetDefault("ui.width", 0)
	v.SetDefault("ui.height", 0)
	v.SetDefault("ui.footer", false)
	v.SetDefault("ui.mouse", true)
	v.SetDefault("logging.trace", false)
	v.SetDefault("logging.file", "")

	file, err := readConfigFile(v, *configPath, env)
	if err != nil {
		return Config{}, err
	}
	for _, b := range bindings {
		if raw, ok := env[b.env]; ok {
			if value, ok := parseEnvValue(raw, b.kind); ok {
				v.Set(b.key, value)
			}
		}
	}
	fs.Visit(func(f *flag.Flag) {
		for _, b := range bindings {
			if b.flag == f.Name {
				v.Set(b.key, f.Value.(flag.Getter).Get())
			}
		}
	})

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if fc.UI.Width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", fc.UI.Width)
	}
	if fc.UI.Height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", fc.UI.Height)
	}

	cfg := Config{
		App: app.Config{
			DBPath:     fc.Database.Path,
			Width:      fc.UI.Width,
			Height:     fc.UI.Height,
			ShowFooter: fc.UI.Footer,
			Mouse:      fc.UI.Mouse,
			Palette:    fc.Palette,
		},
		Logging: Logging{
			FilePath: fc.Logging.File,
			Trace:    fc.Logging.Trace,
		},
		File: file,
		Flags: map[string]string{
			"config":  file,
			"db":      fc.Database.Path,
			"width":   strconv.Itoa(fc.UI.Width),
			"height":  strconv.Itoa(fc.UI.Height),
			"footer":  strconv.FormatBool(fc.UI.Footer),
			"mouse":   strconv.FormatBool(fc.UI.Mouse),
			"trace":   strconv.FormatBool(fc.Logging.Trace),
			"logFile": fc.Logging.File,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// defaultConfigPath returns the config file location under the user config
// directory, resolved from env.
func defaultConfigPath(env map[string]string) string {
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return filepath.Join(dir, "tabdeck", "config.toml")
	}
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return filepath.Join(home, ".config", "tabdeck", "config.toml")
	}
	return ""
}

// readConfigFile loads path into v. An explicit path must exist; the default
// location is optional. It returns the file that was read, if any.
func readConfigFile(v *viper.Viper, path string, env map[string]string) (string, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigPath(env)
		if path == "" {
			return "", nil
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
	}
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read config %s: %w", path, err)
	}
	return path, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// parseEnvValue converts raw for a binding. Blank or unparsable values are
// ignored so a typo never masks the config file.
func parseEnvValue(raw string, k kind) (interface{}, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	switch k {
	case kindInt:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false
		}
		return parsed, true
	case kindBool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false
		}
		return parsed, true
	}
	return raw, true
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.DBPath) == "" {
		return errors.New("database path cannot be empty")
	}
	if len(cfg.App.Palette) > 0 {
		if _, err := theme.ParsePalette(cfg.App.Palette); err != nil {
			return fmt.Errorf("palette: %w", err)
		}
	}
	return nil
}
