package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"
	DefaultLogLevel       = "info"

	// EnvConfigPath overrides the config location.
	EnvConfigPath = "TODO_CONFIG"
	appDirName    = "todo"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Toggle  string `toml:"toggle"`
	Delete  string `toml:"delete"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
	Edit    string `toml:"edit"`
}

type Config struct {
	DBPath   string `toml:"db_path"`
	LogPath  string `toml:"log_path"`
	LogLevel string `toml:"log_level"`
	Keys     Keymap `toml:"keys"`
}

// ResolveConfigPath returns $TODO_CONFIG, falling back to the user config dir
// and finally the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults first when it does not exist.
// Relative db/log paths are resolved against the config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
		return resolvePaths(path, cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return resolvePaths(path, cfg), nil
}

func (c *Config) fillDefaults() {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	k, d := &c.Keys, def.Keys
	orDefault(&k.Quit, d.Quit)
	orDefault(&k.Add, d.Add)
	orDefault(&k.Up, d.Up)
	orDefault(&k.Down, d.Down)
	orDefault(&k.Toggle, d.Toggle)
	orDefault(&k.Delete, d.Delete)
	orDefault(&k.Confirm, d.Confirm)
	orDefault(&k.Cancel, d.Cancel)
	orDefault(&k.Edit, d.Edit)
}

func orDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func resolvePaths(configPath string, cfg Config) Config {
	base := filepath.Dir(configPath)
	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(base, cfg.DBPath)
	}
	if !filepath.IsAbs(cfg.LogPath) {
		cfg.LogPath = filepath.Join(base, cfg.LogPath)
	}
	return cfg
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:   DefaultDBName,
		LogPath:  DefaultLogName,
		LogLevel: DefaultLogLevel,
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Toggle:  " ",
			Delete:  "d",
			Confirm: "enter",
			Cancel:  "esc",
			Edit:    "e",
		},
	}
}
