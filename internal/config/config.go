package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	// File enables a rotating log file next to stderr output.
	File       string `json:"file" yaml:"file"`
	MaxSize    int    `json:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age"` // days
}

type TokenConfig struct {
	Secret   string   `json:"secret" yaml:"secret"`
	Lifetime Duration `json:"lifetime" yaml:"lifetime"`
}

// GameConfig holds the board used when a request or flag does not name one.
type GameConfig struct {
	Height         int  `json:"height" yaml:"height"`
	Width          int  `json:"width" yaml:"width"`
	MineCount      int  `json:"mine_count" yaml:"mine_count"`
	SafeFirstClick bool `json:"safe_first_click" yaml:"safe_first_click"`
}

type Config struct {
	Mode   string      `json:"mode" yaml:"mode"`
	Addr   string      `json:"addr" yaml:"addr"`
	Log    LogConfig   `json:"log" yaml:"log"`
	Token  TokenConfig `json:"token" yaml:"token"`
	Game   GameConfig  `json:"game" yaml:"game"`
	Limits Limits      `json:"limits" yaml:"limits"`
}

func Default() Config {
	return Config{
		Mode: "development",
		Addr: "localhost:8000",
		Log: LogConfig{
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Token: TokenConfig{
			Lifetime: Duration{24 * time.Hour},
		},
		Game: GameConfig{
			Height:    9,
			Width:     9,
			MineCount: 10,
		},
		Limits: DefaultLimits(),
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                  c.Mode,
		"addr":                  c.Addr,
		"log_level":             c.Log.Level,
		"log_file":              c.Log.File,
		"token_lifetime":        c.Token.Lifetime.Duration.String(),
		"game_height":           c.Game.Height,
		"game_width":            c.Game.Width,
		"game_mine_count":       c.Game.MineCount,
		"game_safe_first_click": c.Game.SafeFirstClick,
		"limits_height":         fmt.Sprintf("%d..%d", c.Limits.MinHeight, c.Limits.MaxHeight),
		"limits_width":          fmt.Sprintf("%d..%d", c.Limits.MinWidth, c.Limits.MaxWidth),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Load reads the config file at path over the defaults and applies the
// SWEEPER_* environment overrides. An empty path or a missing file leaves
// the defaults in place. Files ending in .yaml or .yml are read as YAML,
// everything else as JSON.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := ReadConfig(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return &cfg, nil
}

func ReadConfig(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, config)
	default:
		return json.Unmarshal(b, config)
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("SWEEPER_MODE"); ok {
		c.Mode = v
	}
	if v, ok := os.LookupEnv("SWEEPER_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("SWEEPER_TOKEN_SECRET"); ok {
		c.Token.Secret = v
	}
	if v, ok := os.LookupEnv("SWEEPER_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
}
