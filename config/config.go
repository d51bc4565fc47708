// Package config loads the game configuration from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/stagehand/common"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Window  Window  `yaml:"window"`
	Physics Physics `yaml:"physics"`
	Game    Game    `yaml:"game"`
	Debug   Debug   `yaml:"debug"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Physics struct {
	Step     float64 `yaml:"step"`
	GravityX float64 `yaml:"gravity_x"`
	GravityY float64 `yaml:"gravity_y"`
}

type Game struct {
	// StartLevel is a level index; a negative value opens the splash screen.
	StartLevel int    `yaml:"start_level"`
	ContentDir string `yaml:"content_dir"`
	AssetsDir  string `yaml:"assets_dir"`
	Watch      bool   `yaml:"watch"`
}

type Debug struct {
	Enabled     bool   `yaml:"enabled"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		Window:  Window{Width: common.BaseWidth, Height: common.BaseHeight, Title: "stagehand"},
		Physics: Physics{Step: common.FixedStep, GravityY: common.DefaultGravity},
		Game:    Game{StartLevel: -1, ContentDir: "levels", AssetsDir: "assets"},
		Debug:   Debug{LogLevel: "info"},
	}
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		common.Logger("config").Warn("embedded default config unreadable", "err", err)
	}
	return cfg
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Physics.Step <= 0 {
		return fmt.Errorf("%w: physics step %v", ErrInvalid, c.Physics.Step)
	}
	return nil
}
