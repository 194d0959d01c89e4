package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Director  DirectorConfig  `toml:"director"`
	Scene     SceneConfig     `toml:"scene"`
	Scripting ScriptingConfig `toml:"scripting"`
	Render    RenderConfig    `toml:"render"`
	Logging   LoggingConfig   `toml:"logging"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

type DirectorConfig struct {
	FPS        int    `toml:"fps"`        // simulation steps per second
	Transition string `toml:"transition"` // "deferred" or "immediate"
}

type SceneConfig struct {
	Path string `toml:"path"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // empty disables scripted actions
}

type RenderConfig struct {
	EveryFrames int     `toml:"every_frames"` // 0 disables console output
	Color       bool    `toml:"color"`
	Width       float64 `toml:"width"` // stage bounds used by confine_bodies
	Height      float64 `toml:"height"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type MetricsConfig struct {
	Enabled  bool   `toml:"enabled"`
	Textfile string `toml:"textfile"` // written on exit when set
}

// Step is the simulation step implied by FPS.
func (c DirectorConfig) Step() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Director.FPS <= 0 {
		errs = append(errs, fmt.Errorf("director.fps must be positive, got %d", c.Director.FPS))
	}
	switch c.Director.Transition {
	case "deferred", "immediate":
	default:
		errs = append(errs, fmt.Errorf("director.transition must be deferred or immediate, got %q", c.Director.Transition))
	}
	if c.Render.EveryFrames < 0 {
		errs = append(errs, fmt.Errorf("render.every_frames must not be negative, got %d", c.Render.EveryFrames))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Director: DirectorConfig{
			FPS:        60,
			Transition: "deferred",
		},
		Scene: SceneConfig{
			Path: "scenes/main.yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Render: RenderConfig{
			EveryFrames: 30,
			Color:       true,
			Width:       640,
			Height:      480,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
