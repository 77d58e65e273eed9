// Package config holds the runtime configuration shared by all commands:
// tool paths, directories, and concurrency. Values come from defaults, an
// optional TOML file, then environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full runtime configuration.
type Config struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`

	// OutDir receives final clips, captions, thumbnails, and the manifest.
	OutDir string `toml:"out_dir"`
	// WorkDir is the parent of per-clip scratch directories.
	WorkDir string `toml:"work_dir"`

	Workers  int    `toml:"workers"`
	FontPath string `toml:"font_path"`
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		OutDir:      "out",
		WorkDir:     os.TempDir(),
		Workers:     runtime.NumCPU(),
		LogLevel:    "info",
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults untouched; env overrides are applied either way.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers VERTCUT_* environment variables over the current values.
// godotenv has already loaded .env by the time this runs.
func (c *Config) applyEnv() {
	setString(&c.FFmpegPath, "VERTCUT_FFMPEG")
	setString(&c.FFprobePath, "VERTCUT_FFPROBE")
	setString(&c.OutDir, "VERTCUT_OUT_DIR")
	setString(&c.WorkDir, "VERTCUT_WORK_DIR")
	setString(&c.FontPath, "VERTCUT_FONT")
	setString(&c.LogLevel, "VERTCUT_LOG_LEVEL")
	if v := os.Getenv("VERTCUT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate rejects configurations no command could run with.
func (c Config) Validate() error {
	if c.FFmpegPath == "" {
		return errors.New("ffmpeg path is empty")
	}
	if c.FFprobePath == "" {
		return errors.New("ffprobe path is empty")
	}
	if c.OutDir == "" {
		return errors.New("output directory is empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
