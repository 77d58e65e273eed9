package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"vertcut/internal/config"
	"vertcut/internal/types"
)

// clipSpec is one entry of the clips job file. Tracks points at a face-track
// JSON file relative to the job file's directory when not absolute.
type clipSpec struct {
	ID          string             `json:"id"`
	Start       float64            `json:"start"`
	End         float64            `json:"end"`
	Title       string             `json:"title,omitempty"`
	Tracks      string             `json:"tracks,omitempty"`
	ZoomMoments []types.ZoomMoment `json:"zoom_moments,omitempty"`
}

func loadClipSpecs(path string) ([]clipSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clips file: %w", err)
	}
	var specs []clipSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse clips file %s: %w", path, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("clips file %s lists no clips", path)
	}
	return specs, nil
}

func loadSegments(path string) ([]types.WordSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var segs []types.WordSegment
	if err := json.Unmarshal(data, &segs); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return segs, nil
}

// loadOptions layers a TOML options file over the defaults. An empty path
// returns the defaults.
func loadOptions(path string) (types.EffectOptions, error) {
	opts := types.DefaultEffectOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("options %s: %w", path, err)
	}
	return opts, nil
}

// setup resolves the shared flag surface into a validated Config.
func setup(cmd *cobra.Command) (config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.OutDir = out
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return cfg, fmt.Errorf("create output directory: %w", err)
	}
	return cfg, nil
}

func runTimeout(cmd *cobra.Command) time.Duration {
	minutes, _ := cmd.Flags().GetInt("timeout-minutes")
	if minutes < 1 {
		minutes = 180
	}
	return time.Duration(minutes) * time.Minute
}

// resolveNear makes path absolute, resolving relative paths against the
// directory of base.
func resolveNear(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(base), path)
}
