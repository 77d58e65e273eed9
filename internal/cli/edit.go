package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vertcut/internal/captions"
	"vertcut/internal/clip"
	"vertcut/internal/logging"
	"vertcut/internal/media/ffmpeg"
	"vertcut/internal/thumbnail"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <clip>",
		Short: "Re-render a clip from its word segments after keep-flag edits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0])
		},
	}
	cmd.Flags().String("segments", "", "JSON file of clip-relative word segments with keep flags (required)")
	cmd.Flags().String("id", "", "Identifier for the re-rendered clip (default: derived from the input name)")
	_ = cmd.MarkFlagRequired("segments")
	return cmd
}

func runEdit(cmd *cobra.Command, input string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)

	segmentsPath, _ := cmd.Flags().GetString("segments")
	optionsPath, _ := cmd.Flags().GetString("options")
	id, _ := cmd.Flags().GetString("id")

	segments, err := loadSegments(segmentsPath)
	if err != nil {
		return err
	}
	opts, err := loadOptions(optionsPath)
	if err != nil {
		return err
	}
	source, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	if id == "" {
		base := filepath.Base(source)
		id = base[:len(base)-len(filepath.Ext(base))] + "_edit"
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout(cmd))
	defer cancel()

	tool := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, log)
	thumbs := thumbnail.New(tool, log, cfg.FontPath)
	proc := clip.NewProcessor(tool, log, captions.DefaultRegistry(), thumbs, cfg.OutDir)

	workDir := filepath.Join(cfg.WorkDir, uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	res, err := proc.Edit(ctx, workDir, clip.EditRequest{
		ID:       id,
		Source:   source,
		Segments: segments,
		Options:  opts,
	})
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	log.Info().
		Str("video", res.VideoPath).
		Float64("duration", res.Duration).
		Msg("clip re-rendered")
	return nil
}
