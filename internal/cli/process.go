package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vertcut/internal/captions"
	"vertcut/internal/clip"
	"vertcut/internal/facetrack"
	"vertcut/internal/logging"
	"vertcut/internal/media/ffmpeg"
	"vertcut/internal/thumbnail"
	"vertcut/internal/types"
)

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <video>",
		Short: "Render vertical clips from a source video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args[0])
		},
	}
	cmd.Flags().String("clips", "", "JSON file listing clip boundaries (required)")
	cmd.Flags().String("transcript", "", "JSON file of word segments (required)")
	_ = cmd.MarkFlagRequired("clips")
	_ = cmd.MarkFlagRequired("transcript")
	return cmd
}

func runProcess(cmd *cobra.Command, input string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)

	clipsPath, _ := cmd.Flags().GetString("clips")
	transcriptPath, _ := cmd.Flags().GetString("transcript")
	optionsPath, _ := cmd.Flags().GetString("options")

	specs, err := loadClipSpecs(clipsPath)
	if err != nil {
		return err
	}
	segments, err := loadSegments(transcriptPath)
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

	reqs := make([]clip.Request, 0, len(specs))
	for _, spec := range specs {
		req := clip.Request{
			ID:          spec.ID,
			Source:      source,
			Bounds:      types.ClipBounds{Start: spec.Start, End: spec.End},
			Title:       spec.Title,
			Segments:    segments,
			ZoomMoments: spec.ZoomMoments,
			Options:     opts,
		}
		if spec.Tracks != "" {
			tracks, err := facetrack.Load(resolveNear(clipsPath, spec.Tracks))
			if err != nil {
				return fmt.Errorf("clip %s: %w", spec.ID, err)
			}
			req.Tracks = tracks
		}
		reqs = append(reqs, req)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout(cmd))
	defer cancel()

	tool := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, log)
	thumbs := thumbnail.New(tool, log, cfg.FontPath)
	proc := clip.NewProcessor(tool, log, captions.DefaultRegistry(), thumbs, cfg.OutDir)
	runner := clip.NewRunner(proc, log, cfg.WorkDir, cfg.Workers)

	outcomes := runner.Run(ctx, reqs)

	manifest := filepath.Join(cfg.OutDir, "manifest.json")
	if err := clip.WriteManifest(manifest, outcomes); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	log.Info().
		Int("clips", len(outcomes)).
		Int("failed", failed).
		Str("manifest", manifest).
		Msg("run finished")
	if failed == len(outcomes) {
		return fmt.Errorf("all %d clips failed, see %s", failed, manifest)
	}
	return nil
}
