package clip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vertcut/internal/captions"
	"vertcut/internal/media"
	"vertcut/internal/timeline"
	"vertcut/internal/types"
)

// EditRequest re-renders an already-cut clip from its word segments after the
// user toggled keep flags. Segment times are clip-relative.
type EditRequest struct {
	ID       string              `json:"id"`
	Source   string              `json:"source"`
	Segments []types.WordSegment `json:"segments"`
	Options  types.EffectOptions `json:"options"`
}

// Edit cuts the dropped words out of the clip, re-burns captions against the
// re-timed words, and applies the closing transition. Returns
// timeline.ErrNothingKept when every segment is dropped.
func (p *Processor) Edit(ctx context.Context, workDir string, req EditRequest) (*Result, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, fmt.Errorf("edit %s: %w", req.ID, err)
	}
	log := p.log.With().Str("clip", req.ID).Logger()

	spans, err := timeline.MergeKeepRanges(req.Segments)
	if err != nil {
		return nil, fmt.Errorf("edit %s: %w", req.ID, err)
	}
	log.Info().Int("keep_ranges", len(spans)).Msg("re-editing clip")

	recut := filepath.Join(workDir, "recut.mp4")
	if err := p.tool.Apply(ctx, req.Source, recut, media.SelectCut{Keep: spans}); err != nil {
		return nil, fmt.Errorf("edit %s: recut: %w", req.ID, err)
	}

	res := &Result{ID: req.ID}
	res.Words = timeline.RemapTimestamps(req.Segments)
	res.Transcript = joinWords(res.Words)

	current := recut
	duration := timeline.TotalDuration(spans)
	cues := captions.GroupWords(res.Words, 0, duration, captions.DefaultMaxWords)
	if len(cues) > 0 {
		assPath := filepath.Join(workDir, "captions.ass")
		doc := captions.RenderASS(cues, p.styles.Lookup(req.Options.CaptionStyle))
		if err := os.WriteFile(assPath, []byte(doc), 0o644); err != nil {
			return nil, fmt.Errorf("edit %s: write captions: %w", req.ID, err)
		}
		captioned := filepath.Join(workDir, "captioned.mp4")
		if err := p.tool.Apply(ctx, current, captioned, media.BurnSubtitles{Path: assPath}); err != nil {
			return nil, fmt.Errorf("edit %s: burn captions: %w", req.ID, err)
		}
		current = captioned
		res.CaptionPath = filepath.Join(p.outDir, req.ID+".ass")
		if err := moveFile(assPath, res.CaptionPath); err != nil {
			return nil, fmt.Errorf("edit %s: install captions: %w", req.ID, err)
		}
	}

	style := req.Options.TransitionStyle
	if style != types.TransitionNone && style != "" {
		faded := filepath.Join(workDir, "faded.mp4")
		fade := media.Fade{Style: style, FadeDuration: 0.3, ClipDuration: duration}
		if err := p.tool.Apply(ctx, current, faded, fade); err != nil {
			log.Warn().Err(err).Msg("transition failed, keeping unfaded output")
		} else {
			current = faded
		}
	}

	res.VideoPath = filepath.Join(p.outDir, req.ID+".mp4")
	if err := moveFile(current, res.VideoPath); err != nil {
		return nil, fmt.Errorf("edit %s: install: %w", req.ID, err)
	}
	if out, err := p.tool.Probe(ctx, res.VideoPath); err == nil {
		res.Duration = out.Duration
	}
	log.Info().Str("video", res.VideoPath).Float64("duration", res.Duration).Msg("re-edit done")
	return res, nil
}
