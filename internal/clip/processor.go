// Package clip orchestrates the full per-clip pipeline: cut the source range,
// build the vertical base video, burn captions, run the effect chain, and emit
// the final artifacts. It also hosts the multi-clip runner and the re-edit
// operation.
package clip

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"vertcut/internal/captions"
	"vertcut/internal/effects"
	"vertcut/internal/facetrack"
	"vertcut/internal/media"
	"vertcut/internal/ports"
	"vertcut/internal/reframe"
	"vertcut/internal/thumbnail"
	"vertcut/internal/timeline"
	"vertcut/internal/types"
)

// Request describes one clip to render out of the source video.
type Request struct {
	ID     string           `json:"id"`
	Source string           `json:"source"`
	Bounds types.ClipBounds `json:"bounds"`
	Title  string           `json:"title,omitempty"`

	// Segments are the source transcript words in absolute seconds.
	Segments []types.WordSegment `json:"segments"`

	Tracks      []facetrack.Track  `json:"tracks,omitempty"`
	ZoomMoments []types.ZoomMoment `json:"zoom_moments,omitempty"`

	Options types.EffectOptions `json:"options"`
}

// Result is one rendered clip. Paths are absolute; ThumbnailPath and
// CaptionPath may be empty when the respective artifact was not produced.
type Result struct {
	ID            string
	VideoPath     string
	CaptionPath   string
	ThumbnailPath string
	Duration      float64

	// Words carry the kept words re-timed against the cut clip; Transcript is
	// their joined text.
	Words      []types.WordSegment
	Transcript string

	Stages []effects.Result
}

// Processor renders clips. It is safe for concurrent use; each Process call
// owns its work directory exclusively.
type Processor struct {
	tool   ports.MediaTool
	log    zerolog.Logger
	styles captions.Registry
	frames *reframe.Compositor
	thumbs *thumbnail.Selector
	outDir string
}

// NewProcessor wires a Processor. outDir receives final artifacts and must
// exist.
func NewProcessor(tool ports.MediaTool, log zerolog.Logger, styles captions.Registry, thumbs *thumbnail.Selector, outDir string) *Processor {
	return &Processor{
		tool:   tool,
		log:    log.With().Str("component", "processor").Logger(),
		styles: styles,
		frames: reframe.New(log),
		thumbs: thumbs,
		outDir: outDir,
	}
}

// Process renders one clip into p's output directory, staging everything under
// workDir. Fatal errors abort the clip; effect-stage failures degrade and are
// reported in Result.Stages; a thumbnail failure only logs.
func (p *Processor) Process(ctx context.Context, workDir string, req Request) (*Result, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, fmt.Errorf("clip %s: %w", req.ID, err)
	}
	log := p.log.With().Str("clip", req.ID).Logger()
	log.Info().
		Float64("start", req.Bounds.Start).
		Float64("end", req.Bounds.End).
		Msg("processing clip")

	raw := filepath.Join(workDir, "raw.mp4")
	if err := p.tool.CutSegment(ctx, req.Source, req.Bounds, raw); err != nil {
		return nil, fmt.Errorf("cut clip %s: %w", req.ID, err)
	}
	info, err := p.tool.Probe(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("probe clip %s: %w", req.ID, err)
	}

	audioPath := ""
	if info.HasAudio {
		audioPath = filepath.Join(workDir, "audio.wav")
		if err := p.tool.ExtractAudio(ctx, raw, audioPath); err != nil {
			return nil, fmt.Errorf("extract audio for clip %s: %w", req.ID, err)
		}
	}

	base, err := p.composeVertical(ctx, log, workDir, raw, audioPath, req.Tracks)
	if err != nil {
		return nil, fmt.Errorf("reframe clip %s: %w", req.ID, err)
	}

	current := base
	captionSrc := ""
	cues := captions.GroupWords(captionWords(req), req.Bounds.Start, req.Bounds.End, captions.DefaultMaxWords)
	if len(cues) > 0 {
		captionSrc = filepath.Join(workDir, "captions.ass")
		doc := captions.RenderASS(cues, p.styles.Lookup(req.Options.CaptionStyle))
		if err := os.WriteFile(captionSrc, []byte(doc), 0o644); err != nil {
			return nil, fmt.Errorf("write captions for clip %s: %w", req.ID, err)
		}
		captioned := filepath.Join(workDir, "captioned.mp4")
		if err := p.tool.Apply(ctx, current, captioned, media.BurnSubtitles{Path: captionSrc}); err != nil {
			return nil, fmt.Errorf("burn captions for clip %s: %w", req.ID, err)
		}
		current = captioned
	}

	env := effects.Env{
		Tool:        p.tool,
		Log:         log,
		WorkDir:     workDir,
		Options:     req.Options,
		Segments:    req.Segments,
		Bounds:      req.Bounds,
		ZoomMoments: req.ZoomMoments,
	}
	final, stages := effects.Run(ctx, env, current)

	res := &Result{ID: req.ID, Stages: stages}
	res.VideoPath = filepath.Join(p.outDir, req.ID+".mp4")
	if err := moveFile(final, res.VideoPath); err != nil {
		return nil, fmt.Errorf("install clip %s: %w", req.ID, err)
	}
	if captionSrc != "" {
		res.CaptionPath = filepath.Join(p.outDir, req.ID+".ass")
		if err := moveFile(captionSrc, res.CaptionPath); err != nil {
			return nil, fmt.Errorf("install captions for clip %s: %w", req.ID, err)
		}
	}

	if out, err := p.tool.Probe(ctx, res.VideoPath); err == nil {
		res.Duration = out.Duration
	} else {
		log.Warn().Err(err).Msg("final probe failed, duration unknown")
	}

	thumbPath := filepath.Join(p.outDir, req.ID+".jpg")
	if err := p.thumbs.Generate(ctx, res.VideoPath, workDir, thumbPath, req.Title); err != nil {
		log.Warn().Err(err).Msg("thumbnail skipped")
	} else {
		res.ThumbnailPath = thumbPath
	}

	res.Words = remapKept(req)
	res.Transcript = joinWords(res.Words)
	log.Info().Str("video", res.VideoPath).Float64("duration", res.Duration).Msg("clip done")
	return res, nil
}

// composeVertical extracts raw frames, composites them to 1080x1920, and muxes
// them back with the clip audio.
func (p *Processor) composeVertical(ctx context.Context, log zerolog.Logger, workDir, raw, audioPath string, tracks []facetrack.Track) (string, error) {
	framesDir := filepath.Join(workDir, "frames")
	compDir := filepath.Join(workDir, "composited")
	for _, dir := range []string{framesDir, compDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	count, err := p.tool.ExtractFrames(ctx, raw, framesDir, reframe.FrameRate)
	if err != nil {
		return "", err
	}
	log.Debug().Int("frames", count).Msg("frames extracted")

	written, err := p.frames.ComposeFrames(framesDir, compDir, tracks)
	if err != nil {
		return "", err
	}
	log.Debug().Int("frames", written).Msg("frames composited")

	base := filepath.Join(workDir, "base.mp4")
	if err := p.tool.MuxFrames(ctx, compDir, reframe.FrameRate, audioPath, base); err != nil {
		return "", err
	}
	return base, nil
}

// captionWords returns the words eligible for caption cues. Filler words are
// excluded up front when the filler stage will cut them, so no cue ever shows
// a word the final audio no longer contains.
func captionWords(req Request) []types.WordSegment {
	if !req.Options.RemoveFillerWords {
		return req.Segments
	}
	out := make([]types.WordSegment, 0, len(req.Segments))
	for _, s := range req.Segments {
		if timeline.InLexicon(s.Word, timeline.FillerWords) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// remapKept produces the clip's post-cut transcript words: clip-relative,
// fillers dropped when the filler stage ran, timestamps rebased over the kept
// ranges.
func remapKept(req Request) []types.WordSegment {
	rel := make([]types.WordSegment, 0, len(req.Segments))
	for _, s := range req.Segments {
		if s.Start < req.Bounds.Start || s.End > req.Bounds.End {
			continue
		}
		keep := true
		if req.Options.RemoveFillerWords && timeline.InLexicon(s.Word, timeline.FillerWords) {
			keep = false
		}
		rel = append(rel, types.WordSegment{
			Word:  s.Word,
			Start: s.Start - req.Bounds.Start,
			End:   s.End - req.Bounds.Start,
			Keep:  keep,
		})
	}
	return timeline.RemapTimestamps(rel)
}

func joinWords(segs []types.WordSegment) string {
	words := make([]string, 0, len(segs))
	for _, s := range segs {
		words = append(words, s.Word)
	}
	return strings.Join(words, " ")
}

// moveFile renames src to dst, copying when the rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
