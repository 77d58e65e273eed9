// Package thumbnail picks the most striking frame of a finished clip and
// optionally stamps a title on it.
package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"vertcut/internal/ports"
)

// ErrNoFrame reports that no candidate frame could be extracted or decoded.
// Callers treat it as soft: the clip ships without a thumbnail.
var ErrNoFrame = errors.New("no thumbnail frame available")

// positions are the sampled fractions of the clip duration.
var positions = []float64{0.10, 0.25, 0.50, 0.75, 0.90}

// brightnessWeight mildly rewards brighter frames on top of contrast.
const brightnessWeight = 0.5

// maxTitleRunes caps the overlay text length.
const maxTitleRunes = 50

// Selector extracts, scores, and annotates thumbnail candidates.
type Selector struct {
	tool     ports.MediaTool
	log      zerolog.Logger
	fontPath string
}

// New builds a Selector. fontPath may be empty; overlay then uses a built-in
// bitmap face.
func New(tool ports.MediaTool, log zerolog.Logger, fontPath string) *Selector {
	return &Selector{
		tool:     tool,
		log:      log.With().Str("component", "thumbnail").Logger(),
		fontPath: fontPath,
	}
}

// Generate samples the clip at five fixed positions, keeps the highest-scored
// frame, overlays the title when given, and writes the result to outPath.
// workDir receives candidate stills. Returns ErrNoFrame when nothing decoded.
func (s *Selector) Generate(ctx context.Context, video, workDir, outPath, title string) error {
	info, err := s.tool.Probe(ctx, video)
	if err != nil {
		return fmt.Errorf("probe for thumbnail: %w", err)
	}

	var best image.Image
	bestScore := math.Inf(-1)
	for i, pos := range positions {
		framePath := filepath.Join(workDir, fmt.Sprintf("thumb_%d.jpg", i))
		if err := s.tool.ExtractFrameAt(ctx, video, pos*info.Duration, framePath); err != nil {
			s.log.Debug().Err(err).Float64("position", pos).Msg("candidate extraction failed")
			continue
		}
		img, err := imaging.Open(framePath)
		if err != nil {
			s.log.Debug().Err(err).Str("frame", framePath).Msg("candidate decode failed")
			continue
		}
		if score := Score(img); score > bestScore {
			bestScore = score
			best = img
		}
	}
	if best == nil {
		return ErrNoFrame
	}

	out := imaging.Clone(best)
	if title != "" {
		s.overlayTitle(out, truncateRunes(title, maxTitleRunes))
	}
	if err := imaging.Save(out, outPath, imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("save thumbnail: %w", err)
	}
	return nil
}

// Score rates a frame as gray-intensity stddev plus half the mean: contrast
// first, brightness as a tiebreak.
func Score(img image.Image) float64 {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	pixels := float64(bounds.Dx() * bounds.Dy())
	if pixels == 0 {
		return 0
	}

	var sum, sqSum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Grayscale output has equal channels; red carries the intensity.
			v := float64(gray.NRGBAAt(x, y).R)
			sum += v
			sqSum += v * v
		}
	}
	mean := sum / pixels
	variance := sqSum/pixels - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance) + brightnessWeight*mean
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
