// Package reframe builds the vertical base video: for every clip frame it
// either crops around the active speaker or letterboxes the frame over a
// blurred copy of itself.
package reframe

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"vertcut/internal/facetrack"
)

// ErrNoFrames reports a run where not a single frame could be composited.
// There is no usable output; the clip must fail.
var ErrNoFrames = errors.New("no frames composited")

// Output geometry is fixed: 9:16 vertical at 25 fps. The rate is never probed
// from the source so caption timing downstream stays exact.
const (
	TargetWidth  = 1080
	TargetHeight = 1920
	FrameRate    = 25

	// blurSigma wipes out background detail roughly like a 121-tap Gaussian.
	blurSigma = 20.0
)

// Mode is the per-frame composition decision.
type Mode int

const (
	// ModeCrop centers a full-height crop on the active face.
	ModeCrop Mode = iota
	// ModeBlur centers the width-fit frame over a blurred background fill.
	ModeBlur
)

// Decide picks the frame's anchor and composition mode from its smoothed
// candidates.
func Decide(cands []facetrack.Candidate) (facetrack.Candidate, Mode) {
	if anchor, ok := facetrack.SelectAnchor(cands); ok {
		return anchor, ModeCrop
	}
	return facetrack.Candidate{}, ModeBlur
}

// Compositor renders extracted clip frames into vertical composites.
type Compositor struct {
	log zerolog.Logger
}

// New builds a Compositor.
func New(log zerolog.Logger) *Compositor {
	return &Compositor{log: log.With().Str("component", "reframe").Logger()}
}

// ComposeFrames reads every JPEG in framesDir in name order, composites it
// per the matching frame's candidates, and writes the result under the same
// name in outDir. Frames that fail to decode are skipped. Returns the number
// of frames written, or ErrNoFrames when none were.
func (c *Compositor) ComposeFrames(framesDir, outDir string, tracks []facetrack.Track) (int, error) {
	files, err := filepath.Glob(filepath.Join(framesDir, "*.jpg"))
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	candidates := facetrack.BuildFrameCandidates(tracks, len(files))

	written := 0
	for i, path := range files {
		img, err := imaging.Open(path)
		if err != nil {
			c.log.Warn().Err(err).Str("frame", path).Msg("frame decode failed, skipping")
			continue
		}

		anchor, mode := Decide(candidates[i])
		var composed *image.NRGBA
		if mode == ModeCrop {
			composed = composeCrop(img, anchor)
		} else {
			composed = composeBlur(img)
		}

		outPath := filepath.Join(outDir, filepath.Base(path))
		if err := imaging.Save(composed, outPath, imaging.JPEGQuality(92)); err != nil {
			return written, fmt.Errorf("save composited frame: %w", err)
		}
		written++
	}

	if written == 0 {
		return 0, ErrNoFrames
	}
	return written, nil
}

// composeCrop scales the frame to target height and crops a target-width
// window centered on the face, clamped to the frame.
func composeCrop(img image.Image, anchor facetrack.Candidate) *image.NRGBA {
	scale := float64(TargetHeight) / float64(img.Bounds().Dy())
	resized := imaging.Resize(img, 0, TargetHeight, imaging.Lanczos)
	frameWidth := resized.Bounds().Dx()

	centerX := int(anchor.X * scale)
	topX := centerX - TargetWidth/2
	if topX > frameWidth-TargetWidth {
		topX = frameWidth - TargetWidth
	}
	if topX < 0 {
		topX = 0
	}

	cropped := imaging.Crop(resized, image.Rect(topX, 0, topX+TargetWidth, TargetHeight))
	if cropped.Bounds().Dx() < TargetWidth {
		// Source narrower than the target window: fall back to a canvas fit.
		canvas := imaging.New(TargetWidth, TargetHeight, color.NRGBA{A: 255})
		return imaging.PasteCenter(canvas, cropped)
	}
	return cropped
}

// composeBlur fits the frame to target width and centers it over a blurred,
// cover-scaled, center-cropped copy of itself.
func composeBlur(img image.Image) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	scaled := imaging.Resize(img, TargetWidth, 0, imaging.Lanczos)

	scaleBG := maxf(float64(TargetWidth)/float64(w), float64(TargetHeight)/float64(h))
	bg := imaging.Resize(img, int(float64(w)*scaleBG+0.5), int(float64(h)*scaleBG+0.5), imaging.Lanczos)
	bg = imaging.Blur(bg, blurSigma)
	bg = imaging.CropCenter(bg, TargetWidth, TargetHeight)

	centerY := (TargetHeight - scaled.Bounds().Dy()) / 2
	if centerY < 0 {
		centerY = 0
	}
	return imaging.Paste(bg, scaled, image.Pt(0, centerY))
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
