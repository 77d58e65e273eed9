package thumbnail

import (
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	overlaySize = 64.0
	// Distance between the text baseline and the bottom edge.
	baselineMargin = 100
)

// outlineOffsets trace the eight neighbours for a poor man's text outline.
var outlineOffsets = [][2]int{
	{-2, -2}, {0, -2}, {2, -2},
	{-2, 0}, {2, 0},
	{-2, 2}, {0, 2}, {2, 2},
}

// overlayTitle burns the title near the bottom of dst, dark outline under a
// light fill so it stays readable on any background.
func (s *Selector) overlayTitle(dst *image.NRGBA, title string) {
	face := s.loadFace()
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{A: 255}),
		Face: face,
	}
	width := d.MeasureString(title)
	x := (fixed.I(dst.Bounds().Dx()) - width) / 2
	if x < 0 {
		x = 0
	}
	y := fixed.I(dst.Bounds().Dy() - baselineMargin)

	for _, off := range outlineOffsets {
		d.Dot = fixed.Point26_6{X: x + fixed.I(off[0]), Y: y + fixed.I(off[1])}
		d.DrawString(title)
	}
	d.Src = image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(title)
}

// loadFace parses the configured font file, falling back to the built-in
// bitmap face when the file is missing or malformed.
func (s *Selector) loadFace() font.Face {
	if s.fontPath == "" {
		return basicfont.Face7x13
	}
	data, err := os.ReadFile(s.fontPath)
	if err != nil {
		s.log.Warn().Err(err).Str("font", s.fontPath).Msg("font unavailable, using builtin face")
		return basicfont.Face7x13
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		s.log.Warn().Err(err).Str("font", s.fontPath).Msg("font parse failed, using builtin face")
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    overlaySize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("font", s.fontPath).Msg("face build failed, using builtin face")
		return basicfont.Face7x13
	}
	return face
}
