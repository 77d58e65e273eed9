// Package media defines typed transform descriptors consumed by the ffmpeg
// adapter. Descriptors render filter expressions as pure functions so the
// parameter construction is testable without spawning a process.
package media

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"vertcut/internal/types"
)

// FilterSpec is the rendered form of a transform: at most one video and one
// audio filter chain, with copy flags for the untouched stream.
type FilterSpec struct {
	Video     string
	Audio     string
	CopyVideo bool
	CopyAudio bool
}

// Transform is a typed media operation the adapter can apply to a file.
type Transform interface {
	Filters() FilterSpec
}

// SelectCut keeps only the given clip-relative spans of both streams,
// rebasing timestamps so the output plays gaplessly.
type SelectCut struct {
	Keep []types.Span
}

// Filters renders select/aselect expressions with PTS rebasing.
func (c SelectCut) Filters() FilterSpec {
	expr := betweenSum(c.Keep)
	return FilterSpec{
		Video: fmt.Sprintf("select='%s',setpts=N/FRAME_RATE/TB", expr),
		Audio: fmt.Sprintf("aselect='%s',asetpts=N/SR/TB", expr),
	}
}

// SilenceRemove drops spans where audio stays below ThresholdDB for at least
// MinDuration seconds. Only the audio filter is rendered; the silence stage
// normally cuts both streams with SelectCut and falls back to this descriptor
// when the clip duration cannot be probed.
type SilenceRemove struct {
	ThresholdDB float64
	MinDuration float64
}

// Filters renders the silenceremove chain.
func (s SilenceRemove) Filters() FilterSpec {
	return FilterSpec{
		Audio: fmt.Sprintf("silenceremove=stop_periods=-1:stop_duration=%s:stop_threshold=%sdB",
			ff(s.MinDuration), ff(s.ThresholdDB)),
		CopyVideo: true,
	}
}

// ZoomPan magnifies the frame during each moment. Overlapping moments combine
// through max() so competing zooms never fight.
type ZoomPan struct {
	Moments   []types.ZoomMoment
	Intensity float64
	Width     int
	Height    int
	FPS       int
}

// Filters renders the zoompan chain centered on the frame.
func (z ZoomPan) Filters() FilterSpec {
	return FilterSpec{
		Video: fmt.Sprintf("zoompan=z='%s':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=1:s=%dx%d:fps=%d",
			z.zoomExpr(), z.Width, z.Height, z.FPS),
		CopyAudio: true,
	}
}

func (z ZoomPan) zoomExpr() string {
	parts := make([]string, 0, len(z.Moments))
	for _, m := range z.Moments {
		parts = append(parts, fmt.Sprintf("if(between(t,%s,%s),%s,1)", ff(m.Start), ff(m.End), ff(z.Intensity)))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return fmt.Sprintf("max(%s)", strings.Join(parts, ","))
}

// Fade applies an alpha fade at clip start and end on both streams. Wipe and
// slide styles currently render the same fade chain; the Style field keeps
// the option distinct for when they grow their own looks.
type Fade struct {
	Style        string
	FadeDuration float64
	ClipDuration float64
}

// Filters renders fade/afade in and out.
func (f Fade) Filters() FilterSpec {
	outStart := f.ClipDuration - f.FadeDuration
	if outStart < 0 {
		outStart = 0
	}
	return FilterSpec{
		Video: fmt.Sprintf("fade=t=in:st=0:d=%s,fade=t=out:st=%s:d=%s",
			ff(f.FadeDuration), ff(outStart), ff(f.FadeDuration)),
		Audio: fmt.Sprintf("afade=t=in:st=0:d=%s,afade=t=out:st=%s:d=%s",
			ff(f.FadeDuration), ff(outStart), ff(f.FadeDuration)),
	}
}

// MuteSpans silences audio during each span, leaving video untouched.
type MuteSpans struct {
	Spans []types.Span
}

// Filters renders chained volume=0 gates.
func (m MuteSpans) Filters() FilterSpec {
	parts := make([]string, 0, len(m.Spans))
	for _, sp := range m.Spans {
		parts = append(parts, fmt.Sprintf("volume=enable='between(t,%s,%s)':volume=0", ff(sp.Start), ff(sp.End)))
	}
	audio := "anull"
	if len(parts) > 0 {
		audio = strings.Join(parts, ",")
	}
	return FilterSpec{Audio: audio, CopyVideo: true}
}

// BurnSubtitles composites an ASS file onto the video stream.
type BurnSubtitles struct {
	Path string
}

// Filters renders the ass filter with an escaped path.
func (s BurnSubtitles) Filters() FilterSpec {
	return FilterSpec{
		Video:     "ass=" + escapeFilterPath(s.Path),
		CopyAudio: true,
	}
}

func betweenSum(spans []types.Span) string {
	parts := make([]string, 0, len(spans))
	for _, sp := range spans {
		parts = append(parts, fmt.Sprintf("between(t,%.3f,%.3f)", sp.Start, sp.End))
	}
	return strings.Join(parts, "+")
}

// ff formats a float the way ffmpeg expressions expect: no exponent, no
// trailing zeros. Values are rounded to millisecond precision first so
// derived times like clipDuration-fadeDuration render canonically.
func ff(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	p = strings.ReplaceAll(p, "'", "\\'")
	return p
}
