package types

import "fmt"

// WordSegment is one aligned transcript word with a keep/drop flag used by
// re-editing. Times are in seconds and may be absolute source-video seconds or
// clip-relative seconds depending on where the segment sits in the pipeline.
type WordSegment struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Keep  bool    `json:"keep"`
}

// Duration returns the word's span length in seconds.
func (w WordSegment) Duration() float64 { return w.End - w.Start }

// Span is a time interval in seconds. Spans produced by the timeline package
// are disjoint and sorted by Start.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the span length in seconds.
func (s Span) Duration() float64 { return s.End - s.Start }

// ClipBounds locates a clip inside the source video, in absolute seconds.
type ClipBounds struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the clip length in seconds.
func (b ClipBounds) Duration() float64 { return b.End - b.Start }

// ZoomMoment is an externally produced hint for the zoom stage, in
// clip-relative seconds. Overlapping moments are max-combined.
type ZoomMoment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// CaptionCue is one timed subtitle line, clip-relative.
type CaptionCue struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transition styles accepted by the transition stage. Wipe and slide currently
// degrade to the fade behavior; the names are kept distinct on purpose.
const (
	TransitionFade  = "fade"
	TransitionWipe  = "wipe"
	TransitionSlide = "slide"
	TransitionNone  = "none"
)

// EffectOptions configures one clip's pass through the effect pipeline. It is
// consumed read-only; the pipeline never mutates it.
type EffectOptions struct {
	RemoveSilences    bool    `toml:"remove_silences" json:"remove_silences"`
	RemoveFillerWords bool    `toml:"remove_filler_words" json:"remove_filler_words"`
	TransitionStyle   string  `toml:"transition_style" json:"transition_style"`
	AutoZoom          bool    `toml:"auto_zoom" json:"auto_zoom"`
	ZoomIntensity     float64 `toml:"zoom_intensity" json:"zoom_intensity"`
	AutoCensor        bool    `toml:"auto_censor" json:"auto_censor"`
	CaptionStyle      string  `toml:"caption_style" json:"caption_style"`
}

// DefaultEffectOptions mirrors the defaults of the processing request model.
func DefaultEffectOptions() EffectOptions {
	return EffectOptions{
		RemoveSilences:    true,
		RemoveFillerWords: true,
		TransitionStyle:   TransitionFade,
		AutoZoom:          true,
		ZoomIntensity:     1.5,
		AutoCensor:        false,
		CaptionStyle:      "default",
	}
}

// Validate checks option values that have a bounded domain.
func (o EffectOptions) Validate() error {
	switch o.TransitionStyle {
	case TransitionFade, TransitionWipe, TransitionSlide, TransitionNone:
	default:
		return fmt.Errorf("unknown transition style %q", o.TransitionStyle)
	}
	if o.AutoZoom && (o.ZoomIntensity < 1.2 || o.ZoomIntensity > 2.0) {
		return fmt.Errorf("zoom intensity %.2f out of range [1.2, 2.0]", o.ZoomIntensity)
	}
	return nil
}
