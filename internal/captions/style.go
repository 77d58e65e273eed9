// Package captions groups kept words into timed cues and renders them as an
// ASS document ready for burn-in.
package captions

// RGB is a caption color in standard red/green/blue order. ASS serialization
// reorders it to the format's BGR layout.
type RGB struct {
	R, G, B uint8
}

// Style is one named caption preset's rendering attributes.
type Style struct {
	Name         string
	Font         string
	Size         int
	Primary      RGB
	OutlineColor RGB
	OutlineWidth float64
	ShadowDepth  float64
}

// Registry is an explicit, immutable set of caption presets with a named
// fallback. It is passed into the subtitle engine rather than consulted as
// global state.
type Registry struct {
	styles   map[string]Style
	fallback string
}

// NewRegistry builds a registry from the given styles. The fallback name must
// be present in styles.
func NewRegistry(fallback string, styles ...Style) Registry {
	m := make(map[string]Style, len(styles))
	for _, s := range styles {
		m[s.Name] = s
	}
	if _, ok := m[fallback]; !ok {
		panic("captions: fallback style not registered: " + fallback)
	}
	return Registry{styles: m, fallback: fallback}
}

// Lookup returns the named style, or the fallback for unknown names.
func (r Registry) Lookup(name string) Style {
	if s, ok := r.styles[name]; ok {
		return s
	}
	return r.styles[r.fallback]
}

// DefaultRegistry returns the four burned-in presets. All use the Anton face;
// sizes and outline weights follow the creator-named looks.
func DefaultRegistry() Registry {
	return NewRegistry("default",
		Style{
			Name:         "default",
			Font:         "Anton",
			Size:         140,
			Primary:      RGB{255, 255, 255},
			OutlineColor: RGB{0, 0, 0},
			OutlineWidth: 2.0,
			ShadowDepth:  2.0,
		},
		Style{
			Name:         "mrbeast",
			Font:         "Anton",
			Size:         160,
			Primary:      RGB{255, 255, 0},
			OutlineColor: RGB{0, 0, 0},
			OutlineWidth: 4.0,
			ShadowDepth:  3.0,
		},
		Style{
			Name:         "hormozi",
			Font:         "Anton",
			Size:         150,
			Primary:      RGB{255, 255, 255},
			OutlineColor: RGB{255, 0, 0},
			OutlineWidth: 3.0,
			ShadowDepth:  2.0,
		},
		Style{
			Name:         "aliabdaal",
			Font:         "Anton",
			Size:         120,
			Primary:      RGB{255, 255, 255},
			OutlineColor: RGB{50, 50, 50},
			OutlineWidth: 1.5,
			ShadowDepth:  1.0,
		},
	)
}
