package captions

import (
	"fmt"
	"strconv"
	"strings"

	"vertcut/internal/types"
)

// Play resolution matches the vertical output canvas so font sizes and margins
// land where the presets expect them.
const (
	playResX = 1080
	playResY = 1920
)

// RenderASS produces a complete ASS document for the cues in the given style.
// Events reference a single style named after the preset.
func RenderASS(cues []types.CaptionCue, style Style) string {
	var b strings.Builder

	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	b.WriteString("WrapStyle: 0\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", playResX)
	fmt.Fprintf(&b, "PlayResY: %d\n", playResY)
	b.WriteString("ScaledBorderAndShadow: yes\n")

	b.WriteString("\n[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b, "Style: %s,%s,%d,%s,&H000000FF,%s,&H80000000,0,0,0,0,100,100,0,0,1,%s,%s,2,50,50,50,1\n",
		styleName(style),
		style.Font,
		style.Size,
		assColor(style.Primary),
		assColor(style.OutlineColor),
		trimFloat(style.OutlineWidth),
		trimFloat(style.ShadowDepth),
	)

	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, c := range cues {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			assTime(c.Start), assTime(c.End), styleName(style), sanitizeASS(c.Text))
	}
	return b.String()
}

func styleName(s Style) string {
	if s.Name == "" {
		return "Default"
	}
	return s.Name
}

// assColor serializes to the format's &HAABBGGRR layout with zero alpha.
func assColor(c RGB) string {
	return fmt.Sprintf("&H00%02X%02X%02X", c.B, c.G, c.R)
}

func assTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	cs := int(sec*100 + 0.5)
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}
