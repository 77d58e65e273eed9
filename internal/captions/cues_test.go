package captions

import (
	"fmt"
	"strings"
	"testing"

	"vertcut/internal/types"
)

func wordRun(n int, startAt, wordDur float64) []types.WordSegment {
	segs := make([]types.WordSegment, n)
	t := startAt
	for i := range segs {
		segs[i] = types.WordSegment{
			Word:  fmt.Sprintf("w%d", i),
			Start: t,
			End:   t + wordDur,
			Keep:  true,
		}
		t += wordDur
	}
	return segs
}

func TestGroupWords_TwelveWordsSplitFiveFiveTwo(t *testing.T) {
	segs := wordRun(12, 0, 0.4)
	cues := GroupWords(segs, 0, 100, 5)
	if len(cues) != 3 {
		t.Fatalf("got %d cues, want 3", len(cues))
	}
	counts := []int{5, 5, 2}
	for i, c := range cues {
		if got := len(strings.Fields(c.Text)); got != counts[i] {
			t.Errorf("cue %d has %d words, want %d (%q)", i, got, counts[i], c.Text)
		}
	}
	// Contiguous grouping: each cue ends exactly where the next begins because
	// the underlying words are back to back.
	for i := 1; i < len(cues); i++ {
		if cues[i].Start != cues[i-1].End {
			t.Errorf("gap between cue %d and %d: %.3f vs %.3f", i-1, i, cues[i-1].End, cues[i].Start)
		}
	}
	if cues[0].Start != 0 {
		t.Errorf("first cue starts at %.3f, want 0", cues[0].Start)
	}
}

func TestGroupWords_ClipRelativeAndBounds(t *testing.T) {
	segs := []types.WordSegment{
		{Word: "before", Start: 1.0, End: 1.5},
		{Word: "in", Start: 10.0, End: 10.5},
		{Word: "range", Start: 10.5, End: 11.0},
		{Word: "after", Start: 42.0, End: 42.5},
	}
	cues := GroupWords(segs, 10.0, 40.0, 5)
	if len(cues) != 1 {
		t.Fatalf("got %v, want a single cue", cues)
	}
	if cues[0].Text != "in range" {
		t.Errorf("cue text %q", cues[0].Text)
	}
	if cues[0].Start != 0 || cues[0].End != 1.0 {
		t.Errorf("cue not clip-relative: [%.2f, %.2f]", cues[0].Start, cues[0].End)
	}
}

func TestGroupWords_SkipsEmptyWordsAndDefaultsCap(t *testing.T) {
	segs := []types.WordSegment{
		{Word: "  ", Start: 0, End: 0.2},
		{Word: "hi", Start: 0.2, End: 0.4},
	}
	cues := GroupWords(segs, 0, 10, 0)
	if len(cues) != 1 || cues[0].Text != "hi" {
		t.Fatalf("got %v", cues)
	}
}

func TestRegistry_LookupAndFallback(t *testing.T) {
	reg := DefaultRegistry()

	mb := reg.Lookup("mrbeast")
	if mb.Size != 160 {
		t.Errorf("mrbeast size %d, want 160", mb.Size)
	}
	if mb.Primary != (RGB{255, 255, 0}) {
		t.Errorf("mrbeast primary %v, want yellow", mb.Primary)
	}

	unknown := reg.Lookup("does-not-exist")
	if unknown.Name != "default" {
		t.Errorf("unknown style resolved to %q, want default", unknown.Name)
	}
	if unknown.Size != 140 {
		t.Errorf("default size %d, want 140", unknown.Size)
	}
}

func TestRenderASS_StyleAndEvents(t *testing.T) {
	reg := DefaultRegistry()
	cues := []types.CaptionCue{
		{Text: "hello {world}", Start: 0, End: 1.5},
		{Text: "again", Start: 1.5, End: 2},
	}
	doc := RenderASS(cues, reg.Lookup("mrbeast"))

	for _, want := range []string{
		"PlayResX: 1080",
		"PlayResY: 1920",
		"Style: mrbeast,Anton,160,&H0000FFFF,", // yellow in BGR
		"Dialogue: 0,0:00:00.00,0:00:01.50,mrbeast,,0,0,0,,hello (world)",
		"Dialogue: 0,0:00:01.50,0:00:02.00,mrbeast,,0,0,0,,again",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestAssTime(t *testing.T) {
	cases := map[float64]string{
		0:       "0:00:00.00",
		1.5:     "0:00:01.50",
		61.25:   "0:01:01.25",
		3600.01: "1:00:00.01",
		-1:      "0:00:00.00",
	}
	for in, want := range cases {
		if got := assTime(in); got != want {
			t.Errorf("assTime(%v) = %q, want %q", in, got, want)
		}
	}
}
