package media

import (
	"strings"
	"testing"

	"vertcut/internal/types"
)

func TestSelectCut_Filters(t *testing.T) {
	c := SelectCut{Keep: []types.Span{{Start: 0, End: 10}, {Start: 10.3, End: 40}}}
	spec := c.Filters()
	wantV := "select='between(t,0.000,10.000)+between(t,10.300,40.000)',setpts=N/FRAME_RATE/TB"
	if spec.Video != wantV {
		t.Errorf("video filter\n got %q\nwant %q", spec.Video, wantV)
	}
	wantA := "aselect='between(t,0.000,10.000)+between(t,10.300,40.000)',asetpts=N/SR/TB"
	if spec.Audio != wantA {
		t.Errorf("audio filter\n got %q\nwant %q", spec.Audio, wantA)
	}
	if spec.CopyVideo || spec.CopyAudio {
		t.Error("select cut re-encodes both streams")
	}
}

func TestZoomPan_MaxCombinesOverlaps(t *testing.T) {
	z := ZoomPan{
		Moments:   []types.ZoomMoment{{Start: 5, End: 8}, {Start: 7, End: 10}},
		Intensity: 1.8,
		Width:     1080,
		Height:    1920,
		FPS:       25,
	}
	spec := z.Filters()
	if !strings.Contains(spec.Video, "max(if(between(t,5,8),1.8,1),if(between(t,7,10),1.8,1))") {
		t.Errorf("zoom expr missing max combine: %q", spec.Video)
	}
	if !strings.Contains(spec.Video, "s=1080x1920") || !strings.Contains(spec.Video, "fps=25") {
		t.Errorf("zoompan geometry missing: %q", spec.Video)
	}
	if !spec.CopyAudio {
		t.Error("zoom must not touch audio")
	}

	single := ZoomPan{Moments: []types.ZoomMoment{{Start: 1, End: 2}}, Intensity: 1.5, Width: 1080, Height: 1920, FPS: 25}
	if strings.Contains(single.Filters().Video, "max(") {
		t.Error("single moment needs no max()")
	}
}

func TestFade_Filters(t *testing.T) {
	f := Fade{Style: types.TransitionFade, FadeDuration: 0.3, ClipDuration: 39.7}
	spec := f.Filters()
	if !strings.Contains(spec.Video, "fade=t=in:st=0:d=0.3") {
		t.Errorf("fade in missing: %q", spec.Video)
	}
	if !strings.Contains(spec.Video, "fade=t=out:st=39.4:d=0.3") {
		t.Errorf("fade out start wrong: %q", spec.Video)
	}
	if !strings.Contains(spec.Audio, "afade=t=out:st=39.4:d=0.3") {
		t.Errorf("audio fade wrong: %q", spec.Audio)
	}

	// Wipe and slide degrade to the same chain for now.
	w := Fade{Style: types.TransitionWipe, FadeDuration: 0.3, ClipDuration: 39.7}
	if w.Filters() != spec {
		t.Error("wipe must render the fade chain")
	}
}

func TestMuteSpans_Filters(t *testing.T) {
	m := MuteSpans{Spans: []types.Span{{Start: 1.5, End: 2}, {Start: 8, End: 8.4}}}
	spec := m.Filters()
	want := "volume=enable='between(t,1.5,2)':volume=0,volume=enable='between(t,8,8.4)':volume=0"
	if spec.Audio != want {
		t.Errorf("mute chain\n got %q\nwant %q", spec.Audio, want)
	}
	if !spec.CopyVideo {
		t.Error("censor leaves video untouched")
	}

	if got := (MuteSpans{}).Filters().Audio; got != "anull" {
		t.Errorf("empty mute should be anull, got %q", got)
	}
}

func TestSilenceRemove_Filters(t *testing.T) {
	s := SilenceRemove{ThresholdDB: -50, MinDuration: 0.5}
	spec := s.Filters()
	want := "silenceremove=stop_periods=-1:stop_duration=0.5:stop_threshold=-50dB"
	if spec.Audio != want {
		t.Errorf("got %q, want %q", spec.Audio, want)
	}
}

func TestBurnSubtitles_EscapesPath(t *testing.T) {
	b := BurnSubtitles{Path: "/tmp/o'brien:1/subs.ass"}
	spec := b.Filters()
	want := `ass=/tmp/o\'brien\:1/subs.ass`
	if spec.Video != want {
		t.Errorf("got %q, want %q", spec.Video, want)
	}
}

func TestParseSilenceDetect(t *testing.T) {
	log := `
[silencedetect @ 0x55] silence_start: 3.21
[silencedetect @ 0x55] silence_end: 4.5 | silence_duration: 1.29
[silencedetect @ 0x55] silence_start: 12.0
`
	spans := ParseSilenceDetect(log, 15.0)
	if len(spans) != 2 {
		t.Fatalf("got %v, want 2 spans", spans)
	}
	if spans[0] != (types.Span{Start: 3.21, End: 4.5}) {
		t.Errorf("first span %v", spans[0])
	}
	// Unclosed trailing silence runs to the clip end.
	if spans[1] != (types.Span{Start: 12.0, End: 15.0}) {
		t.Errorf("trailing span %v", spans[1])
	}

	if got := ParseSilenceDetect("no silence here", 10); len(got) != 0 {
		t.Errorf("expected no spans, got %v", got)
	}
}
