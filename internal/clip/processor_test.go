package clip

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"vertcut/internal/captions"
	"vertcut/internal/media"
	"vertcut/internal/ports"
	"vertcut/internal/reframe"
	"vertcut/internal/thumbnail"
	"vertcut/internal/timeline"
	"vertcut/internal/types"
)

type appliedCall struct {
	in, out string
	tf      media.Transform
}

// fakeTool materializes every artifact as either a stub file or, where the
// pipeline decodes pixels, a real tiny JPEG.
type fakeTool struct {
	hasAudio   bool
	duration   float64
	frameCount int

	audioCalls []string
	muxAudio   []string
	applied    []appliedCall
}

func (f *fakeTool) Probe(context.Context, string) (media.Info, error) {
	return media.Info{
		Duration: f.duration,
		Width:    1080,
		Height:   1920,
		FPS:      reframe.FrameRate,
		HasAudio: f.hasAudio,
	}, nil
}

func (f *fakeTool) CutSegment(_ context.Context, _ string, _ types.ClipBounds, out string) error {
	return os.WriteFile(out, []byte("raw"), 0o644)
}

func (f *fakeTool) ExtractAudio(_ context.Context, _, outWav string) error {
	f.audioCalls = append(f.audioCalls, outWav)
	return os.WriteFile(outWav, []byte("wav"), 0o644)
}

func (f *fakeTool) ExtractFrames(_ context.Context, _, outDir string, _ int) (int, error) {
	img := imaging.New(64, 64, color.NRGBA{R: 90, G: 120, B: 60, A: 255})
	for i := 1; i <= f.frameCount; i++ {
		path := filepath.Join(outDir, fmt.Sprintf("%06d.jpg", i))
		if err := imaging.Save(img, path); err != nil {
			return 0, err
		}
	}
	return f.frameCount, nil
}

func (f *fakeTool) ExtractFrameAt(_ context.Context, _ string, _ float64, outJPEG string) error {
	return imaging.Save(imaging.New(32, 32, color.NRGBA{R: 200, A: 255}), outJPEG)
}

func (f *fakeTool) MuxFrames(_ context.Context, _ string, _ int, audioPath, out string) error {
	f.muxAudio = append(f.muxAudio, audioPath)
	return os.WriteFile(out, []byte("muxed"), 0o644)
}

func (f *fakeTool) Apply(_ context.Context, in, out string, tf media.Transform) error {
	f.applied = append(f.applied, appliedCall{in: in, out: out, tf: tf})
	return os.WriteFile(out, []byte("transformed"), 0o644)
}

func (f *fakeTool) DetectSilence(context.Context, string, float64, float64) ([]types.Span, error) {
	return nil, nil
}

var _ ports.MediaTool = (*fakeTool)(nil)

func near(got, want float64) bool {
	d := got - want
	return d > -1e-9 && d < 1e-9
}

func newTestProcessor(t *testing.T, tool *fakeTool) (*Processor, string) {
	t.Helper()
	outDir := t.TempDir()
	log := zerolog.Nop()
	thumbs := thumbnail.New(tool, log, "")
	return NewProcessor(tool, log, captions.DefaultRegistry(), thumbs, outDir), outDir
}

func fillerRequest() Request {
	return Request{
		ID:     "clip1",
		Source: "source.mp4",
		Bounds: types.ClipBounds{Start: 10, End: 22.5},
		Title:  "Ship day",
		Segments: []types.WordSegment{
			{Word: "um", Start: 10.5, End: 10.8, Keep: true},
			{Word: "today", Start: 11.0, End: 11.5, Keep: true},
			{Word: "we", Start: 11.6, End: 11.8, Keep: true},
			{Word: "ship", Start: 12.0, End: 12.4, Keep: true},
		},
		Options: types.EffectOptions{
			RemoveFillerWords: true,
			TransitionStyle:   types.TransitionNone,
			CaptionStyle:      "default",
		},
	}
}

func TestProcessFillerRemoval(t *testing.T) {
	tool := &fakeTool{hasAudio: true, duration: 12.5, frameCount: 2}
	proc, outDir := newTestProcessor(t, tool)

	res, err := proc.Process(context.Background(), t.TempDir(), fillerRequest())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if res.VideoPath != filepath.Join(outDir, "clip1.mp4") {
		t.Fatalf("video path %q", res.VideoPath)
	}
	if _, err := os.Stat(res.VideoPath); err != nil {
		t.Fatalf("final video missing: %v", err)
	}
	if res.ThumbnailPath == "" {
		t.Fatalf("expected a thumbnail")
	}

	// Captions: burned once, filler word absent from the track.
	if res.CaptionPath == "" {
		t.Fatalf("expected a caption track")
	}
	ass, err := os.ReadFile(res.CaptionPath)
	if err != nil {
		t.Fatalf("read captions: %v", err)
	}
	if strings.Contains(string(ass), "um") {
		t.Fatalf("caption track contains filler word:\n%s", ass)
	}
	var burns, cuts int
	for _, call := range tool.applied {
		switch tf := call.tf.(type) {
		case media.BurnSubtitles:
			burns++
		case media.SelectCut:
			cuts++
			if len(tf.Keep) != 2 || !near(tf.Keep[0].End, 0.5) || !near(tf.Keep[1].Start, 0.8) {
				t.Fatalf("filler keep spans = %+v", tf.Keep)
			}
		}
	}
	if burns != 1 || cuts != 1 {
		t.Fatalf("burns = %d, cuts = %d, want 1 and 1", burns, cuts)
	}

	// Remapped transcript: fillers gone, times rebased from zero.
	if res.Transcript != "today we ship" {
		t.Fatalf("transcript = %q", res.Transcript)
	}
	if res.Words[0].Start != 0 || !near(res.Words[0].End, 0.5) {
		t.Fatalf("first remapped word = %+v", res.Words[0])
	}
	if len(res.Stages) != 5 {
		t.Fatalf("stage results = %d, want 5", len(res.Stages))
	}
}

func TestProcessNoAudio(t *testing.T) {
	tool := &fakeTool{hasAudio: false, duration: 12.5, frameCount: 2}
	proc, _ := newTestProcessor(t, tool)

	if _, err := proc.Process(context.Background(), t.TempDir(), fillerRequest()); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(tool.audioCalls) != 0 {
		t.Fatalf("audio extracted for silent source: %v", tool.audioCalls)
	}
	if len(tool.muxAudio) != 1 || tool.muxAudio[0] != "" {
		t.Fatalf("mux audio args = %v, want one empty", tool.muxAudio)
	}
}

func TestProcessNoFramesFatal(t *testing.T) {
	tool := &fakeTool{hasAudio: true, duration: 12.5, frameCount: 0}
	proc, _ := newTestProcessor(t, tool)

	_, err := proc.Process(context.Background(), t.TempDir(), fillerRequest())
	if !errors.Is(err, reframe.ErrNoFrames) {
		t.Fatalf("err = %v, want ErrNoFrames", err)
	}
}

func TestEditRecutsAndRetimes(t *testing.T) {
	tool := &fakeTool{hasAudio: true, duration: 2.8}
	proc, outDir := newTestProcessor(t, tool)
	src := filepath.Join(t.TempDir(), "rendered.mp4")
	if err := os.WriteFile(src, []byte("clip"), 0o644); err != nil {
		t.Fatal(err)
	}

	req := EditRequest{
		ID:     "edit1",
		Source: src,
		Segments: []types.WordSegment{
			{Word: "keep", Start: 0, End: 1, Keep: true},
			{Word: "this", Start: 1.05, End: 2, Keep: true},
			{Word: "not", Start: 2.5, End: 3, Keep: false},
			{Word: "final", Start: 3.2, End: 4, Keep: true},
		},
		Options: types.EffectOptions{
			TransitionStyle: types.TransitionFade,
			CaptionStyle:    "default",
		},
	}
	res, err := proc.Edit(context.Background(), t.TempDir(), req)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	var cut media.SelectCut
	var fades int
	for _, call := range tool.applied {
		switch tf := call.tf.(type) {
		case media.SelectCut:
			cut = tf
		case media.Fade:
			fades++
			if !near(tf.ClipDuration, 2.8) {
				t.Fatalf("fade clip duration = %v", tf.ClipDuration)
			}
		}
	}
	// Sub-0.1s gap merges the first two words into one range.
	if len(cut.Keep) != 2 || cut.Keep[0].End != 2 || cut.Keep[1].Start != 3.2 {
		t.Fatalf("recut spans = %+v", cut.Keep)
	}
	if fades != 1 {
		t.Fatalf("fades = %d, want 1", fades)
	}
	if res.Transcript != "keep this final" {
		t.Fatalf("transcript = %q", res.Transcript)
	}
	if !near(res.Words[2].Start, 1.95) {
		t.Fatalf("final word start = %v, want 1.95", res.Words[2].Start)
	}
	if res.VideoPath != filepath.Join(outDir, "edit1.mp4") {
		t.Fatalf("video path %q", res.VideoPath)
	}
}

func TestEditNothingKept(t *testing.T) {
	tool := &fakeTool{duration: 1}
	proc, _ := newTestProcessor(t, tool)

	req := EditRequest{
		ID:       "edit2",
		Source:   "clip.mp4",
		Segments: []types.WordSegment{{Word: "gone", Start: 0, End: 1, Keep: false}},
		Options:  types.EffectOptions{TransitionStyle: types.TransitionNone, CaptionStyle: "default"},
	}
	if _, err := proc.Edit(context.Background(), t.TempDir(), req); !errors.Is(err, timeline.ErrNothingKept) {
		t.Fatalf("err = %v, want ErrNothingKept", err)
	}
}

func TestRunnerIsolatesFailures(t *testing.T) {
	good := &fakeTool{hasAudio: true, duration: 12.5, frameCount: 2}
	proc, _ := newTestProcessor(t, good)
	workRoot := t.TempDir()
	runner := NewRunner(proc, zerolog.Nop(), workRoot, 2)

	ok := fillerRequest()
	bad := fillerRequest()
	bad.ID = "clip2"
	bad.Options.TransitionStyle = "sparkle"

	outcomes := runner.Run(context.Background(), []Request{ok, bad})
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d", len(outcomes))
	}
	if outcomes[0].Err != nil || outcomes[0].Result == nil {
		t.Fatalf("good clip failed: %v", outcomes[0].Err)
	}
	if outcomes[1].Err == nil {
		t.Fatalf("bad clip succeeded")
	}

	// Work dirs must be gone on success and failure alike.
	left, err := os.ReadDir(workRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Fatalf("work dirs left behind: %d", len(left))
	}

	manifest := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(manifest, outcomes); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "clip1.mp4") || !strings.Contains(string(data), "sparkle") {
		t.Fatalf("manifest missing expected entries:\n%s", data)
	}
}
