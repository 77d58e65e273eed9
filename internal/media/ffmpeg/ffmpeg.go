// Package ffmpeg adapts typed media transforms onto the ffmpeg and ffprobe
// binaries.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"vertcut/internal/media"
	"vertcut/internal/ports"
	"vertcut/internal/types"
)

var _ ports.MediaTool = (*Adapter)(nil)

// FramePattern is the numbered-JPEG name format shared by frame extraction
// and muxing.
const FramePattern = "%06d.jpg"

// Encoding defaults for every re-encode pass.
const (
	videoCodec   = "libx264"
	videoPreset  = "fast"
	videoCRF     = "23"
	audioCodec   = "aac"
	audioBitrate = "128k"
)

// Adapter shells out to ffmpeg/ffprobe with typed argument construction.
type Adapter struct {
	ffmpeg  string
	ffprobe string
	log     zerolog.Logger
}

// New builds an adapter; empty paths fall back to binaries on PATH.
func New(ffmpegPath, ffprobePath string, log zerolog.Logger) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{
		ffmpeg:  ffmpegPath,
		ffprobe: ffprobePath,
		log:     log.With().Str("component", "ffmpeg").Logger(),
	}
}

func (a *Adapter) run(ctx context.Context, op string, args []string) ([]byte, error) {
	a.log.Debug().Strs("args", args).Msg(op)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return b, fmt.Errorf("ffmpeg %s: %w\n%s", op, err, string(b))
	}
	return b, nil
}

// CutSegment re-encodes the bounded range of in to out.
func (a *Adapter) CutSegment(ctx context.Context, in string, bounds types.ClipBounds, out string) error {
	args := []string{
		"-y",
		"-ss", fsec(bounds.Start),
		"-t", fsec(bounds.Duration()),
		"-i", in,
	}
	args = append(args, encodeArgs()...)
	args = append(args, out)
	_, err := a.run(ctx, "cut segment", args)
	return err
}

// ExtractAudio writes in's audio as 16 kHz mono PCM WAV.
func (a *Adapter) ExtractAudio(ctx context.Context, in, outWav string) error {
	_, err := a.run(ctx, "extract audio", []string{
		"-y",
		"-i", in,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		outWav,
	})
	return err
}

// ExtractFrames decodes in to numbered JPEGs in outDir at the given rate.
func (a *Adapter) ExtractFrames(ctx context.Context, in, outDir string, fps int) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}
	_, err := a.run(ctx, "extract frames", []string{
		"-y",
		"-i", in,
		"-vf", fmt.Sprintf("fps=%d", fps),
		"-qscale:v", "2",
		filepath.Join(outDir, FramePattern),
	})
	if err != nil {
		return 0, err
	}
	matches, err := filepath.Glob(filepath.Join(outDir, "*.jpg"))
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// ExtractFrameAt grabs a single still at the given offset.
func (a *Adapter) ExtractFrameAt(ctx context.Context, in string, at float64, outJPEG string) error {
	_, err := a.run(ctx, "extract frame", []string{
		"-y",
		"-ss", fsec(at),
		"-i", in,
		"-frames:v", "1",
		"-qscale:v", "2",
		outJPEG,
	})
	return err
}

// MuxFrames encodes the numbered JPEGs at the given rate and muxes audio in
// when audioPath is non-empty.
func (a *Adapter) MuxFrames(ctx context.Context, framesDir string, fps int, audioPath, out string) error {
	args := []string{
		"-y",
		"-framerate", strconv.Itoa(fps),
		"-i", filepath.Join(framesDir, FramePattern),
	}
	if audioPath != "" {
		args = append(args, "-i", audioPath)
	}
	args = append(args,
		"-c:v", videoCodec,
		"-preset", videoPreset,
		"-crf", videoCRF,
		"-pix_fmt", "yuv420p",
	)
	if audioPath != "" {
		args = append(args, "-c:a", audioCodec, "-b:a", audioBitrate, "-shortest")
	}
	args = append(args, out)
	_, err := a.run(ctx, "mux frames", args)
	return err
}

// Apply runs one typed transform over in, producing out.
func (a *Adapter) Apply(ctx context.Context, in, out string, tf media.Transform) error {
	spec := tf.Filters()
	args := []string{"-y", "-i", in}
	if spec.Video != "" {
		args = append(args, "-vf", spec.Video)
	}
	if spec.Audio != "" {
		args = append(args, "-af", spec.Audio)
	}
	if spec.CopyVideo {
		args = append(args, "-c:v", "copy")
	} else {
		args = append(args, "-c:v", videoCodec, "-preset", videoPreset, "-crf", videoCRF)
	}
	if spec.CopyAudio {
		args = append(args, "-c:a", "copy")
	} else {
		args = append(args, "-c:a", audioCodec, "-b:a", audioBitrate)
	}
	args = append(args, out)
	_, err := a.run(ctx, fmt.Sprintf("transform %T", tf), args)
	return err
}

// DetectSilence runs silencedetect over in and parses the reported spans.
func (a *Adapter) DetectSilence(ctx context.Context, in string, thresholdDB, minDuration float64) ([]types.Span, error) {
	info, err := a.Probe(ctx, in)
	if err != nil {
		return nil, err
	}
	out, err := a.run(ctx, "detect silence", []string{
		"-i", in,
		"-af", fmt.Sprintf("silencedetect=noise=%sdB:d=%s", fsec(thresholdDB), fsec(minDuration)),
		"-f", "null", "-",
	})
	if err != nil {
		return nil, err
	}
	return media.ParseSilenceDetect(string(out), info.Duration), nil
}

func encodeArgs() []string {
	return []string{
		"-c:v", videoCodec,
		"-preset", videoPreset,
		"-crf", videoCRF,
		"-c:a", audioCodec,
		"-b:a", audioBitrate,
	}
}

func fsec(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
