// Package ports declares the interfaces the clip pipeline consumes, so stages
// and the processor can be exercised against fakes.
package ports

import (
	"context"

	"vertcut/internal/media"
	"vertcut/internal/types"
)

// MediaTool is the media-processing boundary. The ffmpeg adapter implements
// it; tests substitute fakes.
type MediaTool interface {
	// Probe reports duration, geometry, and audio presence.
	Probe(ctx context.Context, path string) (media.Info, error)

	// CutSegment re-encodes the bounded range of in to out.
	CutSegment(ctx context.Context, in string, bounds types.ClipBounds, out string) error

	// ExtractAudio writes in's audio as 16 kHz mono PCM WAV.
	ExtractAudio(ctx context.Context, in, outWav string) error

	// ExtractFrames decodes in to numbered JPEGs in outDir at the given rate
	// and returns how many frames were written.
	ExtractFrames(ctx context.Context, in, outDir string, fps int) (int, error)

	// ExtractFrameAt grabs a single JPEG still at the given offset.
	ExtractFrameAt(ctx context.Context, in string, at float64, outJPEG string) error

	// MuxFrames encodes numbered JPEGs at the given rate, muxing the audio
	// file in when audioPath is non-empty.
	MuxFrames(ctx context.Context, framesDir string, fps int, audioPath, out string) error

	// Apply runs one typed transform over in, producing out.
	Apply(ctx context.Context, in, out string, tf media.Transform) error

	// DetectSilence reports spans where audio stays below thresholdDB for at
	// least minDuration seconds.
	DetectSilence(ctx context.Context, in string, thresholdDB, minDuration float64) ([]types.Span, error)
}
