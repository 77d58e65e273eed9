package effects

import (
	"context"

	"vertcut/internal/media"
	"vertcut/internal/timeline"
)

// fillerStage cuts filler words out of both streams, rebasing timestamps.
type fillerStage struct{}

func (fillerStage) Name() string { return "filler" }

func (fillerStage) Enabled(env Env) bool { return env.Options.RemoveFillerWords }

func (fillerStage) Apply(ctx context.Context, env Env, in, out string) (bool, error) {
	matched := timeline.MatchLexicon(env.Segments, timeline.FillerWords, env.Bounds.Start, env.Bounds.End)
	if len(matched) == 0 {
		return false, nil
	}
	keep := timeline.KeepComplement(matched, env.Bounds.Duration())
	if len(keep) == 0 {
		return false, nil
	}
	if err := env.Tool.Apply(ctx, in, out, media.SelectCut{Keep: keep}); err != nil {
		return false, err
	}
	return true, nil
}
