package effects

import (
	"context"

	"vertcut/internal/media"
	"vertcut/internal/timeline"
)

// censorStage mutes audio during profanity; video is untouched.
type censorStage struct{}

func (censorStage) Name() string { return "censor" }

func (censorStage) Enabled(env Env) bool { return env.Options.AutoCensor }

func (censorStage) Apply(ctx context.Context, env Env, in, out string) (bool, error) {
	spans := timeline.MatchLexicon(env.Segments, timeline.ProfanityWords, env.Bounds.Start, env.Bounds.End)
	if len(spans) == 0 {
		return false, nil
	}
	if err := env.Tool.Apply(ctx, in, out, media.MuteSpans{Spans: spans}); err != nil {
		return false, err
	}
	return true, nil
}
