package effects

import (
	"context"

	"vertcut/internal/media"
	"vertcut/internal/types"
)

// fadeDuration is the in/out fade length in seconds.
const fadeDuration = 0.3

// transitionStage applies a short fade at clip start and end. "none" disables
// the stage; wipe and slide currently degrade to the fade chain.
type transitionStage struct{}

func (transitionStage) Name() string { return "transition" }

func (transitionStage) Enabled(env Env) bool {
	return env.Options.TransitionStyle != types.TransitionNone && env.Options.TransitionStyle != ""
}

func (transitionStage) Apply(ctx context.Context, env Env, in, out string) (bool, error) {
	info, err := env.Tool.Probe(ctx, in)
	if err != nil {
		return false, err
	}
	tf := media.Fade{
		Style:        env.Options.TransitionStyle,
		FadeDuration: fadeDuration,
		ClipDuration: info.Duration,
	}
	if err := env.Tool.Apply(ctx, in, out, tf); err != nil {
		return false, err
	}
	return true, nil
}
