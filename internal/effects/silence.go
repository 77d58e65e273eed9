package effects

import (
	"context"

	"vertcut/internal/media"
	"vertcut/internal/timeline"
)

// silenceStage detects quiet spans and cuts them from both streams, rebasing
// downstream timestamps.
type silenceStage struct{}

func (silenceStage) Name() string { return "silence" }

func (silenceStage) Enabled(env Env) bool { return env.Options.RemoveSilences }

func (silenceStage) Apply(ctx context.Context, env Env, in, out string) (bool, error) {
	silences, err := env.Tool.DetectSilence(ctx, in, media.DefaultSilenceThresholdDB, media.DefaultMinSilence)
	if err != nil {
		return false, err
	}
	if len(silences) == 0 {
		return false, nil
	}

	info, err := env.Tool.Probe(ctx, in)
	if err != nil {
		// Without a duration the keep complement cannot be computed; degrade
		// to trimming the audio stream in place.
		env.Log.Warn().Err(err).Msg("probe failed, trimming audio only")
		tf := media.SilenceRemove{
			ThresholdDB: media.DefaultSilenceThresholdDB,
			MinDuration: media.DefaultMinSilence,
		}
		if err := env.Tool.Apply(ctx, in, out, tf); err != nil {
			return false, err
		}
		return true, nil
	}
	keep := timeline.KeepComplement(silences, info.Duration)
	if len(keep) == 0 {
		// Everything is silence; cutting it all would leave nothing.
		return false, nil
	}
	if err := env.Tool.Apply(ctx, in, out, media.SelectCut{Keep: keep}); err != nil {
		return false, err
	}
	return true, nil
}
