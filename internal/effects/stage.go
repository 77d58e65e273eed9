// Package effects runs the ordered post-processing chain over a rendered
// clip: censor, zoom, silence removal, filler removal, transition. Each stage
// either produces a new artifact or passes its input through; a stage failure
// is reported but never aborts the chain.
package effects

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"vertcut/internal/ports"
	"vertcut/internal/types"
)

// Env carries everything a stage may consult. Stages treat it as read-only.
type Env struct {
	Tool ports.MediaTool
	Log  zerolog.Logger

	// WorkDir receives intermediate stage artifacts.
	WorkDir string

	Options types.EffectOptions

	// Segments are the clip's words in absolute source seconds; Bounds maps
	// them onto the clip.
	Segments []types.WordSegment
	Bounds   types.ClipBounds

	ZoomMoments []types.ZoomMoment
}

// Stage is one effect in the chain. Apply writes its artifact to out and
// reports whether it actually changed anything: (false, nil) means the stage
// had nothing to do and the pipeline keeps the previous artifact.
type Stage interface {
	Name() string
	Enabled(Env) bool
	Apply(ctx context.Context, env Env, in, out string) (bool, error)
}

// Result records one stage's outcome. Err is non-nil for a degraded stage
// whose input was passed through.
type Result struct {
	Stage   string
	Applied bool
	Err     error
}

// Chain returns the fixed stage order.
func Chain() []Stage {
	return []Stage{
		censorStage{},
		zoomStage{},
		silenceStage{},
		fillerStage{},
		transitionStage{},
	}
}

// Run executes the chain over input, returning the final artifact path and
// per-stage results. The final path is always usable: a failed stage degrades
// to its input.
func Run(ctx context.Context, env Env, input string) (string, []Result) {
	current := input
	results := make([]Result, 0, 5)
	for _, st := range Chain() {
		if !st.Enabled(env) {
			results = append(results, Result{Stage: st.Name()})
			continue
		}
		out := filepath.Join(env.WorkDir, fmt.Sprintf("stage_%s.mp4", st.Name()))
		applied, err := st.Apply(ctx, env, current, out)
		if err != nil {
			env.Log.Warn().Err(err).Str("stage", st.Name()).Msg("stage failed, passing input through")
			results = append(results, Result{Stage: st.Name(), Err: err})
			continue
		}
		if applied {
			current = out
		}
		results = append(results, Result{Stage: st.Name(), Applied: applied})
	}
	return current, results
}
