package effects

import (
	"context"
	"math"

	"vertcut/internal/media"
)

// zoomStage magnifies the frame during externally supplied high-energy
// moments. With no moments the stage is a no-op, not an error.
type zoomStage struct{}

func (zoomStage) Name() string { return "zoom" }

func (zoomStage) Enabled(env Env) bool { return env.Options.AutoZoom }

func (zoomStage) Apply(ctx context.Context, env Env, in, out string) (bool, error) {
	if len(env.ZoomMoments) == 0 {
		return false, nil
	}

	// Geometry and rate follow the incoming artifact so zoompan re-emits the
	// stream unchanged outside the zoomed moments.
	width, height, fps := 1080, 1920, 25
	if info, err := env.Tool.Probe(ctx, in); err == nil {
		if info.Width > 0 && info.Height > 0 {
			width, height = info.Width, info.Height
		}
		if info.FPS > 0 {
			fps = int(math.Round(info.FPS))
		}
	}

	tf := media.ZoomPan{
		Moments:   env.ZoomMoments,
		Intensity: env.Options.ZoomIntensity,
		Width:     width,
		Height:    height,
		FPS:       fps,
	}
	if err := env.Tool.Apply(ctx, in, out, tf); err != nil {
		return false, err
	}
	return true, nil
}
