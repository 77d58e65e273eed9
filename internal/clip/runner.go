package clip

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Outcome pairs a request with what became of it. Err is the clip's fatal
// error; Result is nil in that case.
type Outcome struct {
	ID     string
	Result *Result
	Err    error
}

// ManifestEntry is the serialized form of one outcome.
type ManifestEntry struct {
	ID         string  `json:"id"`
	Video      string  `json:"video,omitempty"`
	Captions   string  `json:"captions,omitempty"`
	Thumbnail  string  `json:"thumbnail,omitempty"`
	Duration   float64 `json:"duration,omitempty"`
	Transcript string  `json:"transcript,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Runner processes clips concurrently up to a worker limit. Each clip gets a
// private uuid-named work directory under workRoot, removed on every exit
// path.
type Runner struct {
	proc     *Processor
	log      zerolog.Logger
	workRoot string
	workers  int
}

// NewRunner wires a Runner. workers below 1 is clamped to 1.
func NewRunner(proc *Processor, log zerolog.Logger, workRoot string, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		proc:     proc,
		log:      log.With().Str("component", "runner").Logger(),
		workRoot: workRoot,
		workers:  workers,
	}
}

// Run renders every request and returns outcomes in request order. Clips fail
// independently: one clip's fatal error never cancels the others, only a
// context cancellation stops the run early.
func (r *Runner) Run(ctx context.Context, reqs []Request) []Outcome {
	outcomes := make([]Outcome, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			outcomes[i] = r.runOne(ctx, req)
			return nil
		})
	}
	g.Wait()
	return outcomes
}

func (r *Runner) runOne(ctx context.Context, req Request) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{ID: req.ID, Err: err}
	}
	workDir := filepath.Join(r.workRoot, uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Outcome{ID: req.ID, Err: err}
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			r.log.Warn().Err(err).Str("dir", workDir).Msg("work dir cleanup failed")
		}
	}()

	res, err := r.proc.Process(ctx, workDir, req)
	if err != nil {
		r.log.Error().Err(err).Str("clip", req.ID).Msg("clip failed")
		return Outcome{ID: req.ID, Err: err}
	}
	return Outcome{ID: req.ID, Result: res}
}

// WriteManifest serializes the outcomes as indented JSON at path.
func WriteManifest(path string, outcomes []Outcome) error {
	entries := make([]ManifestEntry, 0, len(outcomes))
	for _, o := range outcomes {
		e := ManifestEntry{ID: o.ID}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		if o.Result != nil {
			e.Video = o.Result.VideoPath
			e.Captions = o.Result.CaptionPath
			e.Thumbnail = o.Result.ThumbnailPath
			e.Duration = o.Result.Duration
			e.Transcript = o.Result.Transcript
		}
		entries = append(entries, e)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
