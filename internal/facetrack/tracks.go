// Package facetrack defines the structured boundary format for
// active-speaker-detection output and turns raw per-track scores into
// per-frame framing anchors.
package facetrack

import (
	"encoding/json"
	"fmt"
	"os"
)

// smoothingRadius is the half-width, in frames, of the running-average window
// applied to raw activity scores. Raw scores are noisy frame to frame; the
// window keeps the framing anchor from jittering between speakers.
const smoothingRadius = 30

// Observation is one frame of one track.
type Observation struct {
	Frame int     `json:"frame"`
	Score float64 `json:"score"`
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Track is one temporally continuous face identity across the clip's own
// frame indices.
type Track struct {
	ID     int           `json:"track_id"`
	Frames []Observation `json:"frames"`
}

// Candidate is one track's smoothed presence at a specific output frame.
type Candidate struct {
	TrackID int
	Score   float64
	Scale   float64
	X       float64
	Y       float64
}

// Load reads a track file (JSON array of tracks) from disk.
func Load(path string) ([]Track, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read face tracks: %w", err)
	}
	var tracks []Track
	if err := json.Unmarshal(b, &tracks); err != nil {
		return nil, fmt.Errorf("parse face tracks %s: %w", path, err)
	}
	return tracks, nil
}

// SmoothedScore averages the track's raw scores over the window
// [idx-30, idx+30) clipped to the track's own bounds, where idx is the
// observation's position within the track. An empty window scores zero.
func SmoothedScore(scores []float64, idx int) float64 {
	lo := idx - smoothingRadius
	if lo < 0 {
		lo = 0
	}
	hi := idx + smoothingRadius
	if hi > len(scores) {
		hi = len(scores)
	}
	if lo >= hi {
		return 0
	}
	sum := 0.0
	for _, s := range scores[lo:hi] {
		sum += s
	}
	return sum / float64(hi-lo)
}

// BuildFrameCandidates distributes each track's observations onto the clip's
// frame index space with smoothed scores. frameCount bounds the result;
// observations outside [0, frameCount) are dropped.
func BuildFrameCandidates(tracks []Track, frameCount int) [][]Candidate {
	frames := make([][]Candidate, frameCount)
	for _, tr := range tracks {
		scores := make([]float64, len(tr.Frames))
		for i, ob := range tr.Frames {
			scores[i] = ob.Score
		}
		for i, ob := range tr.Frames {
			if ob.Frame < 0 || ob.Frame >= frameCount {
				continue
			}
			frames[ob.Frame] = append(frames[ob.Frame], Candidate{
				TrackID: tr.ID,
				Score:   SmoothedScore(scores, i),
				Scale:   ob.Scale,
				X:       ob.X,
				Y:       ob.Y,
			})
		}
	}
	return frames
}

// SelectAnchor picks the maximum-score candidate for a frame. A frame has no
// active face when it has no candidates or the best score is negative.
func SelectAnchor(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	if best.Score < 0 {
		return Candidate{}, false
	}
	return best, true
}
