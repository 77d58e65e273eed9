// Package timeline holds the word-segment model: merging kept words into cut
// ranges, re-timing words after cuts, and matching words against lexicons for
// the censor and filler stages.
package timeline

import (
	"errors"
	"sort"
	"strings"

	"vertcut/internal/types"
)

// ErrNothingKept reports an edit that keeps zero segments. Callers must treat
// this as fatal for the clip rather than render an empty video.
var ErrNothingKept = errors.New("no segments to keep")

// mergeGap is the maximum gap, in seconds, between consecutive kept words that
// still collapses into one keep range. Alignment jitter between adjacent words
// is usually well under this.
const mergeGap = 0.1

// MergeKeepRanges collapses the kept segments into disjoint, sorted keep
// ranges, merging neighbors whose gap is under mergeGap. Returns
// ErrNothingKept when no segment is kept.
func MergeKeepRanges(segs []types.WordSegment) ([]types.Span, error) {
	var kept []types.Span
	for _, s := range segs {
		if s.Keep {
			kept = append(kept, types.Span{Start: s.Start, End: s.End})
		}
	}
	if len(kept) == 0 {
		return nil, ErrNothingKept
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })

	merged := kept[:1]
	for _, sp := range kept[1:] {
		last := &merged[len(merged)-1]
		if sp.Start-last.End < mergeGap {
			if sp.End > last.End {
				last.End = sp.End
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged, nil
}

// RemapTimestamps rebuilds kept segments on the post-cut timeline: each kept
// word starts where the previous kept word ended, preserving its own duration.
// Dropped segments are omitted. The result is what caption timing must use so
// cues never reference time past the cut video's end.
func RemapTimestamps(segs []types.WordSegment) []types.WordSegment {
	var out []types.WordSegment
	current := 0.0
	for _, s := range segs {
		if !s.Keep {
			continue
		}
		d := s.Duration()
		out = append(out, types.WordSegment{
			Word:  s.Word,
			Start: current,
			End:   current + d,
			Keep:  true,
		})
		current += d
	}
	return out
}

// MatchLexicon returns clip-relative spans of segments whose word matches the
// lexicon. Only segments fully contained in [clipStart, clipEnd] are
// considered, so a word straddling a clip boundary is never half-cut. Matching
// is case-insensitive and intentionally lenient: an exact hit or any substring
// hit counts, which over-matches words that merely contain a lexicon token.
func MatchLexicon(segs []types.WordSegment, lexicon []string, clipStart, clipEnd float64) []types.Span {
	var out []types.Span
	for _, s := range segs {
		if s.Start < clipStart || s.End > clipEnd {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(s.Word))
		if word == "" {
			continue
		}
		if !matchesAny(word, lexicon) {
			continue
		}
		out = append(out, types.Span{Start: s.Start - clipStart, End: s.End - clipStart})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// InLexicon reports whether a raw transcript word hits the lexicon, using the
// same normalization and lenient matching as MatchLexicon.
func InLexicon(word string, lexicon []string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return false
	}
	return matchesAny(w, lexicon)
}

func matchesAny(word string, lexicon []string) bool {
	for _, entry := range lexicon {
		if word == entry || strings.Contains(word, entry) {
			return true
		}
	}
	return false
}

// KeepComplement inverts removal spans over [0, duration]: the returned spans
// are the parts of the clip to keep. Input spans may overlap; the result is
// disjoint and sorted.
func KeepComplement(removed []types.Span, duration float64) []types.Span {
	sorted := make([]types.Span, len(removed))
	copy(sorted, removed)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var keep []types.Span
	last := 0.0
	for _, sp := range sorted {
		if sp.Start > last {
			keep = append(keep, types.Span{Start: last, End: sp.Start})
		}
		if sp.End > last {
			last = sp.End
		}
	}
	if last < duration {
		keep = append(keep, types.Span{Start: last, End: duration})
	}
	return keep
}

// TotalDuration sums span lengths.
func TotalDuration(spans []types.Span) float64 {
	total := 0.0
	for _, sp := range spans {
		total += sp.Duration()
	}
	return total
}
