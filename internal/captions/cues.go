package captions

import (
	"strings"

	"vertcut/internal/types"
)

// DefaultMaxWords caps how many words share one cue.
const DefaultMaxWords = 5

// GroupWords accumulates the clip's words into cues of at most maxWords,
// flushing a full group when the next word arrives and flushing the trailing
// partial group at the end. Cue times are clip-relative: each cue spans from
// its first word's start to its last word's end, so grouping itself never
// introduces timing gaps beyond the word gaps already present.
//
// Segments must overlap [clipStart, clipEnd); times are clamped to zero after
// the clip-start shift.
func GroupWords(segs []types.WordSegment, clipStart, clipEnd float64, maxWords int) []types.CaptionCue {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	var cues []types.CaptionCue
	var words []string
	var groupStart, groupEnd float64

	flush := func() {
		if len(words) == 0 {
			return
		}
		cues = append(cues, types.CaptionCue{
			Text:  strings.Join(words, " "),
			Start: groupStart,
			End:   groupEnd,
		})
		words = nil
	}

	for _, s := range segs {
		if s.End <= clipStart || s.Start >= clipEnd {
			continue
		}
		word := strings.TrimSpace(s.Word)
		if word == "" {
			continue
		}
		start := max0(s.Start - clipStart)
		end := max0(s.End - clipStart)
		if end <= 0 {
			continue
		}

		if len(words) >= maxWords {
			flush()
		}
		if len(words) == 0 {
			groupStart = start
		}
		words = append(words, word)
		groupEnd = end
	}
	flush()
	return cues
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
