package media

import (
	"regexp"
	"strconv"

	"vertcut/internal/types"
)

// Defaults for silence detection.
const (
	DefaultSilenceThresholdDB = -50.0
	DefaultMinSilence         = 0.5
)

var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?[0-9.]+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(-?[0-9.]+)`)
)

// ParseSilenceDetect extracts silent spans from ffmpeg silencedetect log
// output. A trailing silence_start with no matching end is closed at the
// given duration.
func ParseSilenceDetect(log string, duration float64) []types.Span {
	starts := silenceStartRe.FindAllStringSubmatch(log, -1)
	ends := silenceEndRe.FindAllStringSubmatch(log, -1)

	var spans []types.Span
	for i, s := range starts {
		start, err := strconv.ParseFloat(s[1], 64)
		if err != nil {
			continue
		}
		end := duration
		if i < len(ends) {
			if v, err := strconv.ParseFloat(ends[i][1], 64); err == nil {
				end = v
			}
		}
		if end > start {
			spans = append(spans, types.Span{Start: start, End: end})
		}
	}
	return spans
}
