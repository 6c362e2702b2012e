package resolver

import (
	"math"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// SeekTolerance is the drift, in seconds, allowed between the project clock
// and a media element's native clock before either side corrects the other.
// Seeking on every frame causes visible stutter; never reconciling lets the
// clocks diverge. The same tolerance gates both directions so the two update
// paths cannot feed back into each other.
const SeekTolerance = 0.3

// NeedsSeek reports whether the media element should be seeked to match the
// project clock. mediaTime is the element's current local time, projectTime
// the authoritative clock.
func NeedsSeek(projectTime, mediaTime float64, clip *timeline.Clip) bool {
	want := SourceTime(projectTime, clip)
	return math.Abs(mediaTime-want) > SeekTolerance
}

// ProjectTimeFromMedia maps a media element's timeupdate back to project time.
// The second return is false when the computed time is within tolerance of
// the current project clock, in which case the clock must not be advanced.
func ProjectTimeFromMedia(mediaTime, projectTime float64, clip *timeline.Clip) (float64, bool) {
	computed := ProjectTime(mediaTime, clip)
	if math.Abs(computed-projectTime) <= SeekTolerance {
		return projectTime, false
	}
	return computed, true
}
