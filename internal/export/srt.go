package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// GenerateSRT renders the subtitle collection as a SubRip file in time order.
// A line's secondary (translation) text is emitted as a second text row of
// the same cue, the common convention for bilingual subtitles.
func GenerateSRT(subs []*timeline.SubtitleLine) string {
	ordered := timeline.CloneSubtitles(subs)
	timeline.SortSubtitles(ordered)

	var b strings.Builder
	for i, line := range ordered {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTimestamp(line.StartTime), srtTimestamp(line.EndTime))
		b.WriteString(line.Text)
		b.WriteString("\n")
		if line.SecondaryText != "" {
			b.WriteString(line.SecondaryText)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func srtTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int(math.Round(seconds * 1000))
	ms := totalMs % 1000
	totalSeconds := totalMs / 1000
	secs := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}
