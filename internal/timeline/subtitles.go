package timeline

import "sort"

// CloneSubtitles returns a deep copy of the subtitle collection. History
// snapshots and API responses must not alias the live slice.
func CloneSubtitles(subs []*SubtitleLine) []*SubtitleLine {
	if subs == nil {
		return nil
	}
	out := make([]*SubtitleLine, len(subs))
	for i, s := range subs {
		c := *s
		out[i] = &c
	}
	return out
}

// SubtitlesEqual reports structural equality of two subtitle collections.
// Used to suppress no-op edits: a re-render with identical data must not
// pollute undo history.
func SubtitlesEqual(a, b []*SubtitleLine) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if *a[i] != *b[i] {
			return false
		}
	}
	return true
}

// SortSubtitles orders lines by start time ascending, with end time as a
// tiebreaker. Stable so equal intervals keep their relative order.
func SortSubtitles(subs []*SubtitleLine) {
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].StartTime != subs[j].StartTime {
			return subs[i].StartTime < subs[j].StartTime
		}
		return subs[i].EndTime < subs[j].EndTime
	})
}
