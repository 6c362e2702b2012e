package editor

import (
	"fmt"
	"strings"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// Bulk subtitle commands. All of them consume the selection set and go
// through the history manager, so every bulk edit is a single undo step.

// DeleteSelected removes the selected subtitle lines.
func (s *Session) DeleteSelected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteSelectedLocked()
}

func (s *Session) deleteSelectedLocked() int {
	current := s.history.Current()
	kept := make([]*timeline.SubtitleLine, 0, len(current))
	removed := 0
	for _, line := range current {
		if s.selection.Contains(line.ID) {
			s.selection.Remove(line.ID)
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return 0
	}

	s.history.SetSubtitles(kept)
	s.dirty = true
	return removed
}

// CopySelected clones the selected lines into the session clipboard, ordered
// by start time. Returns the number copied.
func (s *Session) CopySelected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySelectedLocked()
}

func (s *Session) copySelectedLocked() int {
	var picked []*timeline.SubtitleLine
	for _, line := range s.history.Current() {
		if s.selection.Contains(line.ID) {
			picked = append(picked, line)
		}
	}
	if len(picked) == 0 {
		return 0
	}
	s.clipboard = timeline.CloneSubtitles(picked)
	timeline.SortSubtitles(s.clipboard)
	return len(s.clipboard)
}

// CutSelected copies then deletes the selected lines.
func (s *Session) CutSelected() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := s.copySelectedLocked()
	if copied == 0 {
		return 0
	}
	s.deleteSelectedLocked()
	return copied
}

// PasteAtPlayhead inserts clipboard lines re-anchored so the earliest one
// starts at the playhead, with fresh ids and relative spacing preserved.
func (s *Session) PasteAtPlayhead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clipboard) == 0 {
		return 0
	}

	offset := s.playhead - s.clipboard[0].StartTime
	next := timeline.CloneSubtitles(s.history.Current())
	for _, line := range s.clipboard {
		c := *line
		c.ID = timeline.NewID()
		c.StartTime += offset
		c.EndTime += offset
		next = append(next, &c)
	}
	timeline.SortSubtitles(next)

	s.history.SetSubtitles(next)
	s.dirty = true
	return len(s.clipboard)
}

// MergeSelected combines two or more selected lines into one spanning the
// earliest start to the latest end, joining texts in time order.
func (s *Session) MergeSelected() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var picked []*timeline.SubtitleLine
	current := s.history.Current()
	for _, line := range current {
		if s.selection.Contains(line.ID) {
			picked = append(picked, line)
		}
	}
	if len(picked) < 2 {
		return fmt.Errorf("merge requires at least two selected lines")
	}

	ordered := timeline.CloneSubtitles(picked)
	timeline.SortSubtitles(ordered)

	merged := &timeline.SubtitleLine{
		ID:        timeline.NewID(),
		StartTime: ordered[0].StartTime,
		EndTime:   ordered[0].EndTime,
		Color:     ordered[0].Color,
	}
	var texts, secondary []string
	for _, line := range ordered {
		if line.EndTime > merged.EndTime {
			merged.EndTime = line.EndTime
		}
		if line.Text != "" {
			texts = append(texts, line.Text)
		}
		if line.SecondaryText != "" {
			secondary = append(secondary, line.SecondaryText)
		}
	}
	merged.Text = strings.Join(texts, " ")
	merged.SecondaryText = strings.Join(secondary, " ")

	next := make([]*timeline.SubtitleLine, 0, len(current))
	inserted := false
	for _, line := range current {
		if s.selection.Contains(line.ID) {
			if !inserted {
				next = append(next, merged)
				inserted = true
			}
			s.selection.Remove(line.ID)
			continue
		}
		next = append(next, line)
	}
	timeline.SortSubtitles(next)

	s.history.SetSubtitles(next)
	s.selection.Click(merged.ID)
	s.dirty = true
	return nil
}

// SplitAtPlayhead splits the selected line containing the playhead into two
// lines at the playhead. Both halves must satisfy the minimum duration.
func (s *Session) SplitAtPlayhead() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.history.Current()
	var target *timeline.SubtitleLine
	for _, line := range current {
		if s.selection.Contains(line.ID) && s.playhead > line.StartTime && s.playhead < line.EndTime {
			target = line
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no selected line spans the playhead")
	}

	if s.playhead-target.StartTime < timeline.MinItemDuration ||
		target.EndTime-s.playhead < timeline.MinItemDuration {
		return fmt.Errorf("split point too close to a line edge")
	}

	next := make([]*timeline.SubtitleLine, 0, len(current)+1)
	for _, line := range current {
		if line.ID != target.ID {
			next = append(next, line)
			continue
		}
		first := *line
		first.EndTime = s.playhead
		second := *line
		second.ID = timeline.NewID()
		second.StartTime = s.playhead
		next = append(next, &first, &second)
	}

	s.history.SetSubtitles(next)
	s.dirty = true
	return nil
}
