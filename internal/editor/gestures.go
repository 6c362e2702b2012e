package editor

import (
	"fmt"

	"github.com/cutboard/cutboard-agent/internal/interaction"
	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// BeginDrag starts a move/resize session on a timeline item. edge selects
// which edge(s) the pointer grabbed. Only one drag session is live at a time;
// beginning a new one ends the previous session first.
func (s *Session) BeginDrag(itemID string, edge interaction.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.endDragLocked()

	duration := s.currentSnapshot().Duration()

	for _, c := range s.snap.Clips {
		if c.ID == itemID {
			s.drag = interaction.BeginDrag(s.viewport, edge, duration, interaction.ClipTarget{Clip: c})
			return nil
		}
	}
	for _, img := range s.snap.Images {
		if img.ID == itemID {
			s.drag = interaction.BeginDrag(s.viewport, edge, duration, interaction.ImageTarget{Image: img})
			return nil
		}
	}

	// Subtitle drags mutate a working copy and commit through history on
	// End, so one gesture is one undo step instead of one per frame.
	for i, line := range s.history.Current() {
		if line.ID == itemID {
			s.dragWorking = timeline.CloneSubtitles(s.history.Current())
			s.drag = interaction.BeginDrag(s.viewport, edge, duration, interaction.SubtitleTarget{Line: s.dragWorking[i]})
			return nil
		}
	}

	return fmt.Errorf("timeline item not found: %s", itemID)
}

// UpdateDrag applies one pointer-move event's pixel delta to the live drag
// session. No-op when no session is active.
func (s *Session) UpdateDrag(deltaPixels float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drag == nil {
		return
	}
	s.drag.Update(deltaPixels)
	if s.dragWorking == nil {
		s.dirty = true
	}
}

// EndDrag completes the live drag session. Safe to call without an active
// session (e.g. a pointer-up delivered after window blur already ended it).
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endDragLocked()
}

func (s *Session) endDragLocked() {
	if s.drag == nil {
		return
	}
	s.drag.End()
	s.drag = nil

	if s.dragWorking != nil {
		// Deep-equality in SetSubtitles drops drags that moved nothing.
		s.history.SetSubtitles(s.dragWorking)
		s.dragWorking = nil
		s.dirty = true
	}
}

// BeginScrub starts a playhead scrub from a pointer-down on empty timeline
// background at horizontal position px.
func (s *Session) BeginScrub(px float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scrub = interaction.BeginScrub(s.viewport, s.currentSnapshot().Duration())
	if t, ok := s.scrub.Update(px); ok {
		return s.seekLocked(t)
	}
	return s.playhead
}

// UpdateScrub seeks to the pointer's current absolute position. Every move
// seeks; position is absolute, not a delta.
func (s *Session) UpdateScrub(px float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scrub == nil {
		return s.playhead
	}
	if t, ok := s.scrub.Update(px); ok {
		return s.seekLocked(t)
	}
	return s.playhead
}

// EndScrub completes the scrub session.
func (s *Session) EndScrub() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scrub != nil {
		s.scrub.End()
		s.scrub = nil
	}
}
