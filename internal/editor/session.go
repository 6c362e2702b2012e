package editor

import (
	"fmt"
	"sync"

	"github.com/cutboard/cutboard-agent/internal/history"
	"github.com/cutboard/cutboard-agent/internal/interaction"
	"github.com/cutboard/cutboard-agent/internal/resolver"
	"github.com/cutboard/cutboard-agent/internal/selection"
	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// Session is the live editing state of one open project. All methods
// serialize on the session mutex; within a drag session, updates are applied
// in arrival order because each carries a delta relative to the previous
// event.
type Session struct {
	mu sync.Mutex

	projectID string
	snap      *timeline.Snapshot
	history   *history.Manager
	selection *selection.Set
	viewport  *interaction.Viewport

	playhead  float64
	dirty     bool
	clipboard []*timeline.SubtitleLine

	drag *interaction.DragSession
	// dragWorking holds the subtitle collection being mutated by an
	// active drag over subtitle lines; it is committed through history
	// when the drag ends.
	dragWorking []*timeline.SubtitleLine

	scrub *interaction.ScrubSession
}

func (s *Session) ProjectID() string {
	return s.projectID
}

// Snapshot returns a deep copy of the current state: the entity collections
// plus the history manager's current subtitles. The copy stays consistent
// after the lock is released, so persistence and API responses never observe
// a drag session mid-mutation.
func (s *Session) Snapshot() *timeline.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSnapshot().Clone()
}

// currentSnapshot assembles the live view. Callers must hold s.mu and must
// not let the result escape the lock.
func (s *Session) currentSnapshot() *timeline.Snapshot {
	subs := s.history.Current()
	if s.dragWorking != nil {
		subs = s.dragWorking
	}
	return &timeline.Snapshot{
		VideoAssets: s.snap.VideoAssets,
		ImageAssets: s.snap.ImageAssets,
		Clips:       s.snap.Clips,
		Images:      s.snap.Images,
		Subtitles:   subs,
	}
}

// Duration returns the derived project duration.
func (s *Session) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSnapshot().Duration()
}

func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Session) markClean() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// adopt replaces the session's state with a freshly loaded snapshot. Any live
// drag or scrub session is abandoned and history restarts from the loaded
// subtitle set.
func (s *Session) adopt(snap *timeline.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drag != nil {
		s.drag.End()
		s.drag = nil
		s.dragWorking = nil
	}
	if s.scrub != nil {
		s.scrub.End()
		s.scrub = nil
	}

	s.snap = snap
	s.history.Reset(snap.Subtitles)
	s.selection.Clear()
	s.seekLocked(s.playhead)
	s.dirty = false
}

// --- subtitles and history ---

// Subtitles returns the current subtitle collection.
func (s *Session) Subtitles() []*timeline.SubtitleLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragWorking != nil {
		return s.dragWorking
	}
	return s.history.Current()
}

// SetSubtitles replaces the subtitle collection through history. Both user
// edits and wholesale replacement by the transcription service land here, so
// both are undoable. Lines violating the interval invariant are rejected.
func (s *Session) SetSubtitles(next []*timeline.SubtitleLine) error {
	for _, line := range next {
		if line.EndTime-line.StartTime < timeline.MinItemDuration {
			return fmt.Errorf("subtitle %s: interval [%v, %v] shorter than minimum duration", line.ID, line.StartTime, line.EndTime)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.SetSubtitles(next)
	s.dirty = true
	return nil
}

// Undo steps history back one edit. A no-op on empty history does not mark
// the session dirty, so it cannot trigger a needless autosave.
func (s *Session) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history.Undo() {
		s.dirty = true
	}
}

func (s *Session) Redo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history.Redo() {
		s.dirty = true
	}
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// --- playhead and clock reconciliation ---

// Playhead returns the authoritative project clock.
func (s *Session) Playhead() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playhead
}

// Seek moves the project clock, clamped to [0, duration].
func (s *Session) Seek(t float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seekLocked(t)
}

func (s *Session) seekLocked(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if d := s.currentSnapshot().Duration(); t > d {
		t = d
	}
	s.playhead = t
	return s.playhead
}

// Active resolves the active clip/image at the playhead and the clip's local
// source time.
func (s *Session) Active() (*resolver.ActiveState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return resolver.Resolve(s.playhead, s.currentSnapshot())
}

// SyncFromMedia feeds a media element's timeupdate into the project clock.
// The clock only advances when the mapped time drifts past the tolerance,
// preventing a feedback loop with NeedsSeek. The returned bool reports
// whether the clock moved.
func (s *Session) SyncFromMedia(mediaTime float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clip := resolver.ActiveClipAt(s.playhead, s.snap.Clips)
	if clip == nil {
		return s.playhead, false
	}

	t, ok := resolver.ProjectTimeFromMedia(mediaTime, s.playhead, clip)
	if !ok {
		return s.playhead, false
	}
	return s.seekLocked(t), true
}

// NeedsSeek reports whether the media element should be seeked to follow the
// project clock, given its current local time.
func (s *Session) NeedsSeek(mediaTime float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clip := resolver.ActiveClipAt(s.playhead, s.snap.Clips)
	if clip == nil {
		return 0, false
	}

	want := resolver.SourceTime(s.playhead, clip)
	return want, resolver.NeedsSeek(s.playhead, mediaTime, clip)
}

// --- viewport ---

func (s *Session) Viewport() interaction.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.viewport
}

func (s *Session) ZoomIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.ZoomIn()
}

func (s *Session) ZoomOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.ZoomOut()
}

func (s *Session) ResetZoom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.ResetZoom()
}

func (s *Session) Wheel(deltaX, deltaY float64, zoomModifier bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.Wheel(deltaX, deltaY, zoomModifier)
}

// --- selection ---

func (s *Session) Click(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Click(id)
}

func (s *Session) ModClick(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.ModClick(id)
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

func (s *Session) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs()
}
