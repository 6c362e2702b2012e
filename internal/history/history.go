// Package history keeps a bounded undo/redo history of the subtitle-line
// collection. Every subtitle edit, whether typed by the user or delivered
// wholesale by the transcription service, goes through SetSubtitles so both
// are undoable.
package history

import (
	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// MaxDepth is the undo stack bound. When exceeded, the oldest snapshot is
// discarded and becomes unrecoverable.
const MaxDepth = 50

// Transform computes the next subtitle collection from the previous one.
type Transform func(prev []*timeline.SubtitleLine) []*timeline.SubtitleLine

// Manager is an undo/redo stack over one project's subtitle lines. It is not
// safe for concurrent use; the editor serializes access on its event loop.
type Manager struct {
	current []*timeline.SubtitleLine
	undo    [][]*timeline.SubtitleLine
	redo    [][]*timeline.SubtitleLine
}

func NewManager(initial []*timeline.SubtitleLine) *Manager {
	return &Manager{current: timeline.CloneSubtitles(initial)}
}

// Current returns the live subtitle collection. Callers must treat it as
// read-only; mutations go through SetSubtitles.
func (m *Manager) Current() []*timeline.SubtitleLine {
	return m.current
}

// SetSubtitles replaces the collection with next. If next is structurally
// equal to the current value no history entry is recorded, so a re-render
// with identical data cannot pollute undo history. Otherwise the current
// value is pushed onto the undo stack (evicting the oldest past MaxDepth)
// and the redo stack is cleared.
func (m *Manager) SetSubtitles(next []*timeline.SubtitleLine) {
	if timeline.SubtitlesEqual(m.current, next) {
		return
	}

	m.undo = append(m.undo, m.current)
	if len(m.undo) > MaxDepth {
		m.undo = m.undo[len(m.undo)-MaxDepth:]
	}
	m.redo = nil
	m.current = timeline.CloneSubtitles(next)
}

// Apply runs a transform against the current collection and stores the
// result through SetSubtitles. The transform receives a copy and may mutate
// it freely.
func (m *Manager) Apply(fn Transform) {
	m.SetSubtitles(fn(timeline.CloneSubtitles(m.current)))
}

// Undo restores the most recent snapshot. Returns false, leaving everything
// untouched, when the undo stack is empty.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}
	last := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, m.current)
	m.current = last
	return true
}

// Redo reverses the most recent Undo. Returns false when the redo stack is
// empty.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}
	last := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, m.current)
	m.current = last
	return true
}

// Reset clears both stacks and adopts initial as the new baseline. Called
// when the editor switches projects so history does not bleed across them.
func (m *Manager) Reset(initial []*timeline.SubtitleLine) {
	m.current = timeline.CloneSubtitles(initial)
	m.undo = nil
	m.redo = nil
}

func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0
}

func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

// Depth returns the current undo stack size.
func (m *Manager) Depth() int {
	return len(m.undo)
}
