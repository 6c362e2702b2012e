// Package editor owns the live editing state of open projects. Each open
// project gets a Session holding its timeline snapshot, undo/redo history,
// selection, viewport, and playhead. All mutation is serialized per session;
// the pointer-event signal sources (drag, scrub, playback clock) interleave
// but never run concurrently against the same state.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cutboard/cutboard-agent/internal/history"
	"github.com/cutboard/cutboard-agent/internal/interaction"
	"github.com/cutboard/cutboard-agent/internal/project"
	"github.com/cutboard/cutboard-agent/internal/selection"
	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// Editor manages open project sessions backed by the draft repository.
type Editor struct {
	repo   project.Repository
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(repo project.Repository, logger *slog.Logger) *Editor {
	return &Editor{
		repo:     repo,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// CreateProject creates and persists a new empty project.
func (e *Editor) CreateProject(ctx context.Context, name string) (*project.Project, error) {
	if name == "" {
		name = "Untitled"
	}
	now := time.Now()
	p := &project.Project{ID: timeline.NewID(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := e.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	if e.logger != nil {
		e.logger.Info("project created", "project_id", p.ID, "name", name)
	}
	return p, nil
}

// Open loads a project's snapshot into a live session. Reopening an already
// open project returns the existing session. History is reset on load so undo
// state never bleeds across projects.
func (e *Editor) Open(ctx context.Context, projectID string) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.sessions[projectID]; ok {
		return s, nil
	}

	p, err := e.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project not found: %s", projectID)
	}

	snap, err := e.repo.LoadSnapshot(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	s := &Session{
		projectID: projectID,
		snap:      snap,
		history:   history.NewManager(snap.Subtitles),
		selection: selection.NewSet(),
		viewport:  interaction.NewViewport(),
	}
	e.sessions[projectID] = s

	if e.logger != nil {
		e.logger.Info("project opened",
			"project_id", projectID,
			"clips", len(snap.Clips),
			"subtitles", len(snap.Subtitles),
			"duration_s", snap.Duration(),
		)
	}
	return s, nil
}

// Session returns the open session for a project, or nil.
func (e *Editor) Session(projectID string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[projectID]
}

// OpenCount returns the number of open sessions.
func (e *Editor) OpenCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// DirtyCount returns the number of open sessions with unsaved changes.
func (e *Editor) DirtyCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, s := range e.sessions {
		if s.Dirty() {
			n++
		}
	}
	return n
}

// Save persists the session's current snapshot.
func (e *Editor) Save(ctx context.Context, projectID string) error {
	s := e.Session(projectID)
	if s == nil {
		return fmt.Errorf("project not open: %s", projectID)
	}

	snap := s.Snapshot()
	if err := e.repo.SaveSnapshot(ctx, projectID, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.markClean()

	if e.logger != nil {
		e.logger.Info("project saved", "project_id", projectID)
	}
	return nil
}

// SaveDirty persists every open session with unsaved changes. Used by the
// autosave runner and at shutdown.
func (e *Editor) SaveDirty(ctx context.Context) error {
	e.mu.Lock()
	ids := make([]string, 0, len(e.sessions))
	for id, s := range e.sessions {
		if s.Dirty() {
			ids = append(ids, id)
		}
	}
	e.mu.Unlock()

	var firstErr error
	for _, id := range ids {
		if err := e.Save(ctx, id); err != nil {
			if e.logger != nil {
				e.logger.Error("autosave failed", "project_id", id, "error", err)
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Revert discards a session's unsaved edits by reloading the persisted
// snapshot. History is reset to the loaded subtitle set, so the discarded
// edits are not reachable through undo.
func (e *Editor) Revert(ctx context.Context, projectID string) error {
	s := e.Session(projectID)
	if s == nil {
		return fmt.Errorf("project not open: %s", projectID)
	}

	snap, err := e.repo.LoadSnapshot(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	s.adopt(snap)

	if e.logger != nil {
		e.logger.Info("project reverted", "project_id", projectID)
	}
	return nil
}

// Close saves and drops an open session.
func (e *Editor) Close(ctx context.Context, projectID string) error {
	if err := e.Save(ctx, projectID); err != nil {
		return err
	}
	e.mu.Lock()
	delete(e.sessions, projectID)
	e.mu.Unlock()
	return nil
}

// DeleteProject removes a project and its open session, if any.
func (e *Editor) DeleteProject(ctx context.Context, projectID string) error {
	e.mu.Lock()
	delete(e.sessions, projectID)
	e.mu.Unlock()
	return e.repo.DeleteProject(ctx, projectID)
}
