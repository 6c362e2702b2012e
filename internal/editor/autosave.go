package editor

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Autosave periodically flushes dirty sessions to the draft store. It can be
// paused from the tray while the user wants no disk writes (e.g. during an
// export reading the database).
type Autosave struct {
	editor   *Editor
	logger   *slog.Logger
	interval time.Duration
	running  atomic.Bool
	paused   atomic.Bool
}

func NewAutosave(editor *Editor, interval time.Duration, logger *slog.Logger) *Autosave {
	return &Autosave{
		editor:   editor,
		logger:   logger,
		interval: interval,
	}
}

// Start runs the autosave loop until the context is cancelled. A final flush
// happens on the way out so shutdown never loses edits.
func (a *Autosave) Start(ctx context.Context) {
	if a.running.Swap(true) {
		return
	}

	a.logger.Info("autosave started", "interval", a.interval)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("autosave stopping, flushing open projects")
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := a.editor.SaveDirty(flushCtx); err != nil {
				a.logger.Error("final flush failed", "error", err)
			}
			cancel()
			a.running.Store(false)
			return
		case <-ticker.C:
			if a.paused.Load() {
				continue
			}
			if err := a.editor.SaveDirty(ctx); err != nil {
				a.logger.Warn("autosave pass failed", "error", err)
			}
		}
	}
}

func (a *Autosave) Pause() {
	a.paused.Store(true)
	a.logger.Info("autosave paused")
}

func (a *Autosave) Resume() {
	a.paused.Store(false)
	a.logger.Info("autosave resumed")
}

func (a *Autosave) IsPaused() bool {
	return a.paused.Load()
}
