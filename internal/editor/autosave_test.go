package editor

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

func TestAutosave_FlushesDirtySessions(t *testing.T) {
	e, repo := setupEditor(t)
	s := openTestSession(t, e)

	if err := s.SetSubtitles([]*timeline.SubtitleLine{
		{ID: "s1", StartTime: 0, EndTime: 2, Text: "autosaved"},
	}); err != nil {
		t.Fatalf("SetSubtitles() error = %v", err)
	}
	if !s.Dirty() {
		t.Fatal("session should be dirty after edit")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := NewAutosave(e, 10*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for s.Dirty() {
		select {
		case <-deadline:
			t.Fatal("session still dirty after autosave interval")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	snap, err := repo.LoadSnapshot(context.Background(), s.ProjectID())
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if len(snap.Subtitles) != 1 || snap.Subtitles[0].Text != "autosaved" {
		t.Errorf("persisted snapshot = %+v, want the autosaved line", snap.Subtitles)
	}
}

func TestAutosave_PauseSkipsFlush(t *testing.T) {
	e, _ := setupEditor(t)
	s := openTestSession(t, e)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := NewAutosave(e, 10*time.Millisecond, logger)
	a.Pause()

	if !a.IsPaused() {
		t.Fatal("IsPaused() = false after Pause()")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Start(ctx)
		close(done)
	}()

	if err := s.SetSubtitles([]*timeline.SubtitleLine{
		{ID: "s1", StartTime: 0, EndTime: 2, Text: "held back"},
	}); err != nil {
		t.Fatalf("SetSubtitles() error = %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if !s.Dirty() {
		t.Error("paused autosave should not have flushed the session")
	}

	// The final flush on shutdown still runs even while paused.
	cancel()
	<-done
	if s.Dirty() {
		t.Error("shutdown flush should have saved the session")
	}

	a.Resume()
	if a.IsPaused() {
		t.Error("IsPaused() = true after Resume()")
	}
}
