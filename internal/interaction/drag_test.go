package interaction

import (
	"math"
	"testing"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDragSession_Move(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	line := &timeline.SubtitleLine{StartTime: 2, EndTime: 4}

	s := BeginDrag(v, EdgeBoth, 10, SubtitleTarget{Line: line})
	s.Update(100) // +1s
	s.End()

	if !approx(line.StartTime, 3) || !approx(line.EndTime, 5) {
		t.Errorf("after move: [%v, %v], want [3, 5]", line.StartTime, line.EndTime)
	}
}

func TestDragSession_MoveCumulative(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	line := &timeline.SubtitleLine{StartTime: 2, EndTime: 4}

	s := BeginDrag(v, EdgeBoth, 10, SubtitleTarget{Line: line})
	// Deltas accumulate across events: +0.5s then -0.2s.
	s.Update(50)
	s.Update(-20)
	s.End()

	if !approx(line.StartTime, 2.3) || !approx(line.EndTime, 4.3) {
		t.Errorf("after moves: [%v, %v], want [2.3, 4.3]", line.StartTime, line.EndTime)
	}
}

func TestDragSession_MoveClampsAtZero(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	line := &timeline.SubtitleLine{StartTime: 1, EndTime: 3}

	s := BeginDrag(v, EdgeBoth, 10, SubtitleTarget{Line: line})
	s.Update(-500) // -5s, past the origin

	if !approx(line.StartTime, 0) || !approx(line.EndTime, 2) {
		t.Errorf("move past origin: [%v, %v], want [0, 2]", line.StartTime, line.EndTime)
	}
}

func TestDragSession_ResizeLeft(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	line := &timeline.SubtitleLine{StartTime: 2, EndTime: 4}

	s := BeginDrag(v, EdgeLeft, 10, SubtitleTarget{Line: line})
	s.Update(-100) // start -1s

	if !approx(line.StartTime, 1) || !approx(line.EndTime, 4) {
		t.Errorf("resize left: [%v, %v], want [1, 4]", line.StartTime, line.EndTime)
	}

	s.Update(-500) // would put start at -4; clamp to 0
	if !approx(line.StartTime, 0) {
		t.Errorf("resize left past origin: start = %v, want 0", line.StartTime)
	}
}

func TestDragSession_ResizeRightClampsToProjectDuration(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	line := &timeline.SubtitleLine{StartTime: 2, EndTime: 4}

	// Dragging the right edge of [2, 4] by +10s on a 6-second project
	// clamps to 6.0, not 14.0.
	s := BeginDrag(v, EdgeRight, 6, SubtitleTarget{Line: line})
	s.Update(1000)

	if !approx(line.EndTime, 6) {
		t.Errorf("resize right: end = %v, want 6 (clamped)", line.EndTime)
	}
}

func TestDragSession_MinDurationGuard(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	line := &timeline.SubtitleLine{StartTime: 2, EndTime: 4}

	s := BeginDrag(v, EdgeRight, 10, SubtitleTarget{Line: line})
	s.Update(-195) // end would land at 2.05, duration 0.05 < 0.1

	// The mutation is rejected for the event; the item does not update.
	if !approx(line.EndTime, 4) {
		t.Errorf("end = %v, want 4 (mutation rejected)", line.EndTime)
	}

	// A later in-bounds event still applies.
	s.Update(-100)
	if !approx(line.EndTime, 3) {
		t.Errorf("end = %v, want 3", line.EndTime)
	}

	if line.EndTime-line.StartTime < timeline.MinItemDuration {
		t.Error("minimum duration invariant violated")
	}
}

func TestDragSession_MinDurationGuardLeft(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	line := &timeline.SubtitleLine{StartTime: 2, EndTime: 4}

	s := BeginDrag(v, EdgeLeft, 10, SubtitleTarget{Line: line})
	s.Update(195) // start would land at 3.95, duration 0.05 < 0.1

	if !approx(line.StartTime, 2) {
		t.Errorf("start = %v, want 2 (mutation rejected)", line.StartTime)
	}
}

func TestDragSession_UpdateAfterEnd(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	line := &timeline.SubtitleLine{StartTime: 2, EndTime: 4}

	s := BeginDrag(v, EdgeBoth, 10, SubtitleTarget{Line: line})
	s.End()
	s.End() // idempotent, e.g. pointer-up racing window blur
	s.Update(100)

	if !approx(line.StartTime, 2) || !approx(line.EndTime, 4) {
		t.Error("update after end mutated the target")
	}
	if s.Active() {
		t.Error("ended session reports active")
	}
}

func TestDragSession_MultipleTargets(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	a := &timeline.SubtitleLine{StartTime: 1, EndTime: 2}
	b := &timeline.SubtitleLine{StartTime: 3, EndTime: 5}

	s := BeginDrag(v, EdgeBoth, 10, SubtitleTarget{Line: a}, SubtitleTarget{Line: b})
	s.Update(100)

	if !approx(a.StartTime, 2) || !approx(b.StartTime, 4) {
		t.Errorf("group move: a.start = %v, b.start = %v, want 2 and 4", a.StartTime, b.StartTime)
	}
}

func TestClipTarget_MovePreservesSourceIn(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	clip := &timeline.Clip{ProjectStart: 5, SourceIn: 2, Duration: 10}

	s := BeginDrag(v, EdgeBoth, 30, ClipTarget{Clip: clip})
	s.Update(100)

	if !approx(clip.ProjectStart, 6) {
		t.Errorf("ProjectStart = %v, want 6", clip.ProjectStart)
	}
	if !approx(clip.SourceIn, 2) {
		t.Errorf("move changed SourceIn to %v, want 2", clip.SourceIn)
	}
	if !approx(clip.Duration, 10) {
		t.Errorf("move changed Duration to %v, want 10", clip.Duration)
	}
}

func TestClipTarget_ResizeLeftAdvancesSourceIn(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	clip := &timeline.Clip{ProjectStart: 5, SourceIn: 2, Duration: 10}

	s := BeginDrag(v, EdgeLeft, 30, ClipTarget{Clip: clip})
	s.Update(100) // trim 1s off the front

	if !approx(clip.ProjectStart, 6) {
		t.Errorf("ProjectStart = %v, want 6", clip.ProjectStart)
	}
	if !approx(clip.SourceIn, 3) {
		t.Errorf("SourceIn = %v, want 3 (source stays anchored)", clip.SourceIn)
	}
	if !approx(clip.Duration, 9) {
		t.Errorf("Duration = %v, want 9", clip.Duration)
	}
}

func TestImageTarget_Resize(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 100}
	img := &timeline.Image{ProjectStart: 2, Duration: 3}

	s := BeginDrag(v, EdgeRight, 20, ImageTarget{Image: img})
	s.Update(200)

	if !approx(img.Duration, 5) {
		t.Errorf("Duration = %v, want 5", img.Duration)
	}
}
