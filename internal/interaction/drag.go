package interaction

import "github.com/cutboard/cutboard-agent/internal/timeline"

// Edge identifies which edge(s) of an item a drag session grabbed.
type Edge int

const (
	EdgeBoth  Edge = iota // move: both times shift together
	EdgeLeft              // resize: only the start time shifts
	EdgeRight             // resize: only the end time shifts
)

// Target is a timeline item a drag session mutates. Adapters wrap subtitle
// lines, clips, and images.
type Target interface {
	Interval() (start, end float64)
	SetInterval(start, end float64)
}

// DragSession is one pointer-down-to-pointer-up move/resize gesture. The
// surrounding layer routes pointer-move events into Update for the session's
// lifetime and calls End on pointer-up; no listeners outlive the session.
//
// Update events must arrive in order: each carries the pixel delta since the
// previous event, so reordering would corrupt the cumulative offset.
type DragSession struct {
	viewport        *Viewport
	edge            Edge
	targets         []Target
	projectDuration float64
	active          bool
}

// BeginDrag starts a drag session over the given targets. projectDuration is
// the derived project duration at session start, used to clamp right-edge
// resizes.
func BeginDrag(v *Viewport, edge Edge, projectDuration float64, targets ...Target) *DragSession {
	return &DragSession{
		viewport:        v,
		edge:            edge,
		targets:         targets,
		projectDuration: projectDuration,
		active:          true,
	}
}

// Update applies one pointer-move event. deltaPixels is the horizontal
// movement since the previous event. A mutation that would leave a target
// shorter than the minimum duration is rejected for that event; the target
// simply does not move that frame.
func (s *DragSession) Update(deltaPixels float64) {
	if !s.active {
		return
	}

	dt := s.viewport.DeltaTime(deltaPixels)
	for _, target := range s.targets {
		start, end := target.Interval()

		switch s.edge {
		case EdgeBoth:
			newStart := start + dt
			if newStart < 0 {
				newStart = 0
			}
			target.SetInterval(newStart, newStart+(end-start))

		case EdgeLeft:
			newStart := start + dt
			if newStart < 0 {
				newStart = 0
			}
			if end-newStart < timeline.MinItemDuration {
				continue
			}
			target.SetInterval(newStart, end)

		case EdgeRight:
			newEnd := end + dt
			if newEnd > s.projectDuration {
				newEnd = s.projectDuration
			}
			if newEnd-start < timeline.MinItemDuration {
				continue
			}
			target.SetInterval(start, newEnd)
		}
	}
}

// End completes the session. Idempotent; a session abandoned by window blur
// is ended the same way and further updates are ignored.
func (s *DragSession) End() {
	s.active = false
}

// Active reports whether the session still accepts updates.
func (s *DragSession) Active() bool {
	return s.active
}

// SubtitleTarget adapts a SubtitleLine for drag sessions.
type SubtitleTarget struct {
	Line *timeline.SubtitleLine
}

func (t SubtitleTarget) Interval() (float64, float64) {
	return t.Line.StartTime, t.Line.EndTime
}

func (t SubtitleTarget) SetInterval(start, end float64) {
	t.Line.StartTime = start
	t.Line.EndTime = end
}

// ClipTarget adapts a Clip for drag sessions. Resizing the left edge keeps
// the source material anchored: SourceIn advances by the same amount the
// project start does, so the clip reveals earlier or later source frames
// instead of sliding them.
type ClipTarget struct {
	Clip *timeline.Clip
}

func (t ClipTarget) Interval() (float64, float64) {
	return t.Clip.ProjectStart, t.Clip.ProjectEnd()
}

func (t ClipTarget) SetInterval(start, end float64) {
	shift := start - t.Clip.ProjectStart
	grew := (end - start) - t.Clip.Duration
	if grew != 0 && shift != 0 {
		// Left-edge resize: keep source anchored, never rewind past 0.
		newIn := t.Clip.SourceIn + shift
		if newIn < 0 {
			newIn = 0
		}
		t.Clip.SourceIn = newIn
	}
	t.Clip.ProjectStart = start
	t.Clip.Duration = end - start
}

// ImageTarget adapts an Image for drag sessions.
type ImageTarget struct {
	Image *timeline.Image
}

func (t ImageTarget) Interval() (float64, float64) {
	return t.Image.ProjectStart, t.Image.ProjectEnd()
}

func (t ImageTarget) SetInterval(start, end float64) {
	t.Image.ProjectStart = start
	t.Image.Duration = end - start
}
