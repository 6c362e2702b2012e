// Package interaction implements the pointer-driven editing gestures of the
// timeline: zoom and pan of the visible window, drag sessions that move or
// resize items, and scrub sessions that seek the playhead. Everything is
// expressed in pixel space through a single zoom-dependent scale factor.
package interaction

// Zoom bounds and step factors. Zoom is multiplicative so repeated steps feel
// proportional at every scale; one in-step followed by one out-step does not
// return exactly to the starting value (100 * 1.1 * 0.9 = 99).
const (
	MinPixelsPerSecond     = 20.0
	MaxPixelsPerSecond     = 400.0
	DefaultPixelsPerSecond = 100.0

	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

// Viewport maps between pixel offsets and project time. PixelsPerSecond is
// the zoom level; ScrollOffset is the pixel position of the left edge of the
// visible window.
type Viewport struct {
	PixelsPerSecond float64
	ScrollOffset    float64
}

func NewViewport() *Viewport {
	return &Viewport{PixelsPerSecond: DefaultPixelsPerSecond}
}

// ZoomIn applies one discrete zoom-in step, clamped to MaxPixelsPerSecond.
func (v *Viewport) ZoomIn() {
	v.PixelsPerSecond *= ZoomInFactor
	if v.PixelsPerSecond > MaxPixelsPerSecond {
		v.PixelsPerSecond = MaxPixelsPerSecond
	}
}

// ZoomOut applies one discrete zoom-out step, clamped to MinPixelsPerSecond.
func (v *Viewport) ZoomOut() {
	v.PixelsPerSecond *= ZoomOutFactor
	if v.PixelsPerSecond < MinPixelsPerSecond {
		v.PixelsPerSecond = MinPixelsPerSecond
	}
}

// ResetZoom restores the default zoom level.
func (v *Viewport) ResetZoom() {
	v.PixelsPerSecond = DefaultPixelsPerSecond
}

// Wheel handles a scroll gesture. With zoomModifier held the vertical delta
// becomes discrete zoom steps; otherwise the gesture pans horizontally, and a
// conventional vertical wheel is remapped to horizontal panning so it still
// scrolls the (horizontal) timeline.
func (v *Viewport) Wheel(deltaX, deltaY float64, zoomModifier bool) {
	if zoomModifier {
		if deltaY < 0 {
			v.ZoomIn()
		} else if deltaY > 0 {
			v.ZoomOut()
		}
		return
	}

	delta := deltaX
	if delta == 0 {
		delta = deltaY
	}
	v.ScrollOffset += delta
	if v.ScrollOffset < 0 {
		v.ScrollOffset = 0
	}
}

// TimeAt converts an absolute pixel position inside the timeline surface to
// project time.
func (v *Viewport) TimeAt(px float64) float64 {
	return (v.ScrollOffset + px) / v.PixelsPerSecond
}

// PixelAt converts a project time to a pixel position inside the timeline
// surface.
func (v *Viewport) PixelAt(t float64) float64 {
	return t*v.PixelsPerSecond - v.ScrollOffset
}

// DeltaTime converts a pixel delta to a time delta at the current zoom.
func (v *Viewport) DeltaTime(deltaPixels float64) float64 {
	return deltaPixels / v.PixelsPerSecond
}
