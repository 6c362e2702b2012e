package interaction

import (
	"math"
	"testing"
)

func TestViewport_ZoomMultiplicative(t *testing.T) {
	v := NewViewport()

	v.ZoomIn()
	if v.PixelsPerSecond != 100*ZoomInFactor {
		t.Fatalf("after zoom in: %v, want %v", v.PixelsPerSecond, 100*ZoomInFactor)
	}

	v.ZoomOut()
	// One in then one out lands on 99, not back on 100: zoom is
	// multiplicative, not required to be invertible.
	if math.Abs(v.PixelsPerSecond-99) > 1e-9 {
		t.Errorf("after in+out: %v, want 99", v.PixelsPerSecond)
	}
}

func TestViewport_ZoomBounds(t *testing.T) {
	v := NewViewport()

	for i := 0; i < 100; i++ {
		v.ZoomIn()
	}
	if v.PixelsPerSecond != MaxPixelsPerSecond {
		t.Errorf("zoom in unbounded: %v, want clamp at %v", v.PixelsPerSecond, MaxPixelsPerSecond)
	}

	for i := 0; i < 100; i++ {
		v.ZoomOut()
	}
	if v.PixelsPerSecond != MinPixelsPerSecond {
		t.Errorf("zoom out unbounded: %v, want clamp at %v", v.PixelsPerSecond, MinPixelsPerSecond)
	}
}

func TestViewport_ResetZoom(t *testing.T) {
	v := NewViewport()
	v.ZoomIn()
	v.ZoomIn()

	v.ResetZoom()
	if v.PixelsPerSecond != DefaultPixelsPerSecond {
		t.Errorf("ResetZoom: %v, want %v", v.PixelsPerSecond, DefaultPixelsPerSecond)
	}
}

func TestViewport_WheelZoomModifier(t *testing.T) {
	v := NewViewport()

	v.Wheel(0, -10, true) // wheel up with modifier: zoom in
	if v.PixelsPerSecond <= DefaultPixelsPerSecond {
		t.Error("wheel up with modifier should zoom in")
	}

	v.ResetZoom()
	v.Wheel(0, 10, true) // wheel down with modifier: zoom out
	if v.PixelsPerSecond >= DefaultPixelsPerSecond {
		t.Error("wheel down with modifier should zoom out")
	}
}

func TestViewport_WheelPansHorizontally(t *testing.T) {
	v := NewViewport()

	v.Wheel(30, 0, false)
	if v.ScrollOffset != 30 {
		t.Errorf("ScrollOffset = %v, want 30", v.ScrollOffset)
	}

	// Vertical wheel deltas are remapped to horizontal panning.
	v.Wheel(0, 20, false)
	if v.ScrollOffset != 50 {
		t.Errorf("ScrollOffset = %v, want 50 after vertical remap", v.ScrollOffset)
	}

	// Panning never scrolls past the timeline origin.
	v.Wheel(0, -500, false)
	if v.ScrollOffset != 0 {
		t.Errorf("ScrollOffset = %v, want clamp at 0", v.ScrollOffset)
	}
}

func TestViewport_TimePixelMapping(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 50, ScrollOffset: 100}

	// Pixel 150 with 100px scrolled off is absolute pixel 250 = 5s.
	if got := v.TimeAt(150); got != 5 {
		t.Errorf("TimeAt(150) = %v, want 5", got)
	}
	if got := v.PixelAt(5); got != 150 {
		t.Errorf("PixelAt(5) = %v, want 150", got)
	}
}

func TestViewport_DeltaTime(t *testing.T) {
	v := &Viewport{PixelsPerSecond: 200}

	if got := v.DeltaTime(100); got != 0.5 {
		t.Errorf("DeltaTime(100) = %v, want 0.5", got)
	}
	if got := v.DeltaTime(-50); got != -0.25 {
		t.Errorf("DeltaTime(-50) = %v, want -0.25", got)
	}
}
