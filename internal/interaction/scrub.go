package interaction

// ScrubSession is one pointer-down-to-pointer-up seek gesture on empty
// timeline background. Unlike a drag session it works on absolute pointer
// position, not relative deltas: every pointer-move re-derives the seek time
// from where the pointer is now.
type ScrubSession struct {
	viewport *Viewport
	duration float64
	active   bool
}

// BeginScrub starts a scrub session. duration is the derived project
// duration, bounding the emitted seek times.
func BeginScrub(v *Viewport, duration float64) *ScrubSession {
	return &ScrubSession{viewport: v, duration: duration, active: true}
}

// Update converts the pointer's horizontal position to a seek time clamped
// to [0, duration]. The second return is false once the session has ended.
func (s *ScrubSession) Update(px float64) (float64, bool) {
	if !s.active {
		return 0, false
	}

	t := s.viewport.TimeAt(px)
	if t < 0 {
		t = 0
	}
	if t > s.duration {
		t = s.duration
	}
	return t, true
}

// End completes the session. Idempotent.
func (s *ScrubSession) End() {
	s.active = false
}

// Active reports whether the session still emits seeks.
func (s *ScrubSession) Active() bool {
	return s.active
}
