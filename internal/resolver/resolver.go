// Package resolver maps the project clock onto the independently-clocked
// media sources placed on the timeline. Given a project time it decides which
// clip or image is active per track and converts between project time and a
// clip's local source time.
package resolver

import (
	"errors"
	"fmt"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// ErrAssetMissing reports a clip whose referenced asset no longer exists in
// the snapshot. This is the one genuinely unexpected condition the resolver
// surfaces; gaps are not errors.
var ErrAssetMissing = errors.New("referenced asset not found")

// DefaultAspectRatio is used when an asset's probed dimensions are missing or
// stale. Time-mapping never blocks on metadata.
const DefaultAspectRatio = 16.0 / 9.0

// ActiveClipAt returns the clip whose interval contains t, or nil when the
// video track has a gap at t. Overlapping placements are permitted; clips are
// considered in ProjectStart order and the first match wins.
func ActiveClipAt(t float64, clips []*timeline.Clip) *timeline.Clip {
	var active *timeline.Clip
	for _, c := range clips {
		if t < c.ProjectStart || t >= c.ProjectEnd() {
			continue
		}
		if active == nil || c.ProjectStart < active.ProjectStart {
			active = c
		}
	}
	return active
}

// ActiveImageAt returns the image whose interval contains t, or nil for a gap.
// Same first-match-by-start ordering as ActiveClipAt.
func ActiveImageAt(t float64, images []*timeline.Image) *timeline.Image {
	var active *timeline.Image
	for _, img := range images {
		if t < img.ProjectStart || t >= img.ProjectEnd() {
			continue
		}
		if active == nil || img.ProjectStart < active.ProjectStart {
			active = img
		}
	}
	return active
}

// SourceTime converts a project time to the clip's local source time.
func SourceTime(t float64, clip *timeline.Clip) float64 {
	return (t - clip.ProjectStart) + clip.SourceIn
}

// ProjectTime converts a clip-local source time back to project time. Inverse
// of SourceTime for the same clip.
func ProjectTime(localTime float64, clip *timeline.Clip) float64 {
	return clip.ProjectStart + (localTime - clip.SourceIn)
}

// ActiveState describes the resolved playback state at one project time.
type ActiveState struct {
	Clip        *timeline.Clip
	Image       *timeline.Image
	SourceTime  float64 // valid only when Clip != nil
	AspectRatio float64
}

// Resolve computes the active item per track at t and the active clip's local
// source time. A clip referencing a missing asset is reported to the caller;
// missing dimensions degrade to DefaultAspectRatio.
func Resolve(t float64, snap *timeline.Snapshot) (*ActiveState, error) {
	state := &ActiveState{AspectRatio: DefaultAspectRatio}

	state.Clip = ActiveClipAt(t, snap.Clips)
	state.Image = ActiveImageAt(t, snap.Images)

	if state.Clip != nil {
		state.SourceTime = SourceTime(t, state.Clip)

		asset := snap.VideoAssetByID(state.Clip.AssetID)
		if asset == nil {
			return state, fmt.Errorf("clip %s: %w: %s", state.Clip.ID, ErrAssetMissing, state.Clip.AssetID)
		}
		if asset.Width > 0 && asset.Height > 0 {
			state.AspectRatio = float64(asset.Width) / float64(asset.Height)
		}
	}

	return state, nil
}
