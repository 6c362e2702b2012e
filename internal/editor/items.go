package editor

import (
	"fmt"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

// RegisterVideoAsset adds an uploaded video asset to the project. Assets are
// immutable after creation except for metadata refresh.
func (s *Session) RegisterVideoAsset(a *timeline.VideoAsset) (*timeline.VideoAsset, error) {
	if a.Duration <= 0 {
		return nil, fmt.Errorf("video asset duration must be positive")
	}
	if a.ID == "" {
		a.ID = timeline.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.VideoAssets = append(s.snap.VideoAssets, a)
	s.dirty = true
	return a, nil
}

// RegisterImageAsset adds an uploaded image asset to the project.
func (s *Session) RegisterImageAsset(a *timeline.ImageAsset) *timeline.ImageAsset {
	if a.ID == "" {
		a.ID = timeline.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.ImageAssets = append(s.snap.ImageAssets, a)
	s.dirty = true
	return a
}

// RefreshVideoAssetMetadata updates an asset's probed metadata in place.
// The only mutation assets allow after creation.
func (s *Session) RefreshVideoAssetMetadata(id string, width, height int, size int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.snap.VideoAssetByID(id)
	if a == nil {
		return fmt.Errorf("video asset not found: %s", id)
	}
	a.Width = width
	a.Height = height
	a.Size = size
	s.dirty = true
	return nil
}

// AddClip places a slice of a video asset on the timeline. Overlap with
// existing clips is permitted; the resolver picks the earliest-starting item
// at playback time.
func (s *Session) AddClip(assetID string, projectStart, sourceIn, duration float64) (*timeline.Clip, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("clip duration must be positive")
	}
	if sourceIn < 0 {
		return nil, fmt.Errorf("clip source-in must not be negative")
	}
	if projectStart < 0 {
		projectStart = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.VideoAssetByID(assetID) == nil {
		return nil, fmt.Errorf("video asset not found: %s", assetID)
	}

	clip := &timeline.Clip{
		ID:           timeline.NewID(),
		AssetID:      assetID,
		ProjectStart: projectStart,
		SourceIn:     sourceIn,
		Duration:     duration,
	}
	s.snap.Clips = append(s.snap.Clips, clip)
	s.dirty = true
	return clip, nil
}

// AddImage places an image asset on the timeline for duration seconds.
func (s *Session) AddImage(assetID string, projectStart, duration float64) (*timeline.Image, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("image duration must be positive")
	}
	if projectStart < 0 {
		projectStart = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.ImageAssetByID(assetID) == nil {
		return nil, fmt.Errorf("image asset not found: %s", assetID)
	}

	img := &timeline.Image{
		ID:           timeline.NewID(),
		AssetID:      assetID,
		ProjectStart: projectStart,
		Duration:     duration,
	}
	s.snap.Images = append(s.snap.Images, img)
	s.dirty = true
	return img, nil
}

// RemoveItem deletes a clip or image placement from the timeline and drops
// it from the selection. The underlying asset stays.
func (s *Session) RemoveItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.snap.Clips {
		if c.ID == id {
			s.snap.Clips = append(s.snap.Clips[:i], s.snap.Clips[i+1:]...)
			s.selection.Remove(id)
			s.dirty = true
			return nil
		}
	}
	for i, img := range s.snap.Images {
		if img.ID == id {
			s.snap.Images = append(s.snap.Images[:i], s.snap.Images[i+1:]...)
			s.selection.Remove(id)
			s.dirty = true
			return nil
		}
	}
	return fmt.Errorf("timeline item not found: %s", id)
}
