package timeline

import (
	"crypto/rand"
	"fmt"
)

// MinItemDuration is the shortest interval any timeline item may be resized to,
// in seconds. Mutations that would shrink an item below this are rejected.
const MinItemDuration = 0.1

// SubtitleLine is one caption interval on the subtitle track. Times are
// project-clock seconds. SecondaryText carries the optional translation and is
// rendered as a second line when present.
type SubtitleLine struct {
	ID            string  `json:"id"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	Text          string  `json:"text"`
	SecondaryText string  `json:"secondary_text,omitempty"`
	Color         string  `json:"color,omitempty"`
}

// Duration returns the interval length in seconds.
func (s *SubtitleLine) Duration() float64 {
	return s.EndTime - s.StartTime
}

// VideoAsset is an uploaded video file. Immutable after creation except for
// metadata refresh (measured size, probed dimensions).
type VideoAsset struct {
	ID       string  `json:"id"`
	Path     string  `json:"path"`
	Filename string  `json:"filename"`
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Size     int64   `json:"size"`
}

// ImageAsset is an uploaded still image.
type ImageAsset struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
}

// Clip places a time-slice of a VideoAsset on the project timeline. AssetID is
// a lookup reference only; the clip does not own the asset. ProjectStart and
// SourceIn are seconds, Duration > 0, SourceIn >= 0. SourceIn+Duration past the
// asset's duration is tolerated, not rejected: the player simply runs out of
// media early.
type Clip struct {
	ID           string  `json:"id"`
	AssetID      string  `json:"asset_id"`
	ProjectStart float64 `json:"project_start"`
	SourceIn     float64 `json:"source_in"`
	Duration     float64 `json:"duration"`
}

// ProjectEnd returns the clip's end on the project clock.
func (c *Clip) ProjectEnd() float64 {
	return c.ProjectStart + c.Duration
}

// Image places an ImageAsset on the project timeline for Duration seconds.
type Image struct {
	ID           string  `json:"id"`
	AssetID      string  `json:"asset_id"`
	ProjectStart float64 `json:"project_start"`
	Duration     float64 `json:"duration"`
}

// ProjectEnd returns the image's end on the project clock.
func (i *Image) ProjectEnd() float64 {
	return i.ProjectStart + i.Duration
}

// Snapshot is the full editable state of one project: everything the editor
// mutates and the persistence layer stores.
type Snapshot struct {
	VideoAssets []*VideoAsset   `json:"video_assets"`
	ImageAssets []*ImageAsset   `json:"image_assets"`
	Clips       []*Clip         `json:"clips"`
	Images      []*Image        `json:"images"`
	Subtitles   []*SubtitleLine `json:"subtitles"`
}

// Duration returns the derived total project duration: the max end time across
// all subtitle lines, clips, and images. It is recomputed on demand, never
// stored.
func (s *Snapshot) Duration() float64 {
	var max float64
	for _, sub := range s.Subtitles {
		if sub.EndTime > max {
			max = sub.EndTime
		}
	}
	for _, c := range s.Clips {
		if end := c.ProjectEnd(); end > max {
			max = end
		}
	}
	for _, img := range s.Images {
		if end := img.ProjectEnd(); end > max {
			max = end
		}
	}
	return max
}

// Clone returns a deep copy of the snapshot. Callers that hold a snapshot
// outside the editor's lock (persistence, API responses) must not alias the
// live collections a drag session mutates.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{Subtitles: CloneSubtitles(s.Subtitles)}
	if s.VideoAssets != nil {
		out.VideoAssets = make([]*VideoAsset, len(s.VideoAssets))
		for i, a := range s.VideoAssets {
			c := *a
			out.VideoAssets[i] = &c
		}
	}
	if s.ImageAssets != nil {
		out.ImageAssets = make([]*ImageAsset, len(s.ImageAssets))
		for i, a := range s.ImageAssets {
			c := *a
			out.ImageAssets[i] = &c
		}
	}
	if s.Clips != nil {
		out.Clips = make([]*Clip, len(s.Clips))
		for i, c := range s.Clips {
			cc := *c
			out.Clips[i] = &cc
		}
	}
	if s.Images != nil {
		out.Images = make([]*Image, len(s.Images))
		for i, img := range s.Images {
			c := *img
			out.Images[i] = &c
		}
	}
	return out
}

// VideoAssetByID returns the asset with the given id, or nil.
func (s *Snapshot) VideoAssetByID(id string) *VideoAsset {
	for _, a := range s.VideoAssets {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// ImageAssetByID returns the asset with the given id, or nil.
func (s *Snapshot) ImageAssetByID(id string) *ImageAsset {
	for _, a := range s.ImageAssets {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func NewID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}
