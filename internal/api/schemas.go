package api

import (
	"time"

	"github.com/cutboard/cutboard-agent/internal/project"
	"github.com/cutboard/cutboard-agent/internal/timeline"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	UptimeS  int64  `json:"uptime_s"`
	DeviceID string `json:"device_id"`
}

type StatusResponse struct {
	State          string `json:"state"`
	OpenProjects   int    `json:"open_projects"`
	DirtyProjects  int    `json:"dirty_projects"`
	AutosavePaused bool   `json:"autosave_paused"`
}

type ProjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Open      bool   `json:"open"`
	Dirty     bool   `json:"dirty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type CreateProjectRequest struct {
	Name string `json:"name"`
}

type SubtitlesRequest struct {
	Subtitles []*timeline.SubtitleLine `json:"subtitles"`
}

type SubtitlesResponse struct {
	Subtitles []*timeline.SubtitleLine `json:"subtitles"`
	HistoryResponse
}

// HistoryResponse reports undo/redo availability after any edit so the UI
// can enable or disable its buttons without a second round trip.
type HistoryResponse struct {
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

type RegisterVideoAssetRequest struct {
	Path     string  `json:"path"`
	Filename string  `json:"filename"`
	Duration float64 `json:"duration"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Size     int64   `json:"size,omitempty"`
}

type RegisterImageAssetRequest struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

type AddClipRequest struct {
	AssetID      string  `json:"asset_id"`
	ProjectStart float64 `json:"project_start"`
	SourceIn     float64 `json:"source_in"`
	Duration     float64 `json:"duration"`
}

type AddImageRequest struct {
	AssetID      string  `json:"asset_id"`
	ProjectStart float64 `json:"project_start"`
	Duration     float64 `json:"duration"`
}

type SeekRequest struct {
	Time float64 `json:"time"`
}

type PlayheadResponse struct {
	Playhead float64 `json:"playhead"`
}

// SyncRequest carries the playback element's reported media-local time.
type SyncRequest struct {
	MediaTime float64 `json:"media_time"`
}

type SyncResponse struct {
	Playhead float64 `json:"playhead"`
	Moved    bool    `json:"moved"`
}

type NeedsSeekResponse struct {
	SourceTime float64 `json:"source_time"`
	NeedsSeek  bool    `json:"needs_seek"`
}

type ActiveResponse struct {
	Clip        *timeline.Clip  `json:"clip,omitempty"`
	Image       *timeline.Image `json:"image,omitempty"`
	SourceTime  float64         `json:"source_time,omitempty"`
	AspectRatio float64         `json:"aspect_ratio"`
}

type ZoomRequest struct {
	Direction string `json:"direction"` // "in", "out", or "reset"
}

type WheelRequest struct {
	DeltaX       float64 `json:"delta_x"`
	DeltaY       float64 `json:"delta_y"`
	ZoomModifier bool    `json:"zoom_modifier"`
}

type ViewportResponse struct {
	PixelsPerSecond float64 `json:"pixels_per_second"`
	ScrollOffset    float64 `json:"scroll_offset"`
}

type DragBeginRequest struct {
	ItemID string `json:"item_id"`
	Edge   string `json:"edge"` // "move", "left", or "right"
}

type DragUpdateRequest struct {
	DeltaPixels float64 `json:"delta_pixels"`
}

type ScrubRequest struct {
	Pixels float64 `json:"pixels"`
}

type SelectRequest struct {
	ItemID   string `json:"item_id"`
	Modifier bool   `json:"modifier"`
}

type SelectionResponse struct {
	Selected []string `json:"selected"`
}

type CommandResponse struct {
	Affected int `json:"affected"`
	HistoryResponse
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ProjectToResponse(p *project.Project, open, dirty bool) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Open:      open,
		Dirty:     dirty,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
