package export

import (
	"sort"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

type Request struct {
	ProjectName string  `json:"project_name"`
	Format      string  `json:"format"` // "srt" or "edl"
	OutputDir   string  `json:"output_dir"`
	FrameRate   float64 `json:"frame_rate,omitempty"`
}

// Response reports where an export landed and anything that was skipped.
type Response struct {
	Status          string   `json:"status"`
	Format          string   `json:"format"`
	OutputPath      string   `json:"output_path"`
	ClipCount       int      `json:"clip_count,omitempty"`
	LineCount       int      `json:"line_count,omitempty"`
	UnresolvedClips []string `json:"unresolved_clips,omitempty"`
}

// ResolvedClip is a timeline clip with its asset reference resolved to a
// media path, in project order, ready for EDL generation.
type ResolvedClip struct {
	ClipName  string
	MediaPath string
	SourceIn  float64
	Duration  float64
}

// ResolveClips maps the snapshot's clip placements to export clips ordered by
// project start. Clips whose asset no longer exists are reported by id in the
// second return instead of failing the whole export.
func ResolveClips(snap *timeline.Snapshot) ([]ResolvedClip, []string) {
	ordered := make([]*timeline.Clip, len(snap.Clips))
	copy(ordered, snap.Clips)
	sortClipsByStart(ordered)

	var resolved []ResolvedClip
	var unresolved []string
	for _, c := range ordered {
		asset := snap.VideoAssetByID(c.AssetID)
		if asset == nil {
			unresolved = append(unresolved, c.ID)
			continue
		}
		resolved = append(resolved, ResolvedClip{
			ClipName:  asset.Filename,
			MediaPath: asset.Path,
			SourceIn:  c.SourceIn,
			Duration:  c.Duration,
		})
	}
	return resolved, unresolved
}

func sortClipsByStart(clips []*timeline.Clip) {
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].ProjectStart < clips[j].ProjectStart
	})
}
