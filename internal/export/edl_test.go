package export

import (
	"strings"
	"testing"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

func TestGenerateEDL_SingleClip(t *testing.T) {
	clips := []ResolvedClip{{
		ClipName:  "intro.mp4",
		MediaPath: "/media/intro.mp4",
		SourceIn:  0,
		Duration:  2,
	}}

	edl := GenerateEDL(clips, "Project One", 30.0)

	if !strings.Contains(edl, "TITLE: Project One") {
		t.Fatalf("missing title in EDL: %q", edl)
	}
	if !strings.Contains(edl, "FCM: NON-DROP FRAME") {
		t.Fatalf("missing non-drop-frame FCM: %q", edl)
	}
	if !strings.Contains(edl, "001  AX       V     C        00:00:00:00 00:00:02:00 00:00:00:00 00:00:02:00") {
		t.Fatalf("missing event line: %q", edl)
	}
	if !strings.Contains(edl, "* FROM CLIP NAME:  intro.mp4") {
		t.Fatalf("missing clip name comment: %q", edl)
	}
	if !strings.Contains(edl, "* MEDIA PATH:  /media/intro.mp4") {
		t.Fatalf("missing media path comment: %q", edl)
	}
}

func TestGenerateEDL_SourceInOffset(t *testing.T) {
	clips := []ResolvedClip{
		{ClipName: "a.mp4", MediaPath: "/a.mp4", SourceIn: 2, Duration: 10},
		{ClipName: "b.mp4", MediaPath: "/b.mp4", SourceIn: 0, Duration: 1.5},
	}

	edl := GenerateEDL(clips, "Offsets", 30.0)

	// First event reads source [2, 12) and records at [0, 10).
	if !strings.Contains(edl, "001  AX       V     C        00:00:02:00 00:00:12:00 00:00:00:00 00:00:10:00") {
		t.Fatalf("first event line mismatch: %q", edl)
	}
	// Second event records right after the first.
	if !strings.Contains(edl, "002  AX       V     C        00:00:00:00 00:00:01:15 00:00:10:00 00:00:11:15") {
		t.Fatalf("second event line mismatch: %q", edl)
	}
}

func TestGenerateEDL_DropFrame(t *testing.T) {
	clips := []ResolvedClip{{ClipName: "c.mp4", MediaPath: "/x.mp4", Duration: 1}}
	edl := GenerateEDL(clips, "Drop", 29.97)

	if !strings.Contains(edl, "FCM: DROP FRAME") {
		t.Fatalf("expected drop frame FCM, got: %q", edl)
	}
}

func TestSecondsToTimecode(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		fps     int
		want    string
	}{
		{name: "zero", seconds: 0, fps: 30, want: "00:00:00:00"},
		{name: "one second", seconds: 1, fps: 30, want: "00:00:01:00"},
		{name: "half second", seconds: 0.5, fps: 30, want: "00:00:00:15"},
		{name: "one minute", seconds: 60, fps: 30, want: "00:01:00:00"},
		{name: "one hour", seconds: 3600, fps: 30, want: "01:00:00:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := secondsToTimecode(tc.seconds, tc.fps)
			if got != tc.want {
				t.Fatalf("secondsToTimecode(%v, %d) = %q, want %q", tc.seconds, tc.fps, got, tc.want)
			}
		})
	}
}

func TestResolveClips(t *testing.T) {
	snap := &timeline.Snapshot{
		VideoAssets: []*timeline.VideoAsset{
			{ID: "v1", Path: "/m/a.mp4", Filename: "a.mp4", Duration: 60},
		},
		Clips: []*timeline.Clip{
			{ID: "c2", AssetID: "v1", ProjectStart: 10, SourceIn: 0, Duration: 5},
			{ID: "c1", AssetID: "v1", ProjectStart: 0, SourceIn: 3, Duration: 10},
			{ID: "c3", AssetID: "ghost", ProjectStart: 20, Duration: 5},
		},
	}

	resolved, unresolved := ResolveClips(snap)

	if len(resolved) != 2 {
		t.Fatalf("resolved %d clips, want 2", len(resolved))
	}
	// Project order, not slice order.
	if resolved[0].SourceIn != 3 {
		t.Errorf("first resolved clip SourceIn = %v, want 3 (c1)", resolved[0].SourceIn)
	}
	if len(unresolved) != 1 || unresolved[0] != "c3" {
		t.Errorf("unresolved = %v, want [c3]", unresolved)
	}
}
