package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cutboard/cutboard-agent/internal/export"
)

func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req export.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		format := strings.ToLower(req.Format)
		if format != "srt" && format != "edl" {
			WriteError(w, http.StatusBadRequest, "format must be srt or edl", "BAD_REQUEST")
			return
		}

		if err := export.ValidateOutputDir(req.OutputDir); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		projectName := export.SanitizeName(req.ProjectName, 120)
		if projectName == "" {
			projectName = "cutboard_export"
		}

		snap := s.Snapshot()

		switch format {
		case "srt":
			if len(snap.Subtitles) == 0 {
				WriteError(w, http.StatusUnprocessableEntity, "no subtitle lines to export", "EMPTY_EXPORT")
				return
			}

			srt := export.GenerateSRT(snap.Subtitles)
			outputPath := filepath.Join(req.OutputDir, projectName+".srt")
			if err := os.WriteFile(outputPath, []byte(srt), 0o644); err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to write export file", "INTERNAL_ERROR")
				return
			}

			WriteJSON(w, http.StatusOK, export.Response{
				Status:     "ok",
				Format:     "srt",
				OutputPath: outputPath,
				LineCount:  len(snap.Subtitles),
			})

		case "edl":
			frameRate := req.FrameRate
			if frameRate <= 0 {
				frameRate = 30.0
			}

			clips, unresolved := export.ResolveClips(snap)
			if len(clips) == 0 {
				WriteError(w, http.StatusUnprocessableEntity, "no clips could be resolved", "UNRESOLVABLE_CLIPS")
				return
			}

			edl := export.GenerateEDL(clips, projectName, frameRate)
			outputPath := filepath.Join(req.OutputDir, projectName+".edl")
			if err := os.WriteFile(outputPath, []byte(edl), 0o644); err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to write export file", "INTERNAL_ERROR")
				return
			}

			WriteJSON(w, http.StatusOK, export.Response{
				Status:          "ok",
				Format:          "edl",
				OutputPath:      outputPath,
				ClipCount:       len(clips),
				UnresolvedClips: unresolved,
			})
		}
	}
}
