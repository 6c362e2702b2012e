package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cutboard/cutboard-agent/internal/interaction"
	"github.com/cutboard/cutboard-agent/internal/resolver"
)

func seekHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req SeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, PlayheadResponse{Playhead: s.Seek(req.Time)})
	}
}

func activeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		state, err := s.Active()
		if err != nil && !errors.Is(err, resolver.ErrAssetMissing) {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		resp := ActiveResponse{
			Clip:        state.Clip,
			Image:       state.Image,
			AspectRatio: state.AspectRatio,
		}
		if state.Clip != nil {
			resp.SourceTime = state.SourceTime
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func syncHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req SyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		playhead, moved := s.SyncFromMedia(req.MediaTime)
		WriteJSON(w, http.StatusOK, SyncResponse{Playhead: playhead, Moved: moved})
	}
}

func needsSeekHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var mediaTime float64
		if v := r.URL.Query().Get("media_time"); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "invalid media_time", "BAD_REQUEST")
				return
			}
			mediaTime = parsed
		}

		target, needed := s.NeedsSeek(mediaTime)
		WriteJSON(w, http.StatusOK, NeedsSeekResponse{SourceTime: target, NeedsSeek: needed})
	}
}

func zoomHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req ZoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		switch req.Direction {
		case "in":
			s.ZoomIn()
		case "out":
			s.ZoomOut()
		case "reset":
			s.ResetZoom()
		default:
			WriteError(w, http.StatusBadRequest, "direction must be in, out, or reset", "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, viewportResponse(s.Viewport()))
	}
}

func wheelHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req WheelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		s.Wheel(req.DeltaX, req.DeltaY, req.ZoomModifier)
		WriteJSON(w, http.StatusOK, viewportResponse(s.Viewport()))
	}
}

func viewportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}
		WriteJSON(w, http.StatusOK, viewportResponse(s.Viewport()))
	}
}

func viewportResponse(v interaction.Viewport) ViewportResponse {
	return ViewportResponse{
		PixelsPerSecond: v.PixelsPerSecond,
		ScrollOffset:    v.ScrollOffset,
	}
}

func dragBeginHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req DragBeginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		var edge interaction.Edge
		switch req.Edge {
		case "move", "":
			edge = interaction.EdgeBoth
		case "left":
			edge = interaction.EdgeLeft
		case "right":
			edge = interaction.EdgeRight
		default:
			WriteError(w, http.StatusBadRequest, "edge must be move, left, or right", "BAD_REQUEST")
			return
		}

		if err := s.BeginDrag(req.ItemID, edge); err != nil {
			WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func dragUpdateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req DragUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		s.UpdateDrag(req.DeltaPixels)
		WriteJSON(w, http.StatusOK, s.Snapshot())
	}
}

func dragEndHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		s.EndDrag()
		WriteJSON(w, http.StatusOK, SubtitlesResponse{
			Subtitles:       s.Subtitles(),
			HistoryResponse: historyState(s),
		})
	}
}

func scrubBeginHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req ScrubRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, PlayheadResponse{Playhead: s.BeginScrub(req.Pixels)})
	}
}

func scrubUpdateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req ScrubRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, PlayheadResponse{Playhead: s.UpdateScrub(req.Pixels)})
	}
}

func scrubEndHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		s.EndScrub()
		w.WriteHeader(http.StatusNoContent)
	}
}

func selectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req SelectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.ItemID == "" {
			WriteError(w, http.StatusBadRequest, "item_id is required", "BAD_REQUEST")
			return
		}

		if req.Modifier {
			s.ModClick(req.ItemID)
		} else {
			s.Click(req.ItemID)
		}

		WriteJSON(w, http.StatusOK, SelectionResponse{Selected: s.SelectedIDs()})
	}
}

func clearSelectionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		s.ClearSelection()
		WriteJSON(w, http.StatusOK, SelectionResponse{Selected: s.SelectedIDs()})
	}
}

func selectionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}
		WriteJSON(w, http.StatusOK, SelectionResponse{Selected: s.SelectedIDs()})
	}
}
