package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cutboard/cutboard-agent/internal/editor"
	"github.com/cutboard/cutboard-agent/internal/timeline"
)

func historyState(s *editor.Session) HistoryResponse {
	return HistoryResponse{CanUndo: s.CanUndo(), CanRedo: s.CanRedo()}
}

func setSubtitlesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req SubtitlesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		if err := s.SetSubtitles(req.Subtitles); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, SubtitlesResponse{
			Subtitles:       s.Subtitles(),
			HistoryResponse: historyState(s),
		})
	}
}

func undoHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		s.Undo()
		WriteJSON(w, http.StatusOK, SubtitlesResponse{
			Subtitles:       s.Subtitles(),
			HistoryResponse: historyState(s),
		})
	}
}

func redoHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		s.Redo()
		WriteJSON(w, http.StatusOK, SubtitlesResponse{
			Subtitles:       s.Subtitles(),
			HistoryResponse: historyState(s),
		})
	}
}

func registerVideoAssetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req RegisterVideoAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Path == "" {
			WriteError(w, http.StatusBadRequest, "path is required", "BAD_REQUEST")
			return
		}

		asset, err := s.RegisterVideoAsset(&timeline.VideoAsset{
			Path:     req.Path,
			Filename: req.Filename,
			Duration: req.Duration,
			Width:    req.Width,
			Height:   req.Height,
			Size:     req.Size,
		})
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusCreated, asset)
	}
}

func registerImageAssetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req RegisterImageAssetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Path == "" {
			WriteError(w, http.StatusBadRequest, "path is required", "BAD_REQUEST")
			return
		}

		asset := s.RegisterImageAsset(&timeline.ImageAsset{
			Path:     req.Path,
			Filename: req.Filename,
			Width:    req.Width,
			Height:   req.Height,
			Size:     req.Size,
		})

		WriteJSON(w, http.StatusCreated, asset)
	}
}

func addClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req AddClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		clip, err := s.AddClip(req.AssetID, req.ProjectStart, req.SourceIn, req.Duration)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusCreated, clip)
	}
}

func addImageHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var req AddImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		img, err := s.AddImage(req.AssetID, req.ProjectStart, req.Duration)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusCreated, img)
	}
}

func removeItemHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			WriteError(w, http.StatusBadRequest, "item id required", "BAD_REQUEST")
			return
		}

		if err := s.RemoveItem(itemID); err != nil {
			WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func commandHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		var affected int
		switch chi.URLParam(r, "command") {
		case "delete":
			affected = s.DeleteSelected()
		case "copy":
			affected = s.CopySelected()
		case "cut":
			affected = s.CutSelected()
		case "paste":
			affected = s.PasteAtPlayhead()
		case "merge":
			if err := s.MergeSelected(); err != nil {
				WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
				return
			}
			affected = 1
		case "split":
			if err := s.SplitAtPlayhead(); err != nil {
				WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
				return
			}
			affected = 1
		default:
			WriteError(w, http.StatusBadRequest, "unknown command", "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, CommandResponse{
			Affected:        affected,
			HistoryResponse: historyState(s),
		})
	}
}
