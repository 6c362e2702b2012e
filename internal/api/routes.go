package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cutboard/cutboard-agent/internal/editor"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(CORSAllowlist())
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))

		r.Get("/projects", listProjectsHandler(cfg))
		r.Post("/projects", createProjectHandler(cfg))

		r.Route("/projects/{id}", func(r chi.Router) {
			r.Delete("/", deleteProjectHandler(cfg))
			r.Post("/open", openProjectHandler(cfg))
			r.Post("/save", saveProjectHandler(cfg))
			r.Post("/revert", revertProjectHandler(cfg))
			r.Post("/close", closeProjectHandler(cfg))

			r.Get("/snapshot", snapshotHandler(cfg))
			r.Put("/subtitles", setSubtitlesHandler(cfg))
			r.Post("/undo", undoHandler(cfg))
			r.Post("/redo", redoHandler(cfg))

			r.Post("/assets/video", registerVideoAssetHandler(cfg))
			r.Post("/assets/image", registerImageAssetHandler(cfg))
			r.Post("/clips", addClipHandler(cfg))
			r.Post("/images", addImageHandler(cfg))
			r.Delete("/items/{itemID}", removeItemHandler(cfg))

			r.Post("/seek", seekHandler(cfg))
			r.Get("/active", activeHandler(cfg))
			r.Post("/sync", syncHandler(cfg))
			r.Get("/needs-seek", needsSeekHandler(cfg))

			r.Post("/zoom", zoomHandler(cfg))
			r.Post("/wheel", wheelHandler(cfg))
			r.Get("/viewport", viewportHandler(cfg))

			r.Post("/drag/begin", dragBeginHandler(cfg))
			r.Post("/drag/update", dragUpdateHandler(cfg))
			r.Post("/drag/end", dragEndHandler(cfg))
			r.Post("/scrub/begin", scrubBeginHandler(cfg))
			r.Post("/scrub/update", scrubUpdateHandler(cfg))
			r.Post("/scrub/end", scrubEndHandler(cfg))

			r.Post("/selection/click", selectHandler(cfg))
			r.Post("/selection/clear", clearSelectionHandler(cfg))
			r.Get("/selection", selectionHandler(cfg))

			r.Post("/commands/{command}", commandHandler(cfg))
			r.Post("/export", exportHandler(cfg))
		})

		r.With(LoopbackGuard()).Get("/playback/file", playbackHandler(cfg))
	})

	return r
}

// openSession resolves the {id} route param to an open session, writing the
// error response itself when the project is not open.
func openSession(cfg ServerConfig, w http.ResponseWriter, r *http.Request) *editor.Session {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
		return nil
	}
	s := cfg.Editor.Session(id)
	if s == nil {
		WriteError(w, http.StatusConflict, "project not open", "PROJECT_NOT_OPEN")
		return nil
	}
	return s
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Version:  cfg.Version,
			UptimeS:  uptime,
			DeviceID: cfg.DeviceID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		open := cfg.Editor.OpenCount()
		dirty := cfg.Editor.DirtyCount()

		state := "idle"
		if dirty > 0 {
			state = "editing"
		}
		paused := cfg.Autosave != nil && cfg.Autosave.IsPaused()
		if paused {
			state = "paused"
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:          state,
			OpenProjects:   open,
			DirtyProjects:  dirty,
			AutosavePaused: paused,
		})
	}
}

func listProjectsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := cfg.Repository.ListProjects(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}

		resp := ProjectsResponse{Projects: make([]ProjectResponse, len(projects))}
		for i, p := range projects {
			s := cfg.Editor.Session(p.ID)
			resp.Projects[i] = ProjectToResponse(p, s != nil, s != nil && s.Dirty())
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		p, err := cfg.Editor.CreateProject(r.Context(), req.Name)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusCreated, ProjectToResponse(p, false, false))
	}
}

func deleteProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		if err := cfg.Editor.DeleteProject(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func openProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		s, err := cfg.Editor.Open(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
			return
		}

		WriteJSON(w, http.StatusOK, s.Snapshot())
	}
}

func saveProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		if err := cfg.Editor.Save(r.Context(), id); err != nil {
			WriteError(w, http.StatusConflict, err.Error(), "PROJECT_NOT_OPEN")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func revertProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}

		if err := cfg.Editor.Revert(r.Context(), s.ProjectID()); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, s.Snapshot())
	}
}

func closeProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		if err := cfg.Editor.Close(r.Context(), id); err != nil {
			WriteError(w, http.StatusConflict, err.Error(), "PROJECT_NOT_OPEN")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func snapshotHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := openSession(cfg, w, r)
		if s == nil {
			return
		}
		WriteJSON(w, http.StatusOK, s.Snapshot())
	}
}

func playbackHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := r.URL.Query().Get("project_id")
		assetID := r.URL.Query().Get("asset_id")
		if projectID == "" || assetID == "" {
			WriteError(w, http.StatusBadRequest, "project_id and asset_id are required", "BAD_REQUEST")
			return
		}

		s := cfg.Editor.Session(projectID)
		if s == nil {
			WriteError(w, http.StatusConflict, "project not open", "PROJECT_NOT_OPEN")
			return
		}

		snap := s.Snapshot()
		mediaPath := ""
		if a := snap.VideoAssetByID(assetID); a != nil {
			mediaPath = a.Path
		} else if a := snap.ImageAssetByID(assetID); a != nil {
			mediaPath = a.Path
		}
		if mediaPath == "" {
			WriteError(w, http.StatusNotFound, "asset not found", "NOT_FOUND")
			return
		}

		if err := cfg.Playback.ServeMedia(w, r, mediaPath); err != nil {
			cfg.Logger.Error("playback error", "error", err, "asset_id", assetID)
		}
	}
}
