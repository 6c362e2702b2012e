package playback

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Service streams local media files to the preview player with HTTP range
// support, so the video element can seek without downloading whole files.
type Service interface {
	ServeMedia(w http.ResponseWriter, r *http.Request, mediaPath string) error
}

type Server struct {
	mediaRoot string
	logger    *slog.Logger
}

// NewServer creates a playback server that only serves files under mediaRoot.
// An empty mediaRoot disables the containment check, for projects that
// reference media anywhere on disk.
func NewServer(mediaRoot string, logger *slog.Logger) *Server {
	return &Server{mediaRoot: mediaRoot, logger: logger}
}

func (s *Server) ServeMedia(w http.ResponseWriter, r *http.Request, mediaPath string) error {
	abs, err := filepath.Abs(mediaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve media path: %w", err)
	}

	if !s.allowed(abs) {
		http.Error(w, "media path not allowed", http.StatusForbidden)
		return nil
	}

	file, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "media file not found", http.StatusNotFound)
			return nil
		}
		return fmt.Errorf("failed to open media file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat media file: %w", err)
	}
	if stat.IsDir() {
		http.Error(w, "media file not found", http.StatusNotFound)
		return nil
	}

	size := stat.Size()
	contentType := mime.TypeByExtension(filepath.Ext(abs))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", contentType)

	br, err := ParseRange(r.Header.Get("Range"), size)

	if err == ErrUnsatisfiableRange {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		http.Error(w, "Range Not Satisfiable", http.StatusRequestedRangeNotSatisfiable)
		return nil
	}

	// A malformed range header falls back to serving the whole file.
	if br == nil {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return nil
		}
		io.Copy(w, file)
		return nil
	}

	w.Header().Set("Content-Length", fmt.Sprintf("%d", br.Length()))
	w.Header().Set("Content-Range", br.ContentRange(size))
	w.WriteHeader(http.StatusPartialContent)

	if r.Method == http.MethodHead {
		return nil
	}

	if _, err := file.Seek(br.Start, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek media file: %w", err)
	}

	io.CopyN(w, file, br.Length())
	return nil
}

func (s *Server) allowed(abs string) bool {
	if s.mediaRoot == "" {
		return true
	}
	root, err := filepath.Abs(s.mediaRoot)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
