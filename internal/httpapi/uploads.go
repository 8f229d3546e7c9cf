package httpapi

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/example/folio/internal/events"
	"github.com/example/folio/internal/media"
)

func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "upload too large", nil)
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "failed to parse multipart", map[string]any{"error": err.Error()})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "file is required", nil)
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "file name is required", nil)
		return
	}

	res, err := s.media.Save(r.Context(), file, header.Filename, s.cfg.MaxUploadBytes, s.cfg.MaxPixels)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", err.Error(), nil)
		case errors.Is(err, media.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, "unsupported_type", "file type not allowed", map[string]any{"allowed": []string{"png", "jpg", "jpeg", "gif", "webp"}})
		case errors.Is(err, media.ErrInvalidImage):
			writeError(w, http.StatusBadRequest, "invalid_image", err.Error(), nil)
		default:
			s.logger.Error("upload", "filename", header.Filename, "error", err)
			writeError(w, http.StatusInternalServerError, "upload_failed", "could not store file", nil)
		}
		return
	}
	s.logger.Info("upload", "name", res.Name, "bytes", res.Bytes, "original", header.Filename)
	s.publish(r.Context(), events.Created, "uploads", 0)
	writeJSON(w, http.StatusCreated, res)
}

// ServeUpload serves a stored image. Names are content hashes, so responses
// are cacheable forever.
func (s *Server) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	f, err := s.media.Open(name)
	if err != nil {
		if errors.Is(err, media.ErrInvalidName) || errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "could not open file", nil)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not stat file", nil)
		return
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("ETag", `"`+name+`"`)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, name, info.ModTime(), f)
}
