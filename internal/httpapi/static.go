package httpapi

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const staticIndex = "index.html"

// serveStatic serves the built frontend from cfg.StaticDir. Unknown paths
// fall back to index.html so client-side routes resolve.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	if !isStaticFallbackRequest(r) {
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
		return
	}
	root := s.cfg.StaticDir
	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" {
		full := filepath.Join(root, filepath.FromSlash(clean))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			http.ServeFile(w, r, full)
			return
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusInternalServerError, "internal", "could not read static file", nil)
			return
		}
	}
	index := filepath.Join(root, staticIndex)
	if _, err := os.Stat(index); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "route not found", nil)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, index)
}

func isStaticFallbackRequest(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	p := r.URL.Path
	if p == "/api" || strings.HasPrefix(p, "/api/") {
		return false
	}
	if strings.HasPrefix(p, "/uploads/") {
		return false
	}
	return true
}
