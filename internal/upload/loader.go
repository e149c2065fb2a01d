// AngelaMos | 2026
// loader.go

package upload

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/herooiboo/tenjaz/internal/core"
)

// Loader serves stored files back over HTTP by their relative path.
type Loader struct {
	root        string
	routePrefix string
}

func NewLoader(root, routePrefix string) *Loader {
	return &Loader{root: root, routePrefix: routePrefix}
}

func (l *Loader) RegisterRoutes(r chi.Router) {
	r.Get(l.routePrefix+"/{folder}/{file}", l.ServeStored)
}

func (l *Loader) ServeStored(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	file := chi.URLParam(r, "file")

	if !safeSegment(folder) || !safeSegment(file) {
		core.BadRequest(w, "invalid file path")
		return
	}

	path := filepath.Join(l.root, folder, file)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		core.NotFound(w, "file")
		return
	}

	http.ServeFile(w, r, path)
}

func safeSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\")
}
