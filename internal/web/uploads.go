// filepath: internal/web/uploads.go
// Package web serves the uploaded images as static files.
package web

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"mediacatalog/internal/logging"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gorilla/mux"
)

// PathPrefix is the URL prefix under which the upload directory is served.
const PathPrefix = "/resources/"

// uploadsHandler serves single files from the upload directory. Directories are
// never listed.
type uploadsHandler struct {
	contentFS fs.FS
}

// ServeHTTP serves the requested file or answers 404.
func (h uploadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filePath := path.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if filePath == "." || !fs.ValidPath(filePath) {
		http.NotFound(w, r)
		return
	}

	file, err := h.contentFS.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		logging.Log.Errorf("uploadsHandler: error opening file %s: %v", filePath, err)
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		logging.Log.Errorf("uploadsHandler: error stating file %s: %v", filePath, err)
		return
	}
	if fileInfo.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")

	seeker, ok := file.(io.ReadSeeker)
	if !ok {
		fileBytes, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			logging.Log.Errorf("uploadsHandler: error reading file %s: %v", filePath, err)
			return
		}
		http.ServeContent(w, r, fileInfo.Name(), fileInfo.ModTime(), bytes.NewReader(fileBytes))
		return
	}
	http.ServeContent(w, r, fileInfo.Name(), fileInfo.ModTime(), seeker)
}

// AddRoutes mounts the upload directory under PathPrefix.
func AddRoutes(router *mux.Router, uploadDir string) {
	handler := uploadsHandler{contentFS: os.DirFS(uploadDir)}
	router.PathPrefix(PathPrefix).Handler(http.StripPrefix(PathPrefix, handler))
}
