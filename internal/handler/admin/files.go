package admin

import (
	"io"
	"net/http"
	"strconv"

	"github.com/crewline/platform/internal/filestore"
	"github.com/crewline/platform/internal/handler"
	"github.com/go-chi/chi/v5"
)

// FileHandler serves stored applicant documents to authenticated admins.
type FileHandler struct {
	files *filestore.Store
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files *filestore.Store) *FileHandler {
	return &FileHandler{files: files}
}

// Download handles GET /admin/files/{category}/{filename}.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	filename := chi.URLParam(r, "filename")

	rc, size, err := h.files.Open(category, filename)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	io.Copy(w, rc)
}
