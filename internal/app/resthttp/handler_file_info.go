package resthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/filedrop_lite/pkg/api"
	"github.com/sir_venger/filedrop_lite/pkg/httperrors"
)

// fileInfo отдаёт метаданные файла без передачи тела.
func (s *Server) fileInfo(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "id")

	info, err := s.Transfers.Describe(r.Context(), token)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, api.FileInfoResponse{
		Name:       info.Name,
		Size:       info.Size,
		Type:       info.Type,
		UploadDate: info.UploadDate.UTC().Format(time.RFC3339),
	})
}
