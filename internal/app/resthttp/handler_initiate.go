package resthttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sir_venger/filedrop_lite/internal/models"
	"github.com/sir_venger/filedrop_lite/pkg/api"
	"github.com/sir_venger/filedrop_lite/pkg/httperrors"
)

// initiate открывает multipart-сессию и отдаёт клиенту uploadId с fileKey.
func (s *Server) initiate(w http.ResponseWriter, r *http.Request) {
	var req api.InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.Write(w, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err))
		return
	}

	res, err := s.Transfers.Initiate(r.Context(), req.FileName, req.FileType)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, api.InitiateResponse{
		UploadID: res.UploadID,
		FileKey:  res.FileKey,
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
