package resthttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sir_venger/filedrop_lite/internal/models"
	"github.com/sir_venger/filedrop_lite/pkg/api"
	"github.com/sir_venger/filedrop_lite/pkg/httperrors"
)

// complete финализирует сессию и возвращает downloadId — токен для ссылки.
func (s *Server) complete(w http.ResponseWriter, r *http.Request) {
	var req api.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.Write(w, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err))
		return
	}

	parts := make([]models.PartAck, 0, len(req.Parts))
	for _, p := range req.Parts {
		parts = append(parts, models.PartAck{
			PartNumber: p.PartNumber,
			ETag:       p.ETag,
		})
	}

	res, err := s.Transfers.Complete(r.Context(), req.FileKey, req.UploadID, parts)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, api.CompleteResponse{
		Success:    true,
		DownloadID: res.DownloadID,
		Location:   res.Location,
	})
}
