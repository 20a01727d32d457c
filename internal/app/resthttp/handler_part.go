package resthttp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sir_venger/filedrop_lite/internal/models"
	"github.com/sir_venger/filedrop_lite/pkg/api"
	"github.com/sir_venger/filedrop_lite/pkg/httperrors"
)

// uploadPart принимает одну часть как multipart-форму: chunk, uploadId,
// fileKey, partNumber. Тело ограничено потолком из конфигурации — он обязан
// превышать номинальный размер части вместе с оверхедом формы.
func (s *Server) uploadPart(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxPartBodyBytes)

	if err := r.ParseMultipartForm(s.Cfg.MaxPartBodyBytes); err != nil {
		httperrors.Write(w, fmt.Errorf("%w: parse form: %v", models.ErrInvalidRequest, err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	uploadID := r.FormValue(api.FieldUploadID)
	fileKey := r.FormValue(api.FieldFileKey)
	partNumber, err := strconv.ParseInt(r.FormValue(api.FieldPartNumber), 10, 32)
	if err != nil {
		httperrors.Write(w, fmt.Errorf("%w: invalid part number", models.ErrInvalidRequest))
		return
	}

	chunk, header, err := r.FormFile(api.FieldChunk)
	if err != nil {
		httperrors.Write(w, fmt.Errorf("%w: chunk field is required", models.ErrInvalidRequest))
		return
	}
	defer chunk.Close()

	ack, err := s.Transfers.UploadPart(r.Context(), fileKey, uploadID, int32(partNumber), chunk, header.Size)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, api.PartResponse{
		ETag:       ack.ETag,
		PartNumber: ack.PartNumber,
	})
}
