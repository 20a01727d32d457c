package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/filedrop_lite/internal/models"
)

// Write переводит доменную ошибку в HTTP-статус. Ошибки бэкенда отдаются как
// 502, чтобы клиент мог отличить их от собственных 4xx.
func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrIncomplete):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrBackendFailure):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
