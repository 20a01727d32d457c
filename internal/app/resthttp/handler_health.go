package resthttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sir_venger/filedrop_lite/internal/models"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK      bool   `json:"ok"`
	Backend string `json:"backend"`
}

// health проверяет достижимость бэкенда пробным HeadObject: NotFound от
// живого хранилища — это тоже успех.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ok := true
	if _, err := s.Transfers.Describe(r.Context(), healthProbeToken); err != nil && !errors.Is(err, models.ErrNotFound) {
		ok = false
	}

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(healthStats{
		OK:      ok,
		Backend: s.Cfg.Backend,
	})
}

// healthProbeToken — кодировка ключа "healthcheck", которого в бакете нет.
const healthProbeToken = "aGVhbHRoY2hlY2s"
