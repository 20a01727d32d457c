package resthttp

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/filedrop_lite/pkg/httperrors"
)

// download стримит тело объекта клиенту, не буферизуя его целиком.
// Content-Length известен из метаданных ещё до первого байта.
func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "id")

	obj, err := s.Transfers.Fetch(r.Context(), token)
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(obj.Name)))

	if _, err = io.Copy(w, obj.Body); err != nil {
		// Заголовки уже ушли — остаётся только залогировать обрыв.
		s.Log.Warn("download stream interrupted", "error", err)
	}
}
