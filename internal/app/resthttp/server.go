package resthttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/filedrop_lite/internal/config"
	"github.com/sir_venger/filedrop_lite/internal/repo/objstore"
	"github.com/sir_venger/filedrop_lite/internal/usecase/transfersvc"
	"github.com/sir_venger/filedrop_lite/pkg/api"
)

type Server struct {
	Transfers transfersvc.Service
	Cfg       *config.Config
	Log       *slog.Logger
}

// NewServer конструктор
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, *Server, error) {
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		Transfers: transfersvc.New(transfersvc.Deps{
			Store: store,
			Log:   logger,
		}),
		Cfg: cfg,
		Log: logger,
	}

	rtr := chi.NewRouter()
	rtr.Post(api.InitiatePath, srv.initiate)
	rtr.Post(api.PartPath, srv.uploadPart)
	rtr.Post(api.CompletePath, srv.complete)
	rtr.Get("/api/download/{id}", srv.download)
	rtr.Get("/api/file/info/{id}", srv.fileInfo)
	rtr.Get("/health", srv.health)

	return rtr, srv, nil
}

// buildStore выбирает реализацию хранилища по конфигурации.
func buildStore(ctx context.Context, cfg *config.Config) (transfersvc.ObjectStore, error) {
	switch cfg.Backend {
	case config.BackendS3:
		return objstore.NewS3(ctx, cfg)
	case config.BackendMemory:
		return objstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
