package transfersvc

import (
	"context"
	"io"
	"log/slog"

	"github.com/sir_venger/filedrop_lite/internal/models"
)

type (
	// ObjectStore — контракт S3-совместимого бэкенда. Бэкенд считается
	// источником истины о том, какие части существуют; сервис лишь
	// транслирует подтверждения.
	ObjectStore interface {
		Initiate(ctx context.Context, key, contentType string, metadata map[string]string) (uploadID string, err error)
		UploadPart(ctx context.Context, key, uploadID string, partNumber int32, body io.Reader, size int64) (etag string, err error)
		Complete(ctx context.Context, key, uploadID string, parts []models.PartAck) (location string, err error)
		Abort(ctx context.Context, key, uploadID string) error
		Head(ctx context.Context, key string) (models.ObjectInfo, error)
		Get(ctx context.Context, key string) (models.ObjectInfo, io.ReadCloser, error)
	}

	// Service объединяет координатор загрузки и выдачу файлов по токену.
	Service interface {
		Initiate(ctx context.Context, fileName, fileType string) (models.InitiateResult, error)
		UploadPart(ctx context.Context, fileKey, uploadID string, partNumber int32, body io.Reader, size int64) (models.PartAck, error)
		Complete(ctx context.Context, fileKey, uploadID string, parts []models.PartAck) (models.CompleteResult, error)
		Describe(ctx context.Context, token string) (models.FileInfo, error)
		Fetch(ctx context.Context, token string) (models.Object, error)
	}
)

// Ключи пользовательских метаданных объекта. S3 отдаёт их в нижнем регистре,
// поэтому сразу пишем так же.
const (
	metaOriginalName = "originalname"
	metaUploadDate   = "uploaddate"
)

type Deps struct {
	Store ObjectStore
	Log   *slog.Logger
}

type Transfers struct {
	Deps
}

// New конструирует сервис с заданными зависимостями.
func New(deps Deps) *Transfers {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Transfers{Deps: deps}
}

var _ Service = (*Transfers)(nil)
