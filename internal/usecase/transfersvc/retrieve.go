package transfersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/sir_venger/filedrop_lite/internal/models"
	"github.com/sir_venger/filedrop_lite/pkg/filekey"
)

const fallbackName = "unknown"
const fallbackContentType = "application/octet-stream"

// Describe возвращает метаданные файла по токену, не трогая тело объекта.
func (s *Transfers) Describe(ctx context.Context, token string) (models.FileInfo, error) {
	key, err := s.decodeToken(token)
	if err != nil {
		return models.FileInfo{}, err
	}

	info, err := s.Store.Head(ctx, key)
	if err != nil {
		return models.FileInfo{}, err
	}

	return models.FileInfo{
		Name:       originalName(info),
		Size:       info.Size,
		Type:       contentType(info),
		UploadDate: uploadDate(info),
	}, nil
}

// Fetch отдаёт поток тела вместе с метаданными для заголовков ответа.
// Body обязан закрыть вызывающий.
func (s *Transfers) Fetch(ctx context.Context, token string) (models.Object, error) {
	key, err := s.decodeToken(token)
	if err != nil {
		return models.Object{}, err
	}

	info, body, err := s.Store.Get(ctx, key)
	if err != nil {
		return models.Object{}, err
	}

	return models.Object{
		Name:        originalName(info),
		ContentType: contentType(info),
		Size:        info.Size,
		Body:        body,
	}, nil
}

// decodeToken сводит битый токен к тому же исходу, что и отсутствующий
// объект: наружу оба выглядят как 404. Для диагностики причина остаётся
// в debug-логе.
func (s *Transfers) decodeToken(token string) (string, error) {
	key, err := filekey.Decode(token)
	if err != nil {
		s.Log.Debug("token decode failed", "token", token, "error", err)
		return "", fmt.Errorf("%w: bad token", models.ErrNotFound)
	}

	return key, nil
}

// Fallback'и защищают от объектов, созданных в бакете мимо этого сервиса:
// у них нет наших метаданных.
func originalName(info models.ObjectInfo) string {
	if v := info.Metadata[metaOriginalName]; v != "" {
		return v
	}
	return fallbackName
}

func contentType(info models.ObjectInfo) string {
	if info.ContentType != "" {
		return info.ContentType
	}
	return fallbackContentType
}

func uploadDate(info models.ObjectInfo) time.Time {
	if v := info.Metadata[metaUploadDate]; v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return info.LastModified
}
