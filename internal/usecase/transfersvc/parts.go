package transfersvc

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/sir_venger/filedrop_lite/internal/models"
	"github.com/sir_venger/filedrop_lite/pkg/filekey"
)

// UploadPart загружает одну часть и возвращает подтверждение бэкенда.
// Повторная загрузка того же номера с теми же байтами безопасна; с другими
// байтами — вызывающий обязан выбросить устаревшее подтверждение.
// Retry при неуспехе — политика вызывающего, не этого слоя.
func (s *Transfers) UploadPart(ctx context.Context, fileKey, uploadID string, partNumber int32, body io.Reader, size int64) (models.PartAck, error) {
	if fileKey == "" || uploadID == "" {
		return models.PartAck{}, fmt.Errorf("%w: file key and upload id are required", models.ErrInvalidRequest)
	}
	if partNumber < 1 {
		return models.PartAck{}, fmt.Errorf("%w: part number must be >= 1, got %d", models.ErrInvalidRequest, partNumber)
	}
	if body == nil {
		return models.PartAck{}, fmt.Errorf("%w: chunk body is required", models.ErrInvalidRequest)
	}

	etag, err := s.Store.UploadPart(ctx, fileKey, uploadID, partNumber, body, size)
	if err != nil {
		return models.PartAck{}, err
	}

	s.Log.Debug("part uploaded", "key", fileKey, "part", partNumber, "size", size)

	return models.PartAck{
		PartNumber: partNumber,
		ETag:       etag,
	}, nil
}

// Complete финализирует сессию и возвращает токен для скачивания.
// Список частей сортируется по номеру; пропуски и дубликаты отвергаются до
// похода на бэкенд, чтобы частичный объект не стал видимым.
func (s *Transfers) Complete(ctx context.Context, fileKey, uploadID string, parts []models.PartAck) (models.CompleteResult, error) {
	if fileKey == "" || uploadID == "" {
		return models.CompleteResult{}, fmt.Errorf("%w: file key and upload id are required", models.ErrInvalidRequest)
	}
	if len(parts) == 0 {
		return models.CompleteResult{}, fmt.Errorf("%w: parts list is empty", models.ErrInvalidRequest)
	}

	sorted := make([]models.PartAck, len(parts))
	copy(sorted, parts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PartNumber < sorted[j].PartNumber })

	if err := validateParts(sorted); err != nil {
		return models.CompleteResult{}, err
	}

	location, err := s.Store.Complete(ctx, fileKey, uploadID, sorted)
	if err != nil {
		// Сессия в терминальном Failed: отменяем её, чтобы недокачанный
		// объект гарантированно не стал доступен через выдачу.
		if abortErr := s.Store.Abort(ctx, fileKey, uploadID); abortErr != nil {
			s.Log.Warn("abort after failed completion", "key", fileKey, "error", abortErr)
		}
		return models.CompleteResult{}, err
	}

	s.Log.Info("upload completed", "key", fileKey, "parts", len(sorted))

	return models.CompleteResult{
		DownloadID: filekey.Encode(fileKey),
		Location:   location,
	}, nil
}

// validateParts проверяет отсортированный список: номера идут подряд с
// единицы, без дыр и повторов, у каждой части есть ETag.
func validateParts(sorted []models.PartAck) error {
	for i, p := range sorted {
		want := int32(i + 1)
		switch {
		case p.PartNumber == want:
		case i > 0 && p.PartNumber == sorted[i-1].PartNumber:
			return fmt.Errorf("%w: duplicate part %d", models.ErrInvalidRequest, p.PartNumber)
		default:
			return fmt.Errorf("%w: missing part %d", models.ErrIncomplete, want)
		}

		if p.ETag == "" {
			return fmt.Errorf("%w: part %d has empty etag", models.ErrInvalidRequest, p.PartNumber)
		}
	}

	return nil
}
