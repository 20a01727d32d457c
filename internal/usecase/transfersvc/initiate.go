package transfersvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sir_venger/filedrop_lite/internal/models"
)

// Initiate открывает multipart-сессию под свежесгенерированный ключ.
// Имя файла, тип и время загрузки сохраняются как метаданные объекта на
// бэкенде — выдаче они понадобятся, а своего состояния сервис не держит.
func (s *Transfers) Initiate(ctx context.Context, fileName, fileType string) (models.InitiateResult, error) {
	fileName = strings.TrimSpace(fileName)
	fileType = strings.TrimSpace(fileType)
	if fileName == "" || fileType == "" {
		return models.InitiateResult{}, fmt.Errorf("%w: file name and type are required", models.ErrInvalidRequest)
	}

	key := newFileKey(fileName)
	metadata := map[string]string{
		metaOriginalName: fileName,
		metaUploadDate:   time.Now().UTC().Format(time.RFC3339),
	}

	uploadID, err := s.Store.Initiate(ctx, key, fileType, metadata)
	if err != nil {
		return models.InitiateResult{}, err
	}

	s.Log.Info("upload initiated", "key", key, "upload_id", uploadID, "type", fileType)

	return models.InitiateResult{
		UploadID: uploadID,
		FileKey:  key,
	}, nil
}

// newFileKey собирает глобально уникальный ключ: timestamp, случайный
// суффикс и исходное имя файла в конце — так коллизии исключены, а ключ
// остаётся человекочитаемым.
func newFileKey(fileName string) string {
	suffix, _, _ := strings.Cut(uuid.NewString(), "-")
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), suffix, fileName)
}
