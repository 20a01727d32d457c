package objstore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sir_venger/filedrop_lite/internal/models"
)

// MemStore — хранилище в памяти с тем же multipart-контрактом, что и S3.
// Используется в тестах и для локальной разработки (backend: memory).
type MemStore struct {
	mu      sync.Mutex
	objects map[string]*memObject
	uploads map[string]*memUpload
}

type memObject struct {
	data         []byte
	contentType  string
	metadata     map[string]string
	lastModified time.Time
}

type memUpload struct {
	key         string
	contentType string
	metadata    map[string]string
	parts       map[int32][]byte
	etags       map[int32]string
}

func NewMemory() *MemStore {
	return &MemStore{
		objects: map[string]*memObject{},
		uploads: map[string]*memUpload{},
	}
}

func (m *MemStore) Initiate(_ context.Context, key, contentType string, metadata map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	uploadID := uuid.NewString()
	m.uploads[uploadID] = &memUpload{
		key:         key,
		contentType: contentType,
		metadata:    cloneMeta(metadata),
		parts:       map[int32][]byte{},
		etags:       map[int32]string{},
	}

	return uploadID, nil
}

// UploadPart повторяет семантику S3: повторная загрузка того же номера
// молча перезаписывает часть и выдаёт новый ETag.
func (m *MemStore) UploadPart(_ context.Context, key, uploadID string, partNumber int32, body io.Reader, size int64) (string, error) {
	if partNumber < 1 {
		return "", fmt.Errorf("upload part: %w: part number %d", models.ErrInvalidRequest, partNumber)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("upload part: %w: %v", models.ErrBackendFailure, err)
	}
	if size >= 0 && int64(len(data)) != size {
		return "", fmt.Errorf("upload part: %w: size mismatch, want %d got %d", models.ErrBackendFailure, size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	up, ok := m.uploads[uploadID]
	if !ok || up.key != key {
		return "", fmt.Errorf("upload part: %w", models.ErrNotFound)
	}

	sum := md5.Sum(data)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`
	up.parts[partNumber] = data
	up.etags[partNumber] = etag

	return etag, nil
}

// Complete собирает объект из частей в порядке переданного списка и
// уничтожает сессию — повторное завершение того же uploadID невозможно.
func (m *MemStore) Complete(_ context.Context, key, uploadID string, parts []models.PartAck) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	up, ok := m.uploads[uploadID]
	if !ok || up.key != key {
		return "", fmt.Errorf("complete: %w", models.ErrNotFound)
	}

	var buf bytes.Buffer
	for _, ack := range parts {
		data, ok := up.parts[ack.PartNumber]
		if !ok {
			return "", fmt.Errorf("complete: %w: part %d was never uploaded", models.ErrIncomplete, ack.PartNumber)
		}
		if up.etags[ack.PartNumber] != ack.ETag {
			return "", fmt.Errorf("complete: %w: etag mismatch for part %d", models.ErrIncomplete, ack.PartNumber)
		}
		buf.Write(data)
	}

	m.objects[key] = &memObject{
		data:         buf.Bytes(),
		contentType:  up.contentType,
		metadata:     cloneMeta(up.metadata),
		lastModified: time.Now(),
	}
	delete(m.uploads, uploadID)

	return "/" + key, nil
}

func (m *MemStore) Abort(_ context.Context, key, uploadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	up, ok := m.uploads[uploadID]
	if !ok || up.key != key {
		return fmt.Errorf("abort: %w", models.ErrNotFound)
	}
	delete(m.uploads, uploadID)

	return nil
}

func (m *MemStore) Head(_ context.Context, key string) (models.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[key]
	if !ok {
		return models.ObjectInfo{}, fmt.Errorf("head object: %w", models.ErrNotFound)
	}

	return obj.info(), nil
}

func (m *MemStore) Get(_ context.Context, key string) (models.ObjectInfo, io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[key]
	if !ok {
		return models.ObjectInfo{}, nil, fmt.Errorf("get object: %w", models.ErrNotFound)
	}

	return obj.info(), io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (o *memObject) info() models.ObjectInfo {
	return models.ObjectInfo{
		Size:         int64(len(o.data)),
		ContentType:  o.contentType,
		Metadata:     cloneMeta(o.metadata),
		LastModified: o.lastModified,
	}
}

func cloneMeta(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
