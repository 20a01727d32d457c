package transfersvc

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/filedrop_lite/internal/models"
	"github.com/sir_venger/filedrop_lite/pkg/filekey"
)

// fakeStore записывает обращения координатора, не храня данных.
type fakeStore struct {
	initiateKey      string
	initiateType     string
	initiateMeta     map[string]string
	completedParts   []models.PartAck
	completeErr      error
	aborted          bool
	headInfo         models.ObjectInfo
	headErr          error
	getBody          string
	uploadPartNumber int32
}

func (f *fakeStore) Initiate(_ context.Context, key, contentType string, metadata map[string]string) (string, error) {
	f.initiateKey = key
	f.initiateType = contentType
	f.initiateMeta = metadata
	return "upload-1", nil
}

func (f *fakeStore) UploadPart(_ context.Context, _, _ string, partNumber int32, body io.Reader, _ int64) (string, error) {
	f.uploadPartNumber = partNumber
	_, _ = io.Copy(io.Discard, body)
	return fmt.Sprintf(`"etag-%d"`, partNumber), nil
}

func (f *fakeStore) Complete(_ context.Context, _, _ string, parts []models.PartAck) (string, error) {
	if f.completeErr != nil {
		return "", f.completeErr
	}
	f.completedParts = parts
	return "/location", nil
}

func (f *fakeStore) Abort(_ context.Context, _, _ string) error {
	f.aborted = true
	return nil
}

func (f *fakeStore) Head(_ context.Context, _ string) (models.ObjectInfo, error) {
	return f.headInfo, f.headErr
}

func (f *fakeStore) Get(_ context.Context, _ string) (models.ObjectInfo, io.ReadCloser, error) {
	if f.headErr != nil {
		return models.ObjectInfo{}, nil, f.headErr
	}
	return f.headInfo, io.NopCloser(strings.NewReader(f.getBody)), nil
}

func newTestService(store ObjectStore) *Transfers {
	return New(Deps{Store: store})
}

func TestInitiate_GeneratesKeyAndMetadata(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	res, err := svc.Initiate(context.Background(), "report.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "upload-1", res.UploadID)
	assert.True(t, strings.HasSuffix(res.FileKey, "-report.pdf"), "key keeps original name as suffix, got %q", res.FileKey)
	assert.Equal(t, "application/pdf", store.initiateType)
	assert.Equal(t, "report.pdf", store.initiateMeta[metaOriginalName])

	_, err = time.Parse(time.RFC3339, store.initiateMeta[metaUploadDate])
	assert.NoError(t, err, "upload date must be RFC3339")

	// Токен из этого ключа обязан раскодироваться в тот же ключ.
	decoded, err := filekey.Decode(filekey.Encode(res.FileKey))
	require.NoError(t, err)
	assert.Equal(t, res.FileKey, decoded)
}

func TestInitiate_MissingFields(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.Initiate(context.Background(), "", "application/pdf")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = svc.Initiate(context.Background(), "report.pdf", "   ")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestUploadPart_Validation(t *testing.T) {
	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	_, err := svc.UploadPart(ctx, "", "up", 1, strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = svc.UploadPart(ctx, "key", "up", 0, strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = svc.UploadPart(ctx, "key", "up", 1, nil, 1)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestUploadPart_ReturnsBackendAck(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	ack, err := svc.UploadPart(context.Background(), "key", "up", 3, strings.NewReader("abc"), 3)
	require.NoError(t, err)
	assert.Equal(t, int32(3), ack.PartNumber)
	assert.Equal(t, `"etag-3"`, ack.ETag)
}

func TestComplete_SortsUnsortedParts(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	res, err := svc.Complete(context.Background(), "key", "up", []models.PartAck{
		{PartNumber: 2, ETag: `"b"`},
		{PartNumber: 1, ETag: `"a"`},
	})
	require.NoError(t, err)

	require.Len(t, store.completedParts, 2)
	assert.Equal(t, int32(1), store.completedParts[0].PartNumber)
	assert.Equal(t, int32(2), store.completedParts[1].PartNumber)
	assert.Equal(t, `"a"`, store.completedParts[0].ETag)

	key, err := filekey.Decode(res.DownloadID)
	require.NoError(t, err)
	assert.Equal(t, "key", key)
}

func TestComplete_MissingPart(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.Complete(context.Background(), "key", "up", []models.PartAck{
		{PartNumber: 1, ETag: `"a"`},
		{PartNumber: 3, ETag: `"c"`},
	})
	assert.ErrorIs(t, err, models.ErrIncomplete)
	assert.Nil(t, store.completedParts, "backend completion must not be attempted")
}

func TestComplete_DuplicateAndEmpty(t *testing.T) {
	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	_, err := svc.Complete(ctx, "key", "up", []models.PartAck{
		{PartNumber: 1, ETag: `"a"`},
		{PartNumber: 1, ETag: `"a2"`},
	})
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = svc.Complete(ctx, "key", "up", nil)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = svc.Complete(ctx, "key", "up", []models.PartAck{{PartNumber: 1}})
	assert.ErrorIs(t, err, models.ErrInvalidRequest, "empty etag is rejected")
}

func TestComplete_BackendFailureAborts(t *testing.T) {
	store := &fakeStore{completeErr: fmt.Errorf("complete: %w", models.ErrIncomplete)}
	svc := newTestService(store)

	_, err := svc.Complete(context.Background(), "key", "up", []models.PartAck{{PartNumber: 1, ETag: `"a"`}})
	assert.ErrorIs(t, err, models.ErrIncomplete)
	assert.True(t, store.aborted, "failed completion must abort the session")
}

func TestDescribe_MetadataAndFallbacks(t *testing.T) {
	uploaded := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{headInfo: models.ObjectInfo{
		Size:        42,
		ContentType: "text/plain",
		Metadata: map[string]string{
			metaOriginalName: "notes.txt",
			metaUploadDate:   uploaded.Format(time.RFC3339),
		},
	}}
	svc := newTestService(store)

	info, err := svc.Describe(context.Background(), filekey.Encode("some-key"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", info.Name)
	assert.Equal(t, int64(42), info.Size)
	assert.Equal(t, "text/plain", info.Type)
	assert.Equal(t, uploaded, info.UploadDate)
}

func TestDescribe_ForeignObjectFallbacks(t *testing.T) {
	modified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	store := &fakeStore{headInfo: models.ObjectInfo{
		Size:         7,
		LastModified: modified,
	}}
	svc := newTestService(store)

	info, err := svc.Describe(context.Background(), filekey.Encode("foreign"))
	require.NoError(t, err)
	assert.Equal(t, "unknown", info.Name)
	assert.Equal(t, "application/octet-stream", info.Type)
	assert.Equal(t, modified, info.UploadDate)
}

func TestRetrieve_NotFoundMerge(t *testing.T) {
	store := &fakeStore{headErr: fmt.Errorf("head object: %w", models.ErrNotFound)}
	svc := newTestService(store)
	ctx := context.Background()

	// Валидный токен, отсутствующий объект.
	_, err := svc.Describe(ctx, filekey.Encode("gone"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Fetch(ctx, filekey.Encode("gone"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Битый токен даёт тот же исход.
	_, err = svc.Describe(ctx, "!!!not-a-token!!!")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Fetch(ctx, "!!!not-a-token!!!")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFetch_StreamsBody(t *testing.T) {
	store := &fakeStore{
		headInfo: models.ObjectInfo{
			Size:        5,
			ContentType: "text/plain",
			Metadata:    map[string]string{metaOriginalName: "hi.txt"},
		},
		getBody: "hello",
	}
	svc := newTestService(store)

	obj, err := svc.Fetch(context.Background(), filekey.Encode("key"))
	require.NoError(t, err)
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "hi.txt", obj.Name)
	assert.Equal(t, int64(5), obj.Size)
}
