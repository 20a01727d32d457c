// Package uploadclient проводит файл целиком через протокол загрузки:
// план частей → initiate → параллельные части → complete.
package uploadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/filedrop_lite/pkg/api"
	"github.com/sir_venger/filedrop_lite/pkg/chunkplan"
)

const defaultConcurrency = 4

type Config struct {
	BaseURL string
	// ChunkSize по умолчанию — номинальные 4 MiB из chunkplan.
	ChunkSize int64
	// Concurrency ограничивает параллелизм частей. Бэкенд адресует части
	// номерами, поэтому порядок отправки значения не имеет.
	Concurrency int
	HTTPClient  *http.Client
	// Progress, если задан, получает индикатор выполнения (обычно os.Stdout).
	Progress io.Writer
}

type Client struct {
	cfg Config
	c   *http.Client
}

// Result содержит итог загрузки вместе с готовой ссылкой на скачивание.
type Result struct {
	DownloadID string
	FileKey    string
	Location   string
	Size       int64
	Parts      int
}

// New создаёт клиент с дефолтами для незаполненных полей.
func New(cfg Config) *Client {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunkplan.DefaultChunkSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	c := cfg.HTTPClient
	if c == nil {
		c = &http.Client{}
	}

	return &Client{cfg: cfg, c: c}
}

// UploadFile загружает файл с диска и возвращает токен для скачивания.
// Неуспех любого шага окончателен: частичного резюме нет, перезапуск —
// решение вызывающего.
func (c *Client) UploadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, err
	}

	plan, err := chunkplan.Plan(info.Size(), c.cfg.ChunkSize)
	if err != nil {
		return Result{}, err
	}

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	init, err := c.initiate(ctx, name, contentType)
	if err != nil {
		return Result{}, err
	}

	meter := newMeter(c.cfg.Progress, fmt.Sprintf("Uploading %s", name), info.Size())

	acks := make([]api.Part, len(plan))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for i, chunk := range plan {
		i, chunk := i, chunk
		g.Go(func() error {
			ack, err := c.uploadPart(gctx, f, init, chunk)
			if err != nil {
				return fmt.Errorf("part %d: %w", chunk.Number, err)
			}
			acks[i] = ack
			meter.Add(chunk.Size())
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		meter.Fail(err)
		return Result{}, err
	}

	done, err := c.complete(ctx, init, acks)
	if err != nil {
		meter.Fail(err)
		return Result{}, err
	}
	meter.Finish()

	return Result{
		DownloadID: done.DownloadID,
		FileKey:    init.FileKey,
		Location:   done.Location,
		Size:       info.Size(),
		Parts:      len(plan),
	}, nil
}

// DownloadURL собирает ссылку для скачивания по токену.
func (c *Client) DownloadURL(downloadID string) string {
	return fmt.Sprintf(api.DownloadPathFormat, c.cfg.BaseURL, downloadID)
}

// FileInfoURL собирает ссылку на метаданные файла.
func (c *Client) FileInfoURL(downloadID string) string {
	return fmt.Sprintf(api.FileInfoPathFormat, c.cfg.BaseURL, downloadID)
}

func (c *Client) initiate(ctx context.Context, fileName, fileType string) (api.InitiateResponse, error) {
	var resp api.InitiateResponse
	err := c.postJSON(ctx, api.InitiatePath, api.InitiateRequest{
		FileName: fileName,
		FileType: fileType,
	}, &resp)
	if err != nil {
		return api.InitiateResponse{}, fmt.Errorf("initiate: %w", err)
	}

	return resp, nil
}

// uploadPart читает свой диапазон через SectionReader — несколько частей
// могут читать один *os.File одновременно.
func (c *Client) uploadPart(ctx context.Context, f *os.File, init api.InitiateResponse, chunk chunkplan.Chunk) (api.Part, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if err := form.WriteField(api.FieldUploadID, init.UploadID); err != nil {
		return api.Part{}, err
	}
	if err := form.WriteField(api.FieldFileKey, init.FileKey); err != nil {
		return api.Part{}, err
	}
	if err := form.WriteField(api.FieldPartNumber, strconv.FormatInt(int64(chunk.Number), 10)); err != nil {
		return api.Part{}, err
	}

	fw, err := form.CreateFormFile(api.FieldChunk, fmt.Sprintf("part-%d", chunk.Number))
	if err != nil {
		return api.Part{}, err
	}
	section := io.NewSectionReader(f, chunk.Start, chunk.Size())
	if _, err = io.Copy(fw, section); err != nil {
		return api.Part{}, err
	}
	if err = form.Close(); err != nil {
		return api.Part{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+api.PartPath, &body)
	if err != nil {
		return api.Part{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.c.Do(req)
	if err != nil {
		return api.Part{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return api.Part{}, responseError(resp)
	}

	var ack api.PartResponse
	if err = json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return api.Part{}, err
	}

	return api.Part{PartNumber: ack.PartNumber, ETag: ack.ETag}, nil
}

func (c *Client) complete(ctx context.Context, init api.InitiateResponse, parts []api.Part) (api.CompleteResponse, error) {
	var resp api.CompleteResponse
	err := c.postJSON(ctx, api.CompletePath, api.CompleteRequest{
		UploadID: init.UploadID,
		FileKey:  init.FileKey,
		Parts:    parts,
	}, &resp)
	if err != nil {
		return api.CompleteResponse{}, fmt.Errorf("complete: %w", err)
	}

	return resp, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func responseError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(msg))
}
