// Package api описывает протокол HTTP-взаимодействия клиента загрузки с REST-сервисом.
package api

// Пути REST-протокола. Форматные строки принимают базовый URL и токен.
const (
	InitiatePath = "/api/upload/initiate"
	PartPath     = "/api/upload/part"
	CompletePath = "/api/upload/complete"

	DownloadPathFormat = "%s/api/download/%s"
	FileInfoPathFormat = "%s/api/file/info/%s"
)

// Имена полей multipart-формы для загрузки части.
const (
	FieldChunk      = "chunk"
	FieldUploadID   = "uploadId"
	FieldFileKey    = "fileKey"
	FieldPartNumber = "partNumber"
)

type InitiateRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type InitiateResponse struct {
	UploadID string `json:"uploadId"`
	FileKey  string `json:"fileKey"`
}

// Part — подтверждение одной части в wire-формате. Порядок и дословный ETag
// обязаны сохраниться до запроса завершения.
type Part struct {
	PartNumber int32  `json:"partNumber"`
	ETag       string `json:"eTag"`
}

type PartResponse struct {
	ETag       string `json:"eTag"`
	PartNumber int32  `json:"partNumber"`
}

type CompleteRequest struct {
	UploadID string `json:"uploadId"`
	FileKey  string `json:"fileKey"`
	Parts    []Part `json:"parts"`
}

type CompleteResponse struct {
	Success    bool   `json:"success"`
	DownloadID string `json:"downloadId"`
	Location   string `json:"location,omitempty"`
}

type FileInfoResponse struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	UploadDate string `json:"uploadDate"`
}
