package models

import (
	"io"
	"time"
)

// PartAck — подтверждение бэкенда о загруженной части. ETag непрозрачен,
// при завершении передаётся обратно дословно.
type PartAck struct {
	PartNumber int32  `json:"partNumber"`
	ETag       string `json:"eTag"`
}

// InitiateResult возвращается после открытия multipart-сессии.
type InitiateResult struct {
	UploadID string
	FileKey  string
}

// CompleteResult содержит итог завершённой загрузки: токен для скачивания
// и location, который сообщил бэкенд.
type CompleteResult struct {
	DownloadID string
	Location   string
}

// ObjectInfo — метаданные объекта в хранилище.
type ObjectInfo struct {
	Size         int64
	ContentType  string
	Metadata     map[string]string
	LastModified time.Time
}

// FileInfo — пользовательское описание файла без тела.
type FileInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadDate time.Time `json:"uploadDate"`
}

// Object — поток содержимого вместе с заголовочными метаданными.
// Body обязан закрыть вызывающий.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}
