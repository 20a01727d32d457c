package models

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("file not found")
	ErrBackendFailure = errors.New("storage backend failure")
	ErrIncomplete     = errors.New("upload incomplete")
)
