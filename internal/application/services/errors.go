package services

import "errors"

var (
	ErrUploadFailed        = errors.New("upload failed")
	ErrMetadataWriteFailed = errors.New("metadata write failed")
	ErrBlobDeleteFailed    = errors.New("blob delete failed")
	ErrConfigSaveFailed    = errors.New("config save failed")

	ErrEmptyPayload    = errors.New("file is empty")
	ErrNotTrashed      = errors.New("file is not in trash")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrSubjectExists   = errors.New("subject already exists")
	ErrSubjectNotFound = errors.New("subject not found")
)
