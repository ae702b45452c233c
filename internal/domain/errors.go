package domain

import "errors"

var (
	ErrUnknownDocumentType  = errors.New("unknown document type")
	ErrMalformedSchema      = errors.New("malformed record schema")
	ErrModelInvocation      = errors.New("model invocation failed")
	ErrRecordInvalid        = errors.New("model output does not satisfy the record schema")
	ErrResolutionFailed     = errors.New("identity resolution failed")
	ErrDirectoryUnavailable = errors.New("identity directory unavailable")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrDriverNotFound       = errors.New("driver not found")
)
