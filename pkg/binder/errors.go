package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrMissingContentType   = errors.New("binder: missing content type")
	ErrFailedToParseJSON    = errors.New("binder: failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("binder: failed to parse form data")
)
