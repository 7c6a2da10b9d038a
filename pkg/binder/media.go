package binder

import (
	"fmt"
	"mime"
	"net/http"
)

func mediaType(r *http.Request, expected string) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "", fmt.Errorf("%w: expected %s", ErrMissingContentType, expected)
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	return mt, nil
}
