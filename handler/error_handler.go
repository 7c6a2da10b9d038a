package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/newsroom/pkg/binder"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/pkg/validator"
)

// ErrorBody is the JSON shape written by NewErrorHandler.
type ErrorBody struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

// Classify maps err to a status code and a client-safe body.
func Classify(err error) (int, ErrorBody) {
	if errs := validator.ExtractValidationErrors(err); errs != nil {
		details := make(map[string][]string, len(errs))
		for _, field := range errs.Fields() {
			details[field] = errs.Get(field)
		}
		return http.StatusBadRequest, ErrorBody{Error: "validation_error", Details: details}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, ErrorBody{Error: httpErr.Key}
	}

	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMediaType.Code, ErrorBody{Error: ErrUnsupportedMediaType.Key}
	case errors.Is(err, binder.ErrFailedToParseForm), errors.Is(err, binder.ErrFailedToParseJSON):
		return ErrBadRequest.Code, ErrorBody{Error: ErrBadRequest.Key}
	}

	return ErrInternalServerError.Code, ErrorBody{Error: ErrInternalServerError.Key}
}

// NewErrorHandler renders errors as JSON and logs them, client errors at warn
// and server errors at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status, body := Classify(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			logger.HTTP(r.Method, r.URL.Path, status),
			logger.Component("error_handler"),
		)

		w := ctx.ResponseWriter()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
