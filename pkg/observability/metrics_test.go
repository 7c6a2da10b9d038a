package observability_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsroom/pkg/observability"
)

func TestHTTPMetrics(t *testing.T) {
	t.Parallel()

	reg := observability.NewRegistry()
	m := observability.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fine"))
	})
	r.Handle("/metrics", observability.Handler(reg))

	for _, path := range []string{"/items/1", "/items/2", "/ok"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP newsroom_http_requests_total HTTP requests by method, route and status code.
# TYPE newsroom_http_requests_total counter
newsroom_http_requests_total{code="200",method="GET",route="/ok"} 1
newsroom_http_requests_total{code="418",method="GET",route="/items/{id}"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "newsroom_http_requests_total"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
	assert.Contains(t, rec.Body.String(), "newsroom_http_request_duration_seconds")
}
