package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicHeader(value string) http.Header {
	h := http.Header{}
	h.Set("Authorization", value)
	return h
}

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestParseBasicAuth(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		c, err := ParseBasicAuth(basicHeader("Basic " + encode("publisher:s3cr:et")))
		require.NoError(t, err)
		assert.Equal(t, "publisher", c.Username)
		assert.Equal(t, "s3cr:et", c.Password.Expose(), "split happens on the first colon only")
	})

	t.Run("empty password is allowed", func(t *testing.T) {
		t.Parallel()

		c, err := ParseBasicAuth(basicHeader("Basic " + encode("publisher:")))
		require.NoError(t, err)
		assert.Empty(t, c.Password.Expose())
	})

	tests := []struct {
		name   string
		header http.Header
		reason string
	}{
		{"missing header", http.Header{}, "missing"},
		{"invalid utf8 header", http.Header{"Authorization": {"Basic \xff\xfe"}}, "valid UTF8 string"},
		{"wrong scheme", basicHeader("Bearer " + encode("a:b")), "not 'Basic'"},
		{"lowercase scheme", basicHeader("basic " + encode("a:b")), "not 'Basic'"},
		{"bad base64", basicHeader("Basic !!!"), "base64"},
		{"decoded not utf8", basicHeader("Basic " + base64.StdEncoding.EncodeToString([]byte{0xff, ':', 'x'})), "decoded credential"},
		{"no username", basicHeader("Basic " + encode(":password")), "username"},
		{"no password", basicHeader("Basic " + encode("publisher")), "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseBasicAuth(tt.header)
			require.ErrorIs(t, err, ErrBasicAuth)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestChallenge(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Challenge(w)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="publish"`, w.Header().Get("WWW-Authenticate"))
}
