package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsroom/pkg/cookie"
)

const (
	secretA = "test-secret-key-that-is-long-enough"
	secretB = "another-secret-key-that-is-long-enough"
)

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{secretA}
	}
	m, err := cookie.New(secrets)
	require.NoError(t, err)
	return m
}

// replay copies the cookies set on w into a fresh request.
func replay(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA, "", secretB})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestManager_Plain(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	m.Set(w, "theme", "dark", cookie.WithMaxAge(60))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 60, cookies[0].MaxAge)

	got, err := m.Get(replay(w), "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "theme")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	m.Delete(w, "sid")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.SetSigned(w, "uid", "alice")

		got, err := m.GetSigned(replay(w), "uid")
		require.NoError(t, err)
		assert.Equal(t, "alice", got)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.SetSigned(w, "uid", "alice")
		c := w.Result().Cookies()[0]
		_, sig, _ := strings.Cut(c.Value, ".")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "uid", Value: "Ym9i." + sig})
		_, err := m.GetSigned(r, "uid")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("value moved to another cookie name", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.SetSigned(w, "uid", "alice")
		c := w.Result().Cookies()[0]

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "admin", Value: c.Value})
		_, err := m.GetSigned(r, "admin")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "uid", Value: "no-separator"})
		_, err := m.GetSigned(r, "uid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_Encrypted(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "sid", "opaque-token"))
	raw := w.Result().Cookies()[0].Value
	assert.NotContains(t, raw, "opaque-token")

	got, err := m.GetEncrypted(replay(w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", got)

	w2 := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w2, "sid", "opaque-token"))
	assert.NotEqual(t, raw, w2.Result().Cookies()[0].Value, "fresh nonce per write")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered := []byte(raw)
	if tampered[20] == 'A' {
		tampered[20] = 'B'
	} else {
		tampered[20] = 'A'
	}
	r.AddCookie(&http.Cookie{Name: "sid", Value: string(tampered)})
	_, err = m.GetEncrypted(r, "sid")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "%%%"})
	_, err = m.GetEncrypted(r, "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
}

func TestManager_KeyRotation(t *testing.T) {
	t.Parallel()

	old := newManager(t, secretA)
	rotated := newManager(t, secretB, secretA)
	fresh := newManager(t, secretB)

	w := httptest.NewRecorder()
	require.NoError(t, old.SetEncrypted(w, "sid", "token"))
	old.SetSigned(w, "uid", "alice")
	r := replay(w)

	got, err := rotated.GetEncrypted(r, "sid")
	require.NoError(t, err)
	assert.Equal(t, "token", got)

	got, err = rotated.GetSigned(r, "uid")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	_, err = fresh.GetEncrypted(r, "sid")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	_, err = fresh.GetSigned(r, "uid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestManager_Flash(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(w, cookie.Error("Authentication failed")))

	w2 := httptest.NewRecorder()
	msg, ok := m.PopFlash(w2, replay(w))
	require.True(t, ok)
	assert.Equal(t, cookie.Flash{Level: cookie.LevelError, Text: "Authentication failed"}, msg)

	deleted := w2.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Negative(t, deleted[0].MaxAge)

	_, ok = m.PopFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{
		Secrets:  " " + secretA + " , " + secretB,
		Path:     "/app",
		Secure:   true,
		SameSite: "strict",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Set(w, "k", "v")
	c := w.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	_, err = cookie.NewFromConfig(cookie.Config{Secrets: " , "})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
