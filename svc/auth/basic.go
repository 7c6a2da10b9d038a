package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/newsroom/pkg/secret"
)

// Realm is advertised in WWW-Authenticate challenges.
const Realm = "publish"

// ParseBasicAuth decodes an "Authorization: Basic" header. The decoded value
// is split on its first colon. Every failure is joined under ErrBasicAuth.
func ParseBasicAuth(h http.Header) (Credentials, error) {
	value := h.Get("Authorization")
	if value == "" {
		return Credentials{}, basicAuthError("the 'Authorization' header was missing")
	}
	if !utf8.ValidString(value) {
		return Credentials{}, basicAuthError("the 'Authorization' header was not a valid UTF8 string")
	}

	encoded, ok := strings.CutPrefix(value, "Basic ")
	if !ok {
		return Credentials{}, basicAuthError("the authorization scheme was not 'Basic'")
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Credentials{}, errors.Join(ErrBasicAuth, fmt.Errorf("failed to base64-decode 'Basic' credentials: %w", err))
	}
	if !utf8.Valid(decoded) {
		return Credentials{}, basicAuthError("the decoded credential string is not valid UTF8")
	}

	username, pass, found := strings.Cut(string(decoded), ":")
	if username == "" {
		return Credentials{}, basicAuthError("a username must be provided in 'Basic' auth")
	}
	if !found {
		return Credentials{}, basicAuthError("a password must be provided in 'Basic' auth")
	}

	return Credentials{Username: username, Password: secret.New(pass)}, nil
}

func basicAuthError(msg string) error {
	return errors.Join(ErrBasicAuth, errors.New(msg))
}

// Challenge writes a 401 asking for Basic credentials in Realm.
func Challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", Realm))
	w.WriteHeader(http.StatusUnauthorized)
}
