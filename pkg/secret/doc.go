// Package secret provides a string wrapper for sensitive values such as
// passwords and tokens.
//
// A String never prints its payload: fmt verbs, slog, and JSON encoding all
// render a fixed placeholder. The only way to read the value is Expose, which
// keeps every point of use greppable.
//
//	pw := secret.New(r.FormValue("password"))
//	log.Info("login attempt", "password", pw) // password=[REDACTED]
//	hash, err := hasher.Hash([]byte(pw.Expose()))
package secret
