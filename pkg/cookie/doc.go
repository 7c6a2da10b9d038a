// Package cookie sets and reads HTTP cookies that are plain, signed
// (HMAC-SHA256) or encrypted (AES-256-GCM), and carries one-shot flash
// messages between a redirect and the next request.
//
// Signing and encryption keys are derived from the configured secrets with
// HKDF-SHA256. The first secret is used for new cookies; every secret is
// tried when reading, so secrets can be rotated by prepending a new one.
//
//	cm, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	_ = cm.SetFlash(w, cookie.Error("Authentication failed"))
//	http.Redirect(w, r, "/login", http.StatusSeeOther)
//
//	// next request
//	msg, ok := cm.PopFlash(w, r)
package cookie
