// Package session provides server-side sessions addressed by an opaque
// token carried in an encrypted cookie.
//
// A Manager combines a Store (MemoryStore or RedisStore) with a Transport.
// Handlers work with a per-request Handle, installed in the request context
// by Manager.Middleware:
//
//	h, _ := session.FromContext(r.Context())
//	if err := h.Renew(ctx); err != nil { ... }
//	if err := h.Insert(ctx, "user_id", id.String()); err != nil { ... }
//
// Sessions are created on the first Insert. Renew rotates the token while
// keeping the data, which prevents session fixation when called right before
// storing an identity. Purge deletes the session and expires the cookie; it
// is safe to call on requests that have no session.
//
// Errors for which IsAbsent returns true mean "no session". Every other
// error returned by a Handle is a store or transport failure and must not be
// treated as an anonymous visitor.
package session
