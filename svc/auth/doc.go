// Package auth implements username and password authentication for the
// newsroom admin area and the publishing API.
//
// Validator checks Credentials against a CredentialStore. Unknown usernames
// are verified against DummyHash so both failure paths cost one Argon2id
// verification, and every failure surfaces as the same ErrInvalidCredentials.
// Hashing always runs on an async.Offloader.
//
// TypedSession stores the authenticated user id in the request session and
// rotates the session token on login. RequireLogin guards routes with it and
// puts the user id into the request context:
//
//	r.Group(func(r chi.Router) {
//		r.Use(auth.RequireLogin(sessions, log))
//		r.Get("/admin/dashboard", dashboard)
//	})
//
// PasswordChanger runs the password change flow and ParseBasicAuth extracts
// Credentials for stateless API clients.
package auth
