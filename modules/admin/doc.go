// Package admin serves the login form endpoints and the session-gated
// /admin area: dashboard, password change, logout and newsletter publishing.
//
// Form posts answer with 303 redirects and leave their feedback in a flash
// cookie; GET endpoints return the pending flash message as JSON.
package admin
