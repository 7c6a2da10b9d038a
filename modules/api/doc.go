// Package api serves the public subscription endpoints and the Basic-auth
// protected newsletter publishing endpoint used by machine clients.
package api
