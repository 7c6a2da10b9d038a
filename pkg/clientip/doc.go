// Package clientip resolves the client address of a request and carries it
// in the request context so log records can include it.
//
// Forwarding headers are only consulted when the service runs behind a
// trusted reverse proxy; otherwise RemoteAddr is used as is.
package clientip
