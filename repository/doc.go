// Package repository implements the PostgreSQL stores behind svc/auth and
// svc/newsletter, and embeds the goose migrations that create their tables.
package repository
