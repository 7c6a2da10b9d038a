// Package pg connects to PostgreSQL with pgxpool, applies goose migrations
// from an fs.FS and classifies common driver errors.
package pg
