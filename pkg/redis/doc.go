// Package redis connects a go-redis client from a URL with retries and
// exposes a readiness probe.
package redis
