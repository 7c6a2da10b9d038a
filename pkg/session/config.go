package session

import "time"

// Config holds session configuration.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// IdleTimeout is extended on every write; MaxLifetime caps it from creation.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"720h"`

	// CleanupInterval for the in-memory store (0 disables it).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// Store selects the backend: "memory" or "redis".
	Store string `env:"SESSION_STORE" envDefault:"memory"`
}

// DefaultConfig returns the same values as the env defaults.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		IdleTimeout:     2 * time.Hour,
		MaxLifetime:     30 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		SecureCookies:   false,
		Store:           "memory",
	}
}

// expiry returns the earlier of now+idle and createdAt+max.
func (c Config) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(c.IdleTimeout)
	maxExpiry := createdAt.Add(c.MaxLifetime)
	if maxExpiry.Before(idle) {
		return maxExpiry
	}
	return idle
}
