package main

import (
	"errors"

	"github.com/dmitrymomot/newsroom/pkg/config"
	"github.com/dmitrymomot/newsroom/pkg/cookie"
	"github.com/dmitrymomot/newsroom/pkg/email"
	"github.com/dmitrymomot/newsroom/pkg/httpserver"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/pkg/pg"
	"github.com/dmitrymomot/newsroom/pkg/redis"
	"github.com/dmitrymomot/newsroom/pkg/session"
	"github.com/dmitrymomot/newsroom/svc/newsletter"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"newsroom"`

	// BlockingWorkers sizes the pool for password hashing; 0 means one per CPU.
	BlockingWorkers   int `env:"APP_BLOCKING_WORKERS" envDefault:"0"`
	BlockingQueueSize int `env:"APP_BLOCKING_QUEUE_SIZE" envDefault:"64"`

	// TrustProxy makes forwarding headers authoritative for the client IP.
	TrustProxy bool `env:"APP_TRUST_PROXY" envDefault:"false"`
}

func loadEnv() error {
	if envFile == "" {
		return config.LoadEnv()
	}
	return config.LoadEnv(envFile)
}

// load reads one configuration section after the dotenv file is applied.
func load[T any]() (T, error) {
	var v T
	if err := loadEnv(); err != nil {
		return v, err
	}
	err := config.Load(&v)
	return v, err
}

type serveConfig struct {
	App        appConfig
	Logger     logger.Config
	HTTP       httpserver.Config
	PG         pg.Config
	Redis      redis.Config
	Cookie     cookie.Config
	Session    session.Config
	Email      email.Config
	Newsletter newsletter.Config
}

func loadInto[T any](dst *T) error {
	v, err := load[T]()
	*dst = v
	return err
}

func loadServeConfig() (serveConfig, error) {
	var cfg serveConfig
	err := errors.Join(
		loadInto(&cfg.App),
		loadInto(&cfg.Logger),
		loadInto(&cfg.HTTP),
		loadInto(&cfg.PG),
		loadInto(&cfg.Cookie),
		loadInto(&cfg.Session),
		loadInto(&cfg.Email),
		loadInto(&cfg.Newsletter),
	)
	if err == nil && cfg.Session.Store == "redis" {
		err = loadInto(&cfg.Redis)
	}
	return cfg, err
}
