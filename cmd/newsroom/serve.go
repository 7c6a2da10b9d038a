package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/modules/admin"
	"github.com/dmitrymomot/newsroom/modules/api"
	"github.com/dmitrymomot/newsroom/pkg/async"
	"github.com/dmitrymomot/newsroom/pkg/clientip"
	"github.com/dmitrymomot/newsroom/pkg/cookie"
	"github.com/dmitrymomot/newsroom/pkg/email"
	"github.com/dmitrymomot/newsroom/pkg/httpserver"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/pkg/observability"
	"github.com/dmitrymomot/newsroom/pkg/pg"
	"github.com/dmitrymomot/newsroom/pkg/redis"
	"github.com/dmitrymomot/newsroom/pkg/requestid"
	"github.com/dmitrymomot/newsroom/pkg/session"
	"github.com/dmitrymomot/newsroom/repository"
	"github.com/dmitrymomot/newsroom/svc/auth"
	"github.com/dmitrymomot/newsroom/svc/newsletter"
)

const readinessTimeout = 5 * time.Second

func NewServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServeConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServe(cmd.Context(), cfg, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func newLogger(app appConfig, cfg logger.Config) *slog.Logger {
	opts := logger.FromConfig(cfg)
	opts = append(opts,
		logger.WithOutput(os.Stdout),
		logger.WithAttr(slog.String("service", app.Name), slog.String("env", app.Env)),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	return logger.New(opts...)
}

func runServe(ctx context.Context, cfg serveConfig, migrate bool) error {
	log := newLogger(cfg.App, cfg.Logger)
	slog.SetDefault(log)

	reg := observability.NewRegistry()
	tracer := observability.Tracer()

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if migrate {
		if err := pg.Migrate(ctx, pool, repository.Migrations, repository.MigrationsDir, cfg.PG, log); err != nil {
			return err
		}
	}

	checks := []httpserver.Check{{Name: "postgres", Probe: pg.Healthcheck(pool)}}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		store = session.NewRedisStore(client)
		checks = append(checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
	default:
		mem := session.NewMemoryStore(cfg.Session.CleanupInterval)
		defer func() { _ = mem.Close() }()
		store = mem
	}
	sessions := session.NewFromConfig(cfg.Session,
		session.WithStore(store),
		session.WithCookieManager(cookies),
		session.WithLogger(log),
	)

	sender, err := email.NewFromConfig(cfg.Email)
	if err != nil {
		return fmt.Errorf("email sender: %w", err)
	}

	blocking := async.NewPool(
		async.WithWorkers(cfg.App.BlockingWorkers),
		async.WithQueueSize(cfg.App.BlockingQueueSize),
		async.WithTracer(tracer),
		async.WithRegisterer(reg),
		async.WithLogger(log),
	)
	defer blocking.Close()

	users := repository.NewUsers(pool)
	validator := auth.NewValidator(users, blocking,
		auth.WithValidatorTracer(tracer),
		auth.WithValidatorRegisterer(reg),
		auth.WithValidatorLogger(log),
	)
	changer := auth.NewPasswordChanger(validator, users, blocking, auth.WithPasswordChangerLogger(log))
	news := newsletter.NewService(repository.NewSubscriptions(pool), sender, cfg.Newsletter,
		newsletter.WithLogger(log),
		newsletter.WithTracer(tracer),
		newsletter.WithRegisterer(reg),
	)

	errorHandler := handler.NewErrorHandler(log)
	adminSvc := admin.NewService(validator, changer, users, news, auth.NewTypedSession(nil), cookies,
		admin.WithLogger(log),
		admin.WithErrorHandler(errorHandler),
	)
	apiSvc := api.NewService(news, validator,
		api.WithLogger(log),
		api.WithErrorHandler(errorHandler),
	)

	metrics := observability.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(cfg.App.TrustProxy))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health_check", httpserver.LivenessHandler())
	r.Get("/health", httpserver.ReadinessHandler(log, readinessTimeout, checks...))
	r.Method(http.MethodGet, "/metrics", observability.Handler(reg))

	apiSvc.Routes(r)
	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)
		adminSvc.Routes(r)
	})

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	log.InfoContext(ctx, "starting server", slog.String("addr", cfg.HTTP.Addr), logger.Component("serve"))
	if err := server.Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
