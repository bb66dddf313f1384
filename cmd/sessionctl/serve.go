package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/metrics"
	"github.com/dmitrymomot/sessionkit/pkg/mongo"
	"github.com/dmitrymomot/sessionkit/pkg/pg"
	"github.com/dmitrymomot/sessionkit/pkg/redis"
	"github.com/dmitrymomot/sessionkit/pkg/session"
	"github.com/dmitrymomot/sessionkit/pkg/tracing"
)

// serverConfig holds the demo server settings.
type serverConfig struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	Store     string `env:"SESSION_STORE" envDefault:"memory"`
}

func serveCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo HTTP server backed by sessionkit",
		Long: `Run an HTTP server whose session backend is configured from SESSION_*
environment variables. SESSION_STORE selects memory, redis, postgres or mongo
when SESSION_BACKEND is "store".

Routes:
  GET  /         count visits in the session
  POST /login    store user_id and regenerate the session id
  POST /logout   destroy the session
  GET  /healthz  liveness probe
  GET  /readyz   store readiness probe
  GET  /metrics  prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := config.LoadEnv(envFile); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Load environment variables from a .env file")

	return cmd
}

func runServer(ctx context.Context) error {
	var srvCfg serverConfig
	if err := config.Load(&srvCfg); err != nil {
		return err
	}
	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return err
	}

	format := logger.Format(srvCfg.LogFormat)
	if format != logger.FormatJSON && format != logger.FormatText {
		return fmt.Errorf("invalid LOG_FORMAT %q: want %q or %q", srvCfg.LogFormat, logger.FormatJSON, logger.FormatText)
	}
	log := logger.New(
		logger.WithLevelName(srvCfg.LogLevel),
		logger.WithFormat(format),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
		logger.WithContextExtractors(session.LogExtractor()),
		logger.WithAttr(logger.Component("sessionctl")),
	)

	kind, err := sessCfg.Kind()
	if err != nil {
		return err
	}

	var (
		store  session.Store
		checks []httpserver.Check
	)
	if kind == session.KindStore {
		s, release, check, err := openStore(ctx, srvCfg.Store, log)
		if err != nil {
			return err
		}
		defer release()
		store = s
		if check != nil {
			checks = append(checks, check)
		}
	}

	reg := prometheus.NewRegistry()
	collector := metrics.New(metrics.WithRegistry(reg))

	manager, err := session.NewFromConfig(sessCfg, store,
		session.WithLogger(log),
		session.WithObserver(session.Observers(collector, tracing.NewObserver())),
	)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(tracing.Middleware(tracing.WithTracerName("sessionctl")))
	r.Use(collector.Middleware)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, checks...))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(manager.Middleware)
		r.Get("/", visitsHandler)
		r.Post("/login", loginHandler(log))
		r.Post("/logout", logoutHandler)
	})

	srv := httpserver.New(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(ctx context.Context, addr string) {
			log.InfoContext(ctx, "session backend ready",
				slog.String("addr", addr),
				logger.Backend(string(manager.Kind())),
			)
		}),
	)
	return srv.Run(ctx, r)
}

// openStore connects the named session store. The returned func releases it
// and the check, when non-nil, probes its connection.
func openStore(ctx context.Context, name string, log *slog.Logger) (session.Store, func(), httpserver.Check, error) {
	switch name {
	case "", "memory":
		store := session.NewMemoryStore(0, time.Minute)
		return store, func() { _ = store.Close() }, nil, nil

	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		store := redis.NewSessionStoreFromConfig(client, cfg)
		return store, func() { _ = client.Close() }, store.Ping, nil

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		store := pg.NewSessionStore(pool, pg.WithTTL(cfg.SessionTTL))
		return store, pool.Close, store.Ping, nil

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, nil, err
		}
		client, err := mongo.New(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		release := func() { _ = client.Disconnect(context.Background()) }
		store := mongo.NewSessionStore(
			client.Database(cfg.Database).Collection(cfg.SessionCollection),
			mongo.WithTTL(cfg.SessionTTL),
		)
		if err := store.EnsureIndexes(ctx); err != nil {
			release()
			return nil, nil, nil, err
		}
		return store, release, store.Ping, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown session store %q: want memory, redis, postgres or mongo", name)
	}
}

func visitsHandler(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())
	visits, _ := sess.GetInt("visits")
	visits++
	sess.Set("visits", visits)

	fmt.Fprintf(w, "visits: %d\n", visits)
}

func loginHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.FormValue("user_id")
		if userID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		sess := session.MustFromContext(r.Context())
		sess.Set("user_id", userID)
		if err := sess.Regenerate(r.Context()); err != nil {
			log.ErrorContext(r.Context(), "regenerate session", logger.Error(err))
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	session.MustFromContext(r.Context()).Destroy()
	w.WriteHeader(http.StatusNoContent)
}
