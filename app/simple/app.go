package simple

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/mrCamelCode/potami/core/config"
	"github.com/mrCamelCode/potami/core/cookie"
	"github.com/mrCamelCode/potami/core/logger"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/router"
	"github.com/mrCamelCode/potami/core/server"
	"github.com/mrCamelCode/potami/core/session"
	"github.com/mrCamelCode/potami/core/sessiontransport"
	"github.com/mrCamelCode/potami/integration/database/pg"
	"github.com/mrCamelCode/potami/integration/database/redis"
	"github.com/mrCamelCode/potami/middleware"
	"github.com/mrCamelCode/potami/pkg/ratelimiter"
)

// ErrUnknownSessionStore reports a SESSION_STORE value that is not
// memory, redis, or postgres.
var ErrUnknownSessionStore = errors.New("unknown session store")

// SessionData is the payload attached to every visitor's session.
type SessionData struct {
	Name string `json:"name"`
}

// App wires the whole stack: config, logger, cookie/session managers,
// middleware, routes, and the HTTP server.
type App struct {
	cfg          Config
	log          *slog.Logger
	mux          *router.Mux
	srv          *server.Server
	cookies      *cookie.Manager
	store        session.Store[SessionData]
	sessions     *session.Manager[SessionData]
	transport    *sessiontransport.Cookie[SessionData]
	sessionKey   *reqctx.Key[*session.Session[SessionData]]
	limiter      ratelimiter.RateLimiter
	limiterStore *ratelimiter.MemoryStore
	db           *pgxpool.Pool
	redis        *goredis.Client
}

// Option overrides a piece of the app before it is wired.
type Option func(*App) error

// WithLogger replaces the logger built from APP_ENV.
func WithLogger(log *slog.Logger) Option {
	return func(app *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		app.log = log
		return nil
	}
}

// WithSessionStore replaces the backend selected by SESSION_STORE. The
// app will not open a database connection of its own.
func WithSessionStore(store session.Store[SessionData]) Option {
	return func(app *App) error {
		if store == nil {
			return errors.New("session store cannot be nil")
		}
		app.store = store
		return nil
	}
}

// New loads Config from the environment and wires the app. The context
// bounds the initial database connections.
func New(ctx context.Context, opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg, opts...)
}

// NewWithConfig wires the app from an explicit Config.
func NewWithConfig(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	cfg.applyDefaults()
	app := &App{cfg: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.log == nil {
		app.log = newLogger(cfg)
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return nil, fmt.Errorf("cookie manager: %w", err)
	}
	app.cookies = cookies

	if app.store == nil {
		if err := app.openStore(ctx); err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
	}

	app.sessions = session.NewManagerFromConfig(app.store, cfg.Session)
	app.transport = sessiontransport.NewCookieFromConfig(cfg.SessionTransport, app.sessions, app.cookies)
	app.sessionKey = middleware.NewSessionKey[SessionData]()

	if err := app.buildLimiter(); err != nil {
		app.Close()
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	app.mux = app.buildRouter()

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.log))
	if err != nil {
		app.Close()
		return nil, err
	}
	app.srv = srv

	return app, nil
}

// newLogger builds the app logger from the environment name.
func newLogger(cfg Config) *slog.Logger {
	switch cfg.Env {
	case "production":
		return logger.New(logger.WithProduction(cfg.AppName))
	case "staging":
		return logger.New(logger.WithStaging(cfg.AppName))
	default:
		return logger.New(logger.WithDevelopment(cfg.AppName))
	}
}

// openStore connects the backend SESSION_STORE selects. Database configs
// are loaded here so a memory-store app needs no PG_/REDIS_ variables.
func (app *App) openStore(ctx context.Context) error {
	switch app.cfg.SessionStore {
	case StoreMemory:
		app.store = session.NewMemoryStore[SessionData]()
		return nil

	case StoreRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		store, err := session.NewRedisStore[SessionData](client)
		if err != nil {
			_ = client.Close()
			return err
		}
		app.redis = client
		app.store = store
		return nil

	case StorePostgres:
		var dbCfg pg.Config
		if err := config.Load(&dbCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, dbCfg)
		if err != nil {
			return err
		}
		if err := pg.Migrate(ctx, pool, dbCfg, app.log); err != nil {
			pool.Close()
			return err
		}
		store, err := session.NewPostgresStore[SessionData](pool)
		if err != nil {
			pool.Close()
			return err
		}
		app.db = pool
		app.store = store
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownSessionStore, app.cfg.SessionStore)
	}
}

// buildLimiter backs the rate limiter with Redis when the session store
// already holds a connection, memory otherwise.
func (app *App) buildLimiter() error {
	limitCfg := ratelimiter.Config{
		Capacity:       app.cfg.RateLimitRequests,
		RefillRate:     app.cfg.RateLimitRequests,
		RefillInterval: app.cfg.RateLimitWindow,
	}

	var store ratelimiter.Store
	if app.redis != nil {
		redisStore, err := ratelimiter.NewRedisStore(app.redis)
		if err != nil {
			return err
		}
		store = redisStore
	} else {
		memStore := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(app.log))
		app.limiterStore = memStore
		store = memStore
	}

	bucket, err := ratelimiter.NewBucket(store, limitCfg)
	if err != nil {
		return err
	}
	app.limiter = bucket
	return nil
}

// Run serves until ctx is canceled, alongside the background loops:
// rate-limit bucket cleanup and expired-session purging. It blocks and
// closes the app's connections before returning.
func (app *App) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(app.srv.Run(ctx, app.mux))

	if app.limiterStore != nil {
		eg.Go(func() error {
			err := app.limiterStore.Start(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		})
	}

	eg.Go(func() error {
		return app.cleanupSessions(ctx)
	})

	err := eg.Wait()
	app.Close()
	return err
}

// cleanupSessions purges expired sessions on the configured interval.
func (app *App) cleanupSessions(ctx context.Context) error {
	if app.cfg.SessionCleanupInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(app.cfg.SessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := app.sessions.CleanupExpired(ctx)
			if err != nil {
				app.log.ErrorContext(ctx, "session cleanup failed",
					logger.Component("sessions"),
					logger.Error(err),
				)
				continue
			}
			if n > 0 {
				app.log.InfoContext(ctx, "expired sessions removed",
					logger.Component("sessions"),
					logger.Count("sessions", int(n)),
				)
			}
		}
	}
}

// Handler exposes the wired router, mainly for tests and embedding.
func (app *App) Handler() http.Handler {
	return app.mux
}

// Logger exposes the app logger.
func (app *App) Logger() *slog.Logger {
	return app.log
}

// Close releases the database connections the app opened. Safe to call
// more than once.
func (app *App) Close() {
	if app.db != nil {
		app.db.Close()
		app.db = nil
	}
	if app.redis != nil {
		_ = app.redis.Close()
		app.redis = nil
	}
}
