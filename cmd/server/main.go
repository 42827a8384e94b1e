package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neighborhelp-backend/auth"
	"neighborhelp-backend/config"
	"neighborhelp-backend/handlers"
	"neighborhelp-backend/logging"
	"neighborhelp-backend/middleware"
	"neighborhelp-backend/repository"
	"neighborhelp-backend/repository/memory"
	"neighborhelp-backend/service"
	"neighborhelp-backend/session"
	"neighborhelp-backend/storage"
	"neighborhelp-backend/web"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger.Slog())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logging.SlogLogger) error {
	// Repositories
	var (
		accountRepo  service.AccountRepository
		requestRepo  service.RequestRepository
		neighborRepo service.NeighborRepository
		pinger       handlers.Pinger
	)

	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		accountRepo = store.Accounts()
		requestRepo = store.Requests()
		neighborRepo = store.Neighbors()
		logger.Warn(ctx, "using in-memory database, data is lost on restart")
	default:
		if cfg.Database.MigrateOnStart {
			if err := repository.RunMigrations(ctx, cfg.Database.URL); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			logger.Info(ctx, "migrations applied")
		}

		pool, err := repository.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		defer pool.Close()
		logger.Info(ctx, "postgres connection established")

		accountRepo = repository.NewAccountRepository(pool)
		requestRepo = repository.NewRequestRepository(pool)
		neighborRepo = repository.NewNeighborRepository(pool)
		pinger = pool
	}

	// Redis backs the session store and the login rate limiter
	var redisClient *redis.Client
	if cfg.UsesRedis() {
		client, err := newRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		logger.Info(ctx, "redis connection established", "addr", cfg.Redis.Addr)
	}

	sessions, err := session.NewStore(cfg.Session, redisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	if mem, ok := sessions.(*session.MemoryStore); ok {
		go mem.RunSweeper(ctx, time.Minute)
	}

	assets, err := storage.NewStorageFromConfig(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	// Services
	authService := service.NewAuthService(
		service.WithAccountRepository(accountRepo),
		service.WithPasswordHasher(auth.NewHasher(cfg.BcryptCost)),
		service.WithSessionStore(sessions),
		service.WithAuthLogger(logger.With("component", "auth")),
	)
	requestService := service.NewRequestService(
		service.WithRequestRepository(requestRepo),
		service.WithNeighborRepository(neighborRepo),
		service.WithRequestLogger(logger.With("component", "requests")),
	)

	// Handlers
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	rt := handlers.Router{
		Auth:           handlers.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.CookieSecure, logger),
		Requests:       handlers.NewRequestHandler(requestService, logger),
		Pages:          handlers.NewPageHandler(),
		Static:         handlers.NewStaticHandler(assets, logger),
		Health:         handlers.NewHealthHandler(pinger, logger),
		RequireSession: middleware.RequireSession(authService, cfg.Session.CookieName, logger),
		TrustedProxies: cfg.TrustedProxies,
		Templates:      tmpl,
		Log:            logger,
	}
	if redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
		rt.LoginLimiter = limiter.Middleware()
	}

	router, err := handlers.NewRouter(rt)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Slog().Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
