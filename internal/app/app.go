package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"flow-ai/threadview/internal/api"
	"flow-ai/threadview/internal/cache"
	"flow-ai/threadview/internal/config"
	"flow-ai/threadview/internal/database"
	"flow-ai/threadview/internal/render"
	"flow-ai/threadview/internal/repository"
	"flow-ai/threadview/internal/service"
	"flow-ai/threadview/internal/toolview"
)

// App holds the long-lived resources of a running service.
type App struct {
	cfg    *config.Config
	DB     *sql.DB
	Redis  *redis.Client
	Server *http.Server

	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// Run loads configuration, serves until SIGINT or SIGTERM, and returns the
// process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	SetupLogger(cfg.LogLevel, cfg.LogFormat)
	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

// NewApp opens storage, loads settings and wires the HTTP stack.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	a := &App{cfg: cfg, DB: db}

	registry := toolview.NewDefault()
	settingsService := service.NewSettingsService(db, registry, cfg.StreamDedup)
	settings, err := settingsService.InitAndGet(context.Background())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	slog.Info("Loaded render settings", "dedup_streaming", settings.StreamDedup, "tool_view_aliases", len(settings.ToolViewAliases))

	viewCache := a.setupCache()

	repo := repository.NewSQLiteRepository(db)
	renderer := render.New(registry, slog.Default())
	threadService := service.NewThreadService(repo, renderer, viewCache, settingsService, service.NewHub())

	router := api.NewRouter(
		api.NewThreadHandler(threadService, settingsService),
		api.NewRenderHandler(threadService),
	)

	a.baseCtx, a.cancelBase = context.WithCancel(context.Background())
	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // view streams stay open
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return a.baseCtx },
	}
	return a, nil
}

// setupCache returns the Redis view cache when REDIS_ADDR is set. An
// unreachable Redis is logged and used anyway; reads then miss.
func (a *App) setupCache() cache.ViewCache {
	if a.cfg.RedisAddr == "" {
		slog.Info("REDIS_ADDR not set, view cache disabled")
		return cache.NopCache{}
	}

	a.Redis = redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis is not reachable, view cache will miss until it is", "addr", a.cfg.RedisAddr, "error", err)
	} else {
		slog.Info("Successfully connected to Redis.", "addr", a.cfg.RedisAddr)
	}
	return cache.NewRedisCache(a.Redis, a.cfg.ViewCacheTTL)
}

// Serve runs the HTTP server until ctx is done, then shuts it down
// gracefully. Open view streams are ended first so Shutdown can drain.
func (a *App) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server", "timeout", a.cfg.ShutdownTimeout)
		a.cancelBase()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases storage connections.
func (a *App) Close() {
	if a.cancelBase != nil {
		a.cancelBase()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func parseLevel(logLevel string) slog.Level {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger installs the default logger: JSON for machines, tint for a
// terminal when format is "text".
func SetupLogger(logLevel, format string) {
	level := parseLevel(logLevel)

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

