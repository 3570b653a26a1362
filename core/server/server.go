package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"taruf-api/core/cache"
	"taruf-api/core/config"
	"taruf-api/core/constants"
	"taruf-api/core/database"
	"taruf-api/core/logger"
	"taruf-api/core/metrics"
	"taruf-api/core/middleware"
	"taruf-api/core/queue"
	"taruf-api/core/storage"
	"taruf-api/core/utils"
	"taruf-api/modules/auth"
	"taruf-api/modules/selection"
	"taruf-api/modules/slot"
	"taruf-api/modules/taruf"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the HTTP API and, when enabled, the background worker. It
// blocks until SIGINT or SIGTERM and then drains both.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.Migrate {
		migrateCtx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
		err := database.Migrate(migrateCtx, &db)
		cancel()
		if err != nil {
			return err
		}
	}

	store := newCache(cfg.Redis)
	defer store.Close()

	metrics.Register()
	signer := storage.NewPhotoSigner(cfg.Storage)
	mw := middleware.NewMiddleware(store)

	var (
		enqueuer queue.Enqueuer
		client   *queue.Client
		worker   *queue.Worker
	)
	if cfg.Queue.Enabled {
		client = queue.NewClient(cfg.Redis)
		defer client.Close()
		enqueuer = client
		worker = queue.NewWorker(cfg.Redis, cfg.Queue.Concurrency)
	}

	e := newEcho(cfg.Server, &db)

	auth.Init(e, db, store, mw)
	taruf.Init(e, db, signer, mw)
	selection.Init(e, db, signer, mw)
	slotService := slot.Init(e, db, slot.Deps{
		Cache:      store,
		Enqueuer:   enqueuer,
		Signer:     signer,
		Assignment: cfg.Assignment,
	}, mw)

	if worker != nil {
		slot.RegisterTasks(worker, slotService)
		if err := worker.Start(); err != nil {
			return fmt.Errorf("start queue worker: %w", err)
		}
		defer worker.Shutdown()
		logger.Info("Server:Run:WorkerStarted", "concurrency", cfg.Queue.Concurrency)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server:Run:ShuttingDown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Run:Shutdown", err)
		return err
	}
	return nil
}

// newCache prefers Redis and falls back to the in-process cache so a single
// instance can still serve without it.
func newCache(cfg config.RedisConfig) cache.Cache {
	rc, err := cache.NewRedisCache(cfg, utils.GenerateLockToken)
	if err != nil {
		logger.Warn("Server:newCache:RedisUnavailable", "addr", cfg.Addr, err)
		return cache.NewMemoryCache(utils.GenerateLockToken)
	}
	return rc
}

func newEcho(cfg config.ServerConfig, db database.IDatabase) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: utils.GenerateID}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.RequestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), constants.DefaultTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
