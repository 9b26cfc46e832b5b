package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/pflag"

	"github.com/iliyamo/venue-simulator/internal/config"
	"github.com/iliyamo/venue-simulator/internal/handler"
	"github.com/iliyamo/venue-simulator/internal/logger"
	"github.com/iliyamo/venue-simulator/internal/middleware"
	"github.com/iliyamo/venue-simulator/internal/persistence"
	"github.com/iliyamo/venue-simulator/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := pflag.NewFlagSet("report-server", pflag.ContinueOnError)
	flags.StringVar(&cfg.App.Port, "port", cfg.App.Port, "HTTP port")
	flags.StringVar(&cfg.Store.Kind, "store", cfg.Store.Kind, "snapshot store: file, redis or mysql")
	flags.StringVar(&cfg.Store.Dir, "data-dir", cfg.Store.Dir, "directory of the file store")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	log := logger.New(logger.Options{
		ServiceName: "report-server",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := persistence.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore() //nolint:errcheck

	// The cache and the limiter degrade to pass-through without Redis.
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn(ctx, "redis unavailable: response cache and rate limit disabled")
	} else {
		defer rdb.Close() //nolint:errcheck
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLog(log))
	router.RegisterRoutes(e)
	router.RegisterReports(e, handler.NewReportHandler(store, log),
		middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
		middleware.NewRedisCache(cfg.Cache, rdb, log),
	)

	addr := ":" + cfg.App.Port
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()
	log.Info(log.WithFields(ctx, map[string]any{"addr": addr, "env": cfg.App.Env, "store": cfg.Store.Kind}), "listening")
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
