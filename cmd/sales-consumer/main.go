package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/iliyamo/venue-simulator/internal/config"
	"github.com/iliyamo/venue-simulator/internal/logger"
	"github.com/iliyamo/venue-simulator/internal/queue"
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
	flags := pflag.NewFlagSet("sales-consumer", pflag.ContinueOnError)
	flags.StringVar(&cfg.Queue.URL, "amqp-url", cfg.Queue.URL, "AMQP broker URL")
	flags.StringVar(&cfg.Queue.Name, "queue", cfg.Queue.Name, "queue to drain")
	flags.StringVar(&cfg.Queue.LogPath, "out", cfg.Queue.LogPath, "sales log file")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	log := logger.New(logger.Options{
		ServiceName: "sales-consumer",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: cfg.Queue.URL, Queue: cfg.Queue.Name, LogPath: cfg.Queue.LogPath, Log: log}
	log.Info(log.WithFields(ctx, map[string]any{"queue": c.Queue, "out": c.LogPath}), "sales-consumer started")
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(ctx, "sales-consumer stopped")
	return nil
}
