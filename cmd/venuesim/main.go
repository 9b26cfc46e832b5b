package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/iliyamo/venue-simulator/internal/config"
	"github.com/iliyamo/venue-simulator/internal/console"
	"github.com/iliyamo/venue-simulator/internal/loader"
	"github.com/iliyamo/venue-simulator/internal/logger"
	"github.com/iliyamo/venue-simulator/internal/persistence"
	"github.com/iliyamo/venue-simulator/internal/queue"
	"github.com/iliyamo/venue-simulator/internal/repository"
	"github.com/iliyamo/venue-simulator/internal/service"
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

	flags := pflag.NewFlagSet("venuesim", pflag.ContinueOnError)
	flags.StringVar(&cfg.Source.APIBaseURL, "api", cfg.Source.APIBaseURL, "base URL serving teams.json, stadiums.json and matches.json")
	flags.StringVar(&cfg.Store.Kind, "store", cfg.Store.Kind, "snapshot store: file, redis or mysql")
	flags.StringVar(&cfg.Store.Dir, "data-dir", cfg.Store.Dir, "directory of the file store")
	flags.BoolVar(&cfg.Queue.Enabled, "publish", cfg.Queue.Enabled, "publish sale events to AMQP")
	flags.StringVar(&cfg.App.LogLevel, "log-level", cfg.App.LogLevel, "debug, info, warn or error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	log := logger.New(logger.Options{
		ServiceName: "venuesim",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, closeStore, err := persistence.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore() //nolint:errcheck

	var pub queue.Publisher = queue.NopPublisher{}
	if cfg.Queue.Enabled {
		pub = queue.NewAMQPPublisher(cfg.Queue.URL, cfg.Queue.Name)
	}

	reg := repository.NewRegistry()
	c := console.New(console.Options{
		In:       os.Stdin,
		Out:      os.Stdout,
		Registry: reg,
		Desks:    service.NewDesks(service.Deps{Registry: reg, Publisher: pub, Log: log}),
		Source:   loader.New(cfg.Source.BaseURL(), cfg.Source.HTTPTimeout, log),
		Store:    store,
		Log:      log,
	})
	log.Info(log.WithField(ctx, "store", cfg.Store.Kind), "simulator started")
	return c.Run(ctx)
}
