package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/indigo-web/statica"
	"github.com/indigo-web/statica/config"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath = flag.String("config", "config.ini", "path to the INI config file")
		port       = flag.Int("port", 0, "port to listen on, overrides server.port")
		workers    = flag.Int("workers", 0, "number of workers, overrides server.workers")
		root       = flag.String("root", "", "directory to serve files from, overrides server.content_dir")
		dumpConfig = flag.Bool("dump-config", false, "print the effective config as JSON and exit")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *configPath).Msg("failed to load config")
		return 1
	}

	if *port != 0 {
		cfg.Server.Port = *port
	}

	if *workers != 0 {
		cfg.Server.Workers = *workers
	}

	if len(*root) > 0 {
		cfg.Server.ContentDir = *root
	}

	if *dumpConfig {
		if err = cfg.Dump(os.Stdout); err != nil {
			logger.Error().Err(err).Msg("failed to dump config")
			return 1
		}

		return 0
	}

	if err = cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("bad config")
		return 1
	}

	level, _ := cfg.LogLevel()
	logger = logger.Level(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = statica.New(cfg).
		Logger(logger).
		NotifyOnStop(func() {
			logger.Info().Msg("all connections are served, bye")
		}).
		Serve(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("server failed")
		return 1
	}

	return 0
}
