package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"tracker-svr/internal/commandapi"
	"tracker-svr/internal/config"
	"tracker-svr/internal/dispatcher"
	"tracker-svr/internal/link"
	"tracker-svr/internal/observability"
	"tracker-svr/internal/pipeline"
	"tracker-svr/internal/repository"
	"tracker-svr/internal/resolver"
	"tracker-svr/internal/server"
	"tracker-svr/internal/store"
	"tracker-svr/internal/utilities"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdle)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("database unreachable", "err", err)
		os.Exit(1)
	}
	logger.Info("database connected", "host", cfg.Database.Host, "db", cfg.Database.Database)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	hotState := store.New(rdb, logger)
	if err := hotState.Ping(ctx); err != nil {
		// Redis is a projection, not a dependency; start without it.
		logger.Warn("redis unreachable, hot-state mirror degraded", "err", err)
	}

	identities := repository.NewPostgresIdentitiesRepo(db)
	positions := repository.NewPostgresPositionsRepo(db)
	commands := repository.NewPostgresCommandsRepo(db)

	uplink := link.New(cfg.UplinkAddr, logger)
	rawLog := utilities.NewRawFrameLogger(cfg.RawLogDir)

	res := resolver.New(identities, logger)
	pipe := pipeline.New(positions, hotState, uplink, logger)

	registry := server.NewRegistry()
	disp := dispatcher.New(commands, registry, hotState, cfg.Dispatcher, logger)
	queue := dispatcher.NewQueue(commands, identities, disp, cfg.DefaultMaxRetries, cfg.DefaultCommandTTL, logger)

	tcpServer := server.New(cfg.TCPAddr, res, pipe, registry, hotState, uplink, rawLog, disp, logger)
	api := commandapi.New(queue, res, logger)

	disp.Run(ctx)

	errs := make(chan error, 3)
	go func() {
		if err := observability.StartMetricsServer(cfg.MetricsAddr); err != nil {
			errs <- err
		}
	}()
	go func() {
		if err := api.Serve(ctx, cfg.GRPCAddr); err != nil {
			errs <- err
		}
	}()
	go func() {
		if err := tcpServer.ListenAndServe(ctx); err != nil {
			errs <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errs:
		logger.Error("server failed", "err", err)
		stop()
	}

	// Give the listeners a moment to unwind before the deferred closes run.
	time.Sleep(200 * time.Millisecond)
	logger.Info("shutdown complete")
}
