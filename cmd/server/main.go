package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/cache"
	"github.com/oggyb/match-service/internal/config"
	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/logger"
	"github.com/oggyb/match-service/internal/seed"
	"github.com/oggyb/match-service/internal/server"
	"github.com/oggyb/match-service/internal/service/account"
	"github.com/oggyb/match-service/internal/service/chat"
	"github.com/oggyb/match-service/internal/service/explore"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}
	sqlDB, err := database.DB()
	if err != nil {
		log.Error("failed to get sql.DB", "err", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	// Inject logger into app context
	appCtx := app.New(cfg, database, redisCache, log)

	if cfg.IsDevelopment() {
		if _, err := seed.Run(context.Background(), database, appCtx.Engine(), log, time.Now().UnixNano()); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	grpcServer := server.NewGRPCServer(cfg, appCtx.Tokens, log,
		account.NewRegistrar(appCtx),
		explore.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
	)
	httpServer := server.NewHTTPServer(cfg, server.NewRouter(cfg, log, map[string]server.Pinger{
		"db":    server.PingFunc(sqlDB.PingContext),
		"redis": redisCache,
	}), log)

	errCh := make(chan error, 2)
	go func() { errCh <- grpcServer.Start() }()
	go func() { errCh <- httpServer.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", "err", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Warn("http shutdown failed", "err", err)
	}
	grpcServer.Stop(ctx)
	log.Info("bye")
}
