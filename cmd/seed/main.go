package main

import (
	"context"
	"os"
	"time"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/cache"
	"github.com/oggyb/match-service/internal/config"
	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/logger"
	"github.com/oggyb/match-service/internal/seed"
)

func main() {
	// Load configuration
	cfg := config.New()
	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	// likes go through the engine, which needs the redis pair lock
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	appCtx := app.New(cfg, database, redisCache, log)
	summary, err := seed.Run(context.Background(), database, appCtx.Engine(), log, time.Now().UnixNano())
	if err != nil {
		log.Error("failed to seed", "err", err)
		os.Exit(1)
	}

	log.Info("seeding completed", "users", summary.Users, "likes", summary.Likes, "matches", summary.Matches)
}
