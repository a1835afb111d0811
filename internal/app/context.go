package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/match-service/internal/auth"
	"github.com/oggyb/match-service/internal/cache"
	"github.com/oggyb/match-service/internal/config"
	"github.com/oggyb/match-service/internal/conversation"
	"github.com/oggyb/match-service/internal/matching"
	"github.com/oggyb/match-service/internal/repository"
	"github.com/oggyb/match-service/internal/utils/media"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	Tokens     *auth.TokenIssuer
	Media      media.Resolver
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Tokens:     auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Media:      media.NewResolver(cfg.Media.BaseURL),
	}
}

// Stores returns the gorm-backed stores of the matching core.
func (a *AppContext) Stores() matching.Stores {
	return matching.NewStores(a.DB)
}

// Engine wires the matching engine with the redis pair lock and counters.
func (a *AppContext) Engine() *matching.Engine {
	return matching.NewEngine(a.Stores(), a.RedisCache, a.RedisCache, a.Logger)
}

// Selector wires the discovery selector.
func (a *AppContext) Selector() *matching.Selector {
	return matching.NewSelector(a.Stores(), a.RedisCache, a.Media, matching.Limits{
		Default: a.Config.Matching.DiscoveryLimit,
		Max:     a.Config.Matching.DiscoveryMaxLimit,
	}, a.Logger)
}

// Conversation wires the message service.
func (a *AppContext) Conversation() *conversation.Service {
	return conversation.NewService(
		repository.NewMessageRepository(a.DB),
		repository.NewMatchRepository(a.DB),
		a.Logger,
	)
}
