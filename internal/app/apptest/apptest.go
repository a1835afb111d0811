// Package apptest builds an AppContext on SQLite and miniredis for service tests.
package apptest

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/match-service/internal/app"
	"github.com/oggyb/match-service/internal/auth"
	"github.com/oggyb/match-service/internal/cache"
	"github.com/oggyb/match-service/internal/config"
	"github.com/oggyb/match-service/internal/db"
	"github.com/oggyb/match-service/internal/db/dbtest"
	"github.com/oggyb/match-service/internal/logger"
	"github.com/oggyb/match-service/internal/repository"
)

// New returns an AppContext with its own isolated DB and Redis.
func New(t *testing.T) *app.AppContext {
	t.Helper()

	dbase := dbtest.Open(t)
	mr := miniredis.RunT(t)

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Media.BaseURL = "http://media.test"
	cfg.Auth.JWTSecret = "test-secret-test-secret-test-secret"

	redisCache := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = redisCache.Close() })

	return app.New(cfg, dbase, redisCache, logger.Discard())
}

// User inserts a profile with password "password".
func User(t *testing.T, appCtx *app.AppContext, name string, gender db.Gender, pref db.Preference) *db.User {
	t.Helper()
	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	u := &db.User{
		Email:        name + "@test.io",
		Name:         name,
		PasswordHash: hash,
		BirthDate:    time.Date(1993, 8, 21, 0, 0, 0, 0, time.UTC),
		Gender:       gender,
		Preference:   pref,
	}
	require.NoError(t, repository.NewUserRepository(appCtx.DB).Create(context.Background(), u))
	return u
}

// As returns a context authenticated as userID.
func As(userID string) context.Context {
	return auth.WithCaller(context.Background(), userID)
}
