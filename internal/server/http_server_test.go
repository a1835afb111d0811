package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/match-service/internal/config"
	"github.com/oggyb/match-service/internal/logger"
	"github.com/oggyb/match-service/internal/server"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.ENV = "development"
	cfg.Media.Dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Media.Dir, "a.txt"), []byte("photo"), 0o600))

	healthy := true
	router := server.NewRouter(cfg, logger.Discard(), map[string]server.Pinger{
		"db": server.PingFunc(func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("down")
		}),
	})

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code, method)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/a.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "photo", rec.Body.String())

	healthy = false
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
