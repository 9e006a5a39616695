package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/custdev-bot/internal/repository"
	"github.com/futig/custdev-bot/internal/telegram/state"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type brokenStorage struct{}

func (brokenStorage) Get(context.Context, int64) (*state.SessionRecord, error) {
	return nil, errors.New("connection refused")
}
func (brokenStorage) Set(context.Context, *state.SessionRecord) error { return nil }
func (brokenStorage) Delete(context.Context, int64) error             { return nil }

func TestHealthz(t *testing.T) {
	router := SetupRouter(repository.NewSessionCache(time.Hour), zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyzWithWorkingStorage(t *testing.T) {
	router := SetupRouter(repository.NewSessionCache(time.Hour), zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestReadyzWithBrokenStorage(t *testing.T) {
	router := SetupRouter(brokenStorage{}, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := SetupRouter(repository.NewSessionCache(time.Hour), zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}
