package repository

import (
	"context"
	"testing"
	"time"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/telegram/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewSessionCache(time.Hour)

	record := &state.SessionRecord{
		UserID:    42,
		StateData: []byte(`{"cursor":1}`),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	require.NoError(t, cache.Set(ctx, record))

	got, err := cache.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestSessionCacheGetMissing(t *testing.T) {
	cache := NewSessionCache(time.Hour)

	_, err := cache.Get(context.Background(), 404)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSessionCacheSetOverwrites(t *testing.T) {
	ctx := context.Background()
	cache := NewSessionCache(time.Hour)

	require.NoError(t, cache.Set(ctx, &state.SessionRecord{UserID: 1, StateData: []byte(`{"cursor":0}`)}))
	require.NoError(t, cache.Set(ctx, &state.SessionRecord{UserID: 1, StateData: []byte(`{"cursor":2}`)}))

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cursor":2}`, string(got.StateData))
}

func TestSessionCacheDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewSessionCache(time.Hour)

	require.NoError(t, cache.Set(ctx, &state.SessionRecord{UserID: 7, StateData: []byte(`{}`)}))
	require.NoError(t, cache.Delete(ctx, 7))

	_, err := cache.Get(ctx, 7)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)

	// Deleting an absent record is not an error.
	assert.NoError(t, cache.Delete(ctx, 7))
}

func TestSessionCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewSessionCache(10 * time.Millisecond)

	require.NoError(t, cache.Set(ctx, &state.SessionRecord{UserID: 2, StateData: []byte(`{}`)}))
	time.Sleep(30 * time.Millisecond)

	_, err := cache.Get(ctx, 2)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}
