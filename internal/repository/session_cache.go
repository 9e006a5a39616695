package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/telegram/state"
	gocache "github.com/patrickmn/go-cache"
)

// SessionCache is the in-memory session store. Sessions expire after the
// configured TTL so abandoned surveys do not accumulate. go-cache is safe
// for concurrent use; per-user write ordering is the state manager's job.
type SessionCache struct {
	cache *gocache.Cache
}

// NewSessionCache creates an in-memory session store with the given TTL.
func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get retrieves the session record by user ID
func (r *SessionCache) Get(_ context.Context, userID int64) (*state.SessionRecord, error) {
	value, found := r.cache.Get(cacheKey(userID))
	if !found {
		return nil, entity.ErrSessionNotFound
	}

	return value.(*state.SessionRecord), nil
}

// Set saves the session record
func (r *SessionCache) Set(_ context.Context, record *state.SessionRecord) error {
	r.cache.SetDefault(cacheKey(record.UserID), record)
	return nil
}

// Delete removes the session record
func (r *SessionCache) Delete(_ context.Context, userID int64) error {
	r.cache.Delete(cacheKey(userID))
	return nil
}

func cacheKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
