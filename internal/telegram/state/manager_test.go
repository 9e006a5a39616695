package state_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/repository"
	"github.com/futig/custdev-bot/internal/survey"
	"github.com/futig/custdev-bot/internal/telegram/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *state.Manager {
	return state.NewManager(repository.NewSessionCache(time.Hour))
}

func TestSaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	original := &survey.Session{
		Cursor:          3,
		PendingFollowup: "menu_wishes",
		Answers: map[string]string{
			"timestamp": "2025-01-01 12:00:00",
			"gender":    "👨 Мужской",
		},
		StartedAt: time.Now().Truncate(time.Second),
		UpdatedAt: time.Now().Truncate(time.Second),
	}

	require.NoError(t, m.SaveSurvey(ctx, 42, original))

	got, err := m.GetSurvey(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, original.Cursor, got.Cursor)
	assert.Equal(t, original.PendingFollowup, got.PendingFollowup)
	assert.Equal(t, original.Answers, got.Answers)
}

func TestGetMissingSession(t *testing.T) {
	m := newManager()

	_, err := m.GetSurvey(context.Background(), 404)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestDeleteSurvey(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	require.NoError(t, m.SaveSurvey(ctx, 7, &survey.Session{Answers: map[string]string{}}))
	require.NoError(t, m.DeleteSurvey(ctx, 7))

	_, err := m.GetSurvey(ctx, 7)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)

	// Deleting again is not an error.
	assert.NoError(t, m.DeleteSurvey(ctx, 7))
}

func TestLockSerializesSameUser(t *testing.T) {
	m := newManager()

	var (
		counter int
		wg      sync.WaitGroup
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock(1)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLockAllowsDifferentUsersConcurrently(t *testing.T) {
	m := newManager()

	unlockA := m.Lock(1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := m.Lock(2)
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for a different user must not block")
	}
}
