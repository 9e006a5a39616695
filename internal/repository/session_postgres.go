package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/telegram/state"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionPostgres is the durable session store backing multi-process
// deployments: each interaction turn may be served by a different process,
// so the survey state lives in one row per user.
type SessionPostgres struct {
	db *pgxpool.Pool
}

// NewSessionPostgres creates a Postgres-backed session store.
func NewSessionPostgres(db *pgxpool.Pool) *SessionPostgres {
	return &SessionPostgres{db: db}
}

// Get retrieves the session record by user ID
func (r *SessionPostgres) Get(ctx context.Context, userID int64) (*state.SessionRecord, error) {
	const query = `
		SELECT user_id, state_data, created_at, updated_at
		FROM survey_sessions
		WHERE user_id = $1`

	record := &state.SessionRecord{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&record.UserID,
		&record.StateData,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("query survey session: %w", err)
	}

	return record, nil
}

// Set saves the session record
func (r *SessionPostgres) Set(ctx context.Context, record *state.SessionRecord) error {
	const query = `
		INSERT INTO survey_sessions (user_id, state_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET state_data = $2, updated_at = $4`

	_, err := r.db.Exec(ctx, query,
		record.UserID,
		record.StateData,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert survey session: %w", err)
	}

	return nil
}

// Delete removes the session record
func (r *SessionPostgres) Delete(ctx context.Context, userID int64) error {
	const query = `DELETE FROM survey_sessions WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete survey session: %w", err)
	}

	return nil
}
