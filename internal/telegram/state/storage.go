package state

import (
	"context"
	"encoding/json"
	"time"
)

// SessionRecord is the stored per-user survey state. StateData carries the
// JSON-marshalled survey session; the store treats it as opaque.
type SessionRecord struct {
	UserID    int64           `json:"user_id"`
	StateData json.RawMessage `json:"state_data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Storage defines the interface for survey session persistence. Get returns
// entity.ErrSessionNotFound when the user has no active session; Delete of
// a missing session is not an error.
type Storage interface {
	// Get retrieves the session record by user ID
	Get(ctx context.Context, userID int64) (*SessionRecord, error)

	// Set saves the session record
	Set(ctx context.Context, record *SessionRecord) error

	// Delete removes the session record
	Delete(ctx context.Context, userID int64) error
}
