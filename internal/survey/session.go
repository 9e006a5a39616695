package survey

import "time"

// Metadata is the fixed per-session data seeded into answers at start.
type Metadata struct {
	Timestamp  string
	Username   string
	UserID     string
	ResponseID string
}

// Session is the mutable per-user survey aggregate. Cursor indexes the base
// sequence; when it equals the sequence length and no follow-up is pending
// the session is terminal. Answers maps question keys (and metadata keys)
// to recorded values; a key is written at most once.
type Session struct {
	Cursor          int               `json:"cursor"`
	PendingFollowup string            `json:"pending_followup,omitempty"`
	Answers         map[string]string `json:"answers"`
	StartedAt       time.Time         `json:"started_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// clone returns a deep copy so rejected transitions never leak partial
// writes into the caller's session.
func (s *Session) clone() *Session {
	answers := make(map[string]string, len(s.Answers)+1)
	for k, v := range s.Answers {
		answers[k] = v
	}
	return &Session{
		Cursor:          s.Cursor,
		PendingFollowup: s.PendingFollowup,
		Answers:         answers,
		StartedAt:       s.StartedAt,
		UpdatedAt:       time.Now(),
	}
}

// Answered reports whether key already has a recorded answer.
func (s *Session) Answered(key string) bool {
	_, ok := s.Answers[key]
	return ok
}
