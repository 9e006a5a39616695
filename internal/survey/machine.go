package survey

import (
	"time"

	"github.com/futig/custdev-bot/internal/entity"
)

// PromptKind classifies what the caller should present next.
type PromptKind string

const (
	// PromptQuestion presents the main-line question at the cursor.
	PromptQuestion PromptKind = "question"
	// PromptFollowup presents the pending free-text follow-up.
	PromptFollowup PromptKind = "followup"
	// PromptFinished means the survey is terminal and should be finalized.
	PromptFinished PromptKind = "finished"
)

// Prompt describes the next interaction. Position and Total form the
// "question N of M" progress indicator for main-line questions.
type Prompt struct {
	Kind     PromptKind
	Question Question
	Position int
	Total    int
}

// Start creates a fresh session seeded with metadata. Any prior session for
// the same user is discarded by the caller; starting is never an error.
func (c *Catalog) Start(meta Metadata) *Session {
	now := time.Now()
	return &Session{
		Cursor: 0,
		Answers: map[string]string{
			KeyTimestamp:  meta.Timestamp,
			KeyUsername:   meta.Username,
			KeyUserID:     meta.UserID,
			KeyResponseID: meta.ResponseID,
		},
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Terminal reports whether the session has exhausted the main line with no
// pending follow-up.
func (c *Catalog) Terminal(s *Session) bool {
	return s.Cursor >= len(c.sequence) && s.PendingFollowup == ""
}

// SubmitChoice records a button selection for the current main-line
// question. Rejections return the input session untouched together with a
// sentinel error; on success a new session value is returned.
func (c *Catalog) SubmitChoice(s *Session, questionKey string, optionIndex int) (*Session, error) {
	if s.PendingFollowup != "" {
		return s, entity.ErrFollowupPending
	}

	q, ok := c.questions[questionKey]
	if !ok || q.Modality != ModalityChoice {
		return s, entity.ErrMalformedSelection
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return s, entity.ErrMalformedSelection
	}

	if s.Cursor >= len(c.sequence) {
		return s, entity.ErrSurveyComplete
	}
	// Buttons from an old prompt can arrive long after the question moved
	// on; only the question at the cursor is answerable.
	if c.sequence[s.Cursor] != questionKey {
		return s, entity.ErrStaleQuestion
	}
	if s.Answered(questionKey) {
		return s, entity.ErrDuplicateAnswer
	}

	next := s.clone()
	value := q.Options[optionIndex]
	next.Answers[questionKey] = value

	if rule, fired := c.ruleFor(questionKey, value); fired && !next.Answered(rule.FollowupKey) {
		// Hold the cursor; the follow-up completes this slot.
		next.PendingFollowup = rule.FollowupKey
		return next, nil
	}

	next.Cursor++
	return next, nil
}

// SubmitText records a free-text answer, either for the pending follow-up
// or for the main-line question at the cursor.
func (c *Catalog) SubmitText(s *Session, raw string) (*Session, error) {
	if s.PendingFollowup != "" {
		if s.Answered(s.PendingFollowup) {
			return s, entity.ErrDuplicateAnswer
		}
		next := s.clone()
		next.Answers[next.PendingFollowup] = raw
		next.PendingFollowup = ""
		// The follow-up completes the main-line question that triggered it.
		next.Cursor++
		return next, nil
	}

	if s.Cursor >= len(c.sequence) {
		return s, entity.ErrSurveyComplete
	}

	key := c.sequence[s.Cursor]
	if c.questions[key].Modality != ModalityFreeText {
		return s, entity.ErrWrongModality
	}
	if s.Answered(key) {
		return s, entity.ErrDuplicateAnswer
	}

	next := s.clone()
	next.Answers[key] = raw
	next.Cursor++
	return next, nil
}

// NextPrompt is a pure read of the session: it decides what to present
// without mutating anything. Emission is the caller's responsibility.
func (c *Catalog) NextPrompt(s *Session) Prompt {
	if s.PendingFollowup != "" {
		return Prompt{
			Kind:     PromptFollowup,
			Question: c.questions[s.PendingFollowup],
		}
	}
	if s.Cursor >= len(c.sequence) {
		return Prompt{Kind: PromptFinished}
	}
	return Prompt{
		Kind:     PromptQuestion,
		Question: c.questions[c.sequence[s.Cursor]],
		Position: s.Cursor + 1,
		Total:    len(c.sequence),
	}
}

// Row projects the answer set onto the fixed column order, substituting an
// empty value for columns the session never touched (e.g. follow-ups whose
// rule did not fire).
func (c *Catalog) Row(answers map[string]string) []string {
	row := make([]string, len(c.columnOrder))
	for i, key := range c.columnOrder {
		row[i] = answers[key]
	}
	return row
}
