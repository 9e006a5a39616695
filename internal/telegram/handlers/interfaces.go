package handlers

import (
	"context"

	"github.com/futig/custdev-bot/internal/survey"
)

// SurveyUsecase defines the survey flow operations used by the Telegram
// handlers. State transitions are rejected with the sentinel errors from
// internal/entity; a rejection leaves the stored session unchanged.
type SurveyUsecase interface {
	Greeting() string
	StartSurvey(ctx context.Context, userID int64, fullName string) (*survey.Session, error)
	SubmitChoice(ctx context.Context, userID int64, questionKey string, optionIndex int) (*survey.Session, error)
	SubmitText(ctx context.Context, userID int64, raw string) (*survey.Session, error)
	NextPrompt(s *survey.Session) survey.Prompt
	Finalize(ctx context.Context, userID int64, s *survey.Session) bool
	Cancel(ctx context.Context, userID int64) error
}
