package survey

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/pkg/metrics"
	core "github.com/futig/custdev-bot/internal/survey"
	"github.com/futig/custdev-bot/internal/telegram/state"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// timestampLayout matches the results sheet's timestamp column.
const timestampLayout = "2006-01-02 15:04:05"

// Usecase orchestrates the survey flow: it loads session state, applies a
// pure state machine transition, persists the new state and, once the
// session is terminal, projects the answers into a sheet row. Every
// read-modify-write runs under the per-user lock of the state manager.
type Usecase struct {
	catalog  *core.Catalog
	states   *state.Manager
	appender RowAppender
	logger   *zap.Logger
}

// NewUsecase creates the survey usecase.
func NewUsecase(
	catalog *core.Catalog,
	states *state.Manager,
	appender RowAppender,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		catalog:  catalog,
		states:   states,
		appender: appender,
		logger:   logger,
	}
}

// Greeting returns the survey entry prompt text.
func (u *Usecase) Greeting() string {
	return u.catalog.Greeting()
}

// StartSurvey unconditionally resets the user's session and seeds a fresh
// one with metadata. Overwriting a running survey is not an error.
func (u *Usecase) StartSurvey(ctx context.Context, userID int64, fullName string) (*core.Session, error) {
	unlock := u.states.Lock(userID)
	defer unlock()

	meta := core.Metadata{
		Timestamp:  time.Now().Format(timestampLayout),
		Username:   fullName,
		UserID:     strconv.FormatInt(userID, 10),
		ResponseID: uuid.NewString(),
	}

	s := u.catalog.Start(meta)
	if err := u.states.SaveSurvey(ctx, userID, s); err != nil {
		return nil, fmt.Errorf("save started session: %w", err)
	}

	metrics.SurveysStarted.Inc()
	ctxzap.Info(ctx, "survey started",
		zap.Int64("user_id", userID),
		zap.String("response_id", meta.ResponseID),
	)

	return s, nil
}

// SubmitChoice applies a button selection to the user's session. On a
// rejected transition the stored state is untouched and the sentinel error
// describes the reason; the caller turns it into a user-facing notice.
func (u *Usecase) SubmitChoice(ctx context.Context, userID int64, questionKey string, optionIndex int) (*core.Session, error) {
	unlock := u.states.Lock(userID)
	defer unlock()

	s, err := u.states.GetSurvey(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := u.catalog.SubmitChoice(s, questionKey, optionIndex)
	if err != nil {
		metrics.AnswersRejected.WithLabelValues(rejectionReason(err)).Inc()
		ctxzap.Info(ctx, "choice rejected",
			zap.Int64("user_id", userID),
			zap.String("question", questionKey),
			zap.Int("option_index", optionIndex),
			zap.Error(err),
		)
		return nil, err
	}

	if err := u.states.SaveSurvey(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("save session after choice: %w", err)
	}

	metrics.AnswersAccepted.Inc()
	return next, nil
}

// SubmitText applies a free-text answer to the user's session, either for
// the pending follow-up or for the current main-line question.
func (u *Usecase) SubmitText(ctx context.Context, userID int64, raw string) (*core.Session, error) {
	unlock := u.states.Lock(userID)
	defer unlock()

	s, err := u.states.GetSurvey(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := u.catalog.SubmitText(s, raw)
	if err != nil {
		metrics.AnswersRejected.WithLabelValues(rejectionReason(err)).Inc()
		ctxzap.Info(ctx, "text answer rejected",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := u.states.SaveSurvey(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("save session after text answer: %w", err)
	}

	metrics.AnswersAccepted.Inc()
	return next, nil
}

// NextPrompt decides what to present for the given session state.
func (u *Usecase) NextPrompt(s *core.Session) core.Prompt {
	return u.catalog.NextPrompt(s)
}

// Finalize projects the answer set onto the fixed column order and makes a
// single best-effort append. The session is cleared regardless of the
// outcome: answers are never queued or retried.
func (u *Usecase) Finalize(ctx context.Context, userID int64, s *core.Session) bool {
	unlock := u.states.Lock(userID)
	defer unlock()

	row := u.catalog.Row(s.Answers)
	ok := u.appendRow(ctx, row)

	if err := u.states.DeleteSurvey(ctx, userID); err != nil {
		ctxzap.Error(ctx, "failed to clear finalized session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}

	if ok {
		metrics.SurveysCompleted.WithLabelValues("success").Inc()
		ctxzap.Info(ctx, "survey finalized",
			zap.Int64("user_id", userID),
			zap.String("response_id", s.Answers[core.KeyResponseID]),
		)
	} else {
		metrics.SurveysCompleted.WithLabelValues("failure").Inc()
	}

	return ok
}

// Cancel unconditionally clears the user's session; cancelling a session
// that does not exist succeeds.
func (u *Usecase) Cancel(ctx context.Context, userID int64) error {
	unlock := u.states.Lock(userID)
	defer unlock()

	if err := u.states.DeleteSurvey(ctx, userID); err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}

	metrics.SurveysCancelled.Inc()
	ctxzap.Info(ctx, "survey cancelled", zap.Int64("user_id", userID))
	return nil
}

// appendRow shields the caller from a panicking collaborator: any failure
// at the persistence boundary, error or panic, counts as false.
func (u *Usecase) appendRow(ctx context.Context, row []string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ctxzap.Error(ctx, "row appender panicked",
				zap.Any("panic", r),
			)
			ok = false
		}
	}()

	if err := u.appender.AppendRow(ctx, row); err != nil {
		ctxzap.Error(ctx, "failed to persist survey row", zap.Error(err))
		return false
	}

	return true
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, entity.ErrFollowupPending):
		return "followup_pending"
	case errors.Is(err, entity.ErrMalformedSelection):
		return "malformed_selection"
	case errors.Is(err, entity.ErrStaleQuestion):
		return "stale_question"
	case errors.Is(err, entity.ErrDuplicateAnswer):
		return "duplicate_answer"
	case errors.Is(err, entity.ErrWrongModality):
		return "wrong_modality"
	case errors.Is(err, entity.ErrSurveyComplete):
		return "survey_complete"
	default:
		return "other"
	}
}
