package survey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/repository"
	core "github.com/futig/custdev-bot/internal/survey"
	"github.com/futig/custdev-bot/internal/telegram/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAppender struct {
	rows     [][]string
	err      error
	panicVal any
}

func (f *fakeAppender) AppendRow(_ context.Context, row []string) error {
	if f.panicVal != nil {
		panic(f.panicVal)
	}
	f.rows = append(f.rows, row)
	return f.err
}

func newTestUsecase(t *testing.T, appender RowAppender) *Usecase {
	t.Helper()

	def := core.Definition{
		Greeting: "добро пожаловать",
		Questions: []core.Question{
			{Key: "q1", Text: "Выберите", Modality: core.ModalityChoice, Options: []string{"A", "B"}},
			{Key: "q2", Text: "Расскажите", Modality: core.ModalityFreeText},
			{Key: "q1_detail", Text: "Уточните", Modality: core.ModalityFreeText},
		},
		Sequence: []string{"q1", "q2"},
		Rules: []core.Rule{
			{TriggerKey: "q1", TriggerValue: "B", FollowupKey: "q1_detail"},
		},
		ColumnOrder: []string{
			"timestamp", "username", "user_id", "response_id",
			"q1", "q1_detail", "q2",
		},
	}

	catalog, err := core.NewCatalog(def)
	require.NoError(t, err)

	states := state.NewManager(repository.NewSessionCache(time.Hour))
	return NewUsecase(catalog, states, appender, zap.NewNop())
}

func TestFullFlowAppendsOrderedRow(t *testing.T) {
	ctx := context.Background()
	appender := &fakeAppender{}
	uc := newTestUsecase(t, appender)

	s, err := uc.StartSurvey(ctx, 42, "Иван Иванов")
	require.NoError(t, err)
	assert.Equal(t, "Иван Иванов", s.Answers[core.KeyUsername])
	assert.Equal(t, "42", s.Answers[core.KeyUserID])
	assert.NotEmpty(t, s.Answers[core.KeyResponseID])

	s, err = uc.SubmitChoice(ctx, 42, "q1", 0)
	require.NoError(t, err)
	s, err = uc.SubmitText(ctx, 42, "всё отлично")
	require.NoError(t, err)
	require.Equal(t, core.PromptFinished, uc.NextPrompt(s).Kind)

	ok := uc.Finalize(ctx, 42, s)
	assert.True(t, ok)

	require.Len(t, appender.rows, 1)
	row := appender.rows[0]
	require.Len(t, row, 7)
	assert.Equal(t, "Иван Иванов", row[1])
	assert.Equal(t, "42", row[2])
	assert.Equal(t, s.Answers[core.KeyResponseID], row[3])
	assert.Equal(t, "A", row[4])
	assert.Equal(t, "", row[5], "untriggered follow-up column stays empty")
	assert.Equal(t, "всё отлично", row[6])

	_, err = uc.SubmitText(ctx, 42, "late")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestFollowupAnswerLandsInItsColumn(t *testing.T) {
	ctx := context.Background()
	appender := &fakeAppender{}
	uc := newTestUsecase(t, appender)

	_, err := uc.StartSurvey(ctx, 7, "user")
	require.NoError(t, err)

	s, err := uc.SubmitChoice(ctx, 7, "q1", 1)
	require.NoError(t, err)
	require.Equal(t, "q1_detail", s.PendingFollowup)

	_, err = uc.SubmitText(ctx, 7, "детали")
	require.NoError(t, err)
	s, err = uc.SubmitText(ctx, 7, "текст")
	require.NoError(t, err)

	require.True(t, uc.Finalize(ctx, 7, s))
	require.Len(t, appender.rows, 1)
	assert.Equal(t, "B", appender.rows[0][4])
	assert.Equal(t, "детали", appender.rows[0][5])
	assert.Equal(t, "текст", appender.rows[0][6])
}

func TestFinalizeClearsSessionOnAppendFailure(t *testing.T) {
	ctx := context.Background()
	appender := &fakeAppender{err: errors.New("sheets unavailable")}
	uc := newTestUsecase(t, appender)

	_, err := uc.StartSurvey(ctx, 9, "user")
	require.NoError(t, err)
	_, err = uc.SubmitChoice(ctx, 9, "q1", 0)
	require.NoError(t, err)
	s, err := uc.SubmitText(ctx, 9, "answer")
	require.NoError(t, err)

	ok := uc.Finalize(ctx, 9, s)
	assert.False(t, ok)

	// No queue, no retry: the session is gone either way.
	_, err = uc.SubmitText(ctx, 9, "again")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestFinalizeSurvivesAppenderPanic(t *testing.T) {
	ctx := context.Background()
	appender := &fakeAppender{panicVal: "boom"}
	uc := newTestUsecase(t, appender)

	_, err := uc.StartSurvey(ctx, 11, "user")
	require.NoError(t, err)
	_, err = uc.SubmitChoice(ctx, 11, "q1", 0)
	require.NoError(t, err)
	s, err := uc.SubmitText(ctx, 11, "answer")
	require.NoError(t, err)

	assert.False(t, uc.Finalize(ctx, 11, s))
}

func TestStartSurveyResetsExistingSession(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(t, &fakeAppender{})

	_, err := uc.StartSurvey(ctx, 5, "user")
	require.NoError(t, err)
	_, err = uc.SubmitChoice(ctx, 5, "q1", 0)
	require.NoError(t, err)

	s, err := uc.StartSurvey(ctx, 5, "user")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Cursor)
	assert.NotContains(t, s.Answers, "q1", "restart must not carry answers over")

	// The fresh session accepts q1 again.
	_, err = uc.SubmitChoice(ctx, 5, "q1", 1)
	require.NoError(t, err)
}

func TestCancelClearsSession(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(t, &fakeAppender{})

	_, err := uc.StartSurvey(ctx, 3, "user")
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(ctx, 3))

	_, err = uc.SubmitText(ctx, 3, "answer")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)

	// Cancelling with nothing to cancel is fine.
	assert.NoError(t, uc.Cancel(ctx, 3))
}

func TestSubmitWithoutSession(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(t, &fakeAppender{})

	_, err := uc.SubmitChoice(ctx, 99, "q1", 0)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)

	_, err = uc.SubmitText(ctx, 99, "hello")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestRejectedSubmissionKeepsStoredState(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase(t, &fakeAppender{})

	_, err := uc.StartSurvey(ctx, 21, "user")
	require.NoError(t, err)

	_, err = uc.SubmitChoice(ctx, 21, "q1", 99)
	require.ErrorIs(t, err, entity.ErrMalformedSelection)

	// The stored session is still at q1 and accepts a valid selection.
	s, err := uc.SubmitChoice(ctx, 21, "q1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cursor)
}

func TestGreeting(t *testing.T) {
	uc := newTestUsecase(t, &fakeAppender{})
	assert.Equal(t, "добро пожаловать", uc.Greeting())
}
