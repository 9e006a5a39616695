package handlers

import (
	"context"
	"errors"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SurveyHandler handles free-text messages during an active survey: answers
// to free_text main-line questions and to injected follow-ups.
type SurveyHandler struct {
	BaseHandler
	surveyUC  SurveyUsecase
	presenter *Presenter
	logger    *zap.Logger
}

// NewSurveyHandler creates the free-text answer handler.
func NewSurveyHandler(
	bot *tgbotapi.BotAPI,
	surveyUC SurveyUsecase,
	presenter *Presenter,
	sender *MessageSender,
	logger *zap.Logger,
) *SurveyHandler {
	return &SurveyHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateSurvey,
			messageSender: sender,
		},
		surveyUC:  surveyUC,
		presenter: presenter,
		logger:    logger,
	}
}

// Handle processes a free-text answer submission
func (h *SurveyHandler) Handle(ctx context.Context, msg *Message) error {
	if msg.Text == "" {
		h.sendMessage(msg.ChatID, render.MsgTextHint, nil)
		return nil
	}

	s, err := h.surveyUC.SubmitText(ctx, msg.UserID, msg.Text)
	if err != nil {
		h.sendMessage(msg.ChatID, textRejectionNotice(err), nil)
		return nil
	}

	ctxzap.Info(ctx, "text answer recorded",
		zap.Int64("user_id", msg.UserID),
		zap.Int("cursor", s.Cursor),
	)

	h.presenter.PresentNext(ctx, msg.ChatID, msg.UserID, s)
	return nil
}

// textRejectionNotice maps a rejected transition to the user-facing reply.
// All rejections are non-fatal and leave the survey where it was.
func textRejectionNotice(err error) string {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return render.MsgNoSession
	case errors.Is(err, entity.ErrDuplicateAnswer):
		return render.MsgDuplicateAnswer
	case errors.Is(err, entity.ErrSurveyComplete):
		return render.MsgSurveyComplete
	case errors.Is(err, entity.ErrWrongModality):
		return render.MsgUseButtons
	default:
		return render.ErrGeneric
	}
}
