package handlers

import (
	"context"
	"errors"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/telegram/keyboard"
	"github.com/futig/custdev-bot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles button clicks: every callback is an answer
// selection in "key:index" form.
type CallbackHandler struct {
	BaseHandler
	bot       *tgbotapi.BotAPI
	surveyUC  SurveyUsecase
	presenter *Presenter
	logger    *zap.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(
	bot *tgbotapi.BotAPI,
	surveyUC SurveyUsecase,
	presenter *Presenter,
	sender *MessageSender,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: sender,
		},
		bot:       bot,
		surveyUC:  surveyUC,
		presenter: presenter,
		logger:    logger,
	}
}

// Handle processes an answer selection
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		ctxzap.Warn(ctx, "malformed callback data",
			zap.Error(err),
			zap.String("data", msg.CallbackData),
		)
		h.answerCallback(msg.CallbackID, render.MsgMalformed, true)
		return nil
	}

	s, err := h.surveyUC.SubmitChoice(ctx, msg.UserID, data.QuestionKey, data.OptionIndex)
	if err != nil {
		h.answerCallback(msg.CallbackID, choiceRejectionNotice(err), true)
		return nil
	}

	ctxzap.Info(ctx, "choice recorded",
		zap.Int64("user_id", msg.UserID),
		zap.String("question", data.QuestionKey),
		zap.Int("cursor", s.Cursor),
	)

	// Plain ack so Telegram stops the button spinner.
	h.answerCallback(msg.CallbackID, "", false)

	h.presenter.PresentNext(ctx, msg.ChatID, msg.UserID, s)
	return nil
}

// answerCallback answers a callback query; alerts pop a modal for the user.
func (h *CallbackHandler) answerCallback(callbackID, text string, alert bool) {
	callback := tgbotapi.NewCallback(callbackID, text)
	callback.ShowAlert = alert
	if _, err := h.bot.Request(callback); err != nil {
		h.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// choiceRejectionNotice maps a rejected selection to its callback alert.
func choiceRejectionNotice(err error) string {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return render.MsgNoSession
	case errors.Is(err, entity.ErrFollowupPending):
		return render.MsgFollowupExpected
	case errors.Is(err, entity.ErrMalformedSelection):
		return render.MsgMalformed
	case errors.Is(err, entity.ErrStaleQuestion):
		return render.MsgStaleQuestion
	case errors.Is(err, entity.ErrDuplicateAnswer):
		return render.MsgDuplicateAnswer
	case errors.Is(err, entity.ErrSurveyComplete):
		return render.MsgSurveyComplete
	default:
		return render.ErrGeneric
	}
}
