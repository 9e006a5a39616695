package handlers

import (
	"context"

	"github.com/futig/custdev-bot/internal/survey"
	"github.com/futig/custdev-bot/internal/telegram/keyboard"
	"github.com/futig/custdev-bot/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Presenter emits the next prompt for a session. It is the one downstream
// step run after every accepted transition: the state machine decides what
// comes next, the presenter observes that decision and produces output.
type Presenter struct {
	surveyUC SurveyUsecase
	keyboard *keyboard.Builder
	sender   *MessageSender
}

// NewPresenter creates a prompt presenter.
func NewPresenter(surveyUC SurveyUsecase, kb *keyboard.Builder, sender *MessageSender) *Presenter {
	return &Presenter{
		surveyUC: surveyUC,
		keyboard: kb,
		sender:   sender,
	}
}

// PresentNext reads the session state and emits the follow-up prompt, the
// next main-line question or, when the session is terminal, runs
// finalization and reports its outcome.
func (p *Presenter) PresentNext(ctx context.Context, chatID, userID int64, s *survey.Session) {
	prompt := p.surveyUC.NextPrompt(s)

	switch prompt.Kind {
	case survey.PromptFollowup:
		p.sender.Send(chatID, render.RenderFollowup(prompt.Question.Text), nil)
		p.sender.Send(chatID, render.MsgTextHint, nil)

	case survey.PromptFinished:
		if p.surveyUC.Finalize(ctx, userID, s) {
			p.sender.Send(chatID, render.MsgFinalizeSuccess, nil)
		} else {
			p.sender.Send(chatID, render.MsgFinalizeFailure, nil)
		}

	case survey.PromptQuestion:
		text := render.RenderQuestion(prompt.Position, prompt.Total, prompt.Question.Text)
		if prompt.Question.Modality == survey.ModalityChoice {
			p.sender.Send(chatID, text, p.keyboard.OptionsKeyboard(prompt.Question))
		} else {
			p.sender.Send(chatID, text, nil)
			p.sender.Send(chatID, render.MsgTextHint, nil)
		}

	default:
		ctxzap.Warn(ctx, "unknown prompt kind",
			zap.String("kind", string(prompt.Kind)),
			zap.Int64("user_id", userID),
		)
	}
}
