package telegram

import (
	"context"
	"fmt"

	"github.com/futig/custdev-bot/internal/config"
	"github.com/futig/custdev-bot/internal/telegram/bot"
	"github.com/futig/custdev-bot/internal/telegram/handlers"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	surveyUC handlers.SurveyUsecase,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, surveyUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	api := b.GetAPI()
	surveyUC := b.GetSurveyUsecase()
	presenter := b.GetPresenter()
	sender := b.GetSender()

	// Callback handler (answers to choice questions)
	callbackHandler := handlers.NewCallbackHandler(api, surveyUC, presenter, sender, logger)
	b.RegisterHandler(callbackHandler)

	// Survey handler (free-text answers, including follow-ups)
	surveyHandler := handlers.NewSurveyHandler(api, surveyUC, presenter, sender, logger)
	b.RegisterHandler(surveyHandler)

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 2),
	)
}
