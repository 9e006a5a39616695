package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/custdev-bot/internal/config"
	"github.com/futig/custdev-bot/internal/telegram/handlers"
	"github.com/futig/custdev-bot/internal/telegram/keyboard"
	"github.com/futig/custdev-bot/internal/telegram/middleware"
	"github.com/futig/custdev-bot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	surveyUC    handlers.SurveyUsecase
	handlers    map[string]handlers.Handler
	keyboard    *keyboard.Builder
	sender      *handlers.MessageSender
	presenter   *handlers.Presenter
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	surveyUC handlers.SurveyUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	sender := handlers.NewMessageSender(api, cfg.SendAttempts, logger)
	kb := keyboard.NewBuilder()

	bot := &Bot{
		api:       api,
		cfg:       cfg,
		surveyUC:  surveyUC,
		keyboard:  kb,
		sender:    sender,
		presenter: handlers.NewPresenter(surveyUC, kb, sender),
		logger:    logger,
		handlers:  make(map[string]handlers.Handler),
		stopChan:  make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.updatesChan = updates

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			// Updates are handled concurrently; the state manager's
			// per-user lock keeps events for one session sequential.
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	handler, exists := b.handlers[handlers.HandlerStateSurvey]
	if !exists {
		ctxzap.Warn(ctx, "survey handler not registered")
		b.sender.Send(message.Chat.ID, render.ErrGeneric, nil)
		return
	}

	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		UserID:    message.From.ID,
		MessageID: message.MessageID,
		FullName:  userFullName(message.From),
		Text:      message.Text,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		b.sender.Send(message.Chat.ID, render.ErrGeneric, nil)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.handleStartCommand(ctx, message)
	case "cancel":
		b.handleCancelCommand(ctx, message)
	case "help":
		b.sender.Send(message.Chat.ID, render.MsgHelp, nil)
	case "about":
		b.sender.Send(message.Chat.ID, render.MsgAbout, nil)
	case "privacy":
		b.sender.Send(message.Chat.ID, render.MsgPrivacy, nil)
	default:
		b.sender.Send(message.Chat.ID, render.MsgUnknownCommand, nil)
	}
}

// handleStartCommand resets any prior session and presents the greeting
// followed by the first question.
func (b *Bot) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	s, err := b.surveyUC.StartSurvey(ctx, userID, userFullName(message.From))
	if err != nil {
		ctxzap.Error(ctx, "failed to start survey",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sender.Send(chatID, render.ErrGeneric, nil)
		return
	}

	b.sender.Send(chatID, b.surveyUC.Greeting(), nil)
	b.presenter.PresentNext(ctx, chatID, userID, s)
}

// handleCancelCommand clears the session unconditionally.
func (b *Bot) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := b.surveyUC.Cancel(ctx, message.From.ID); err != nil {
		ctxzap.Error(ctx, "failed to cancel survey",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID),
		)
		b.sender.Send(message.Chat.ID, render.ErrGeneric, nil)
		return
	}

	b.sender.Send(message.Chat.ID, render.MsgCancelled, nil)
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	handler, exists := b.handlers[handlers.HandlerStateCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		return
	}

	msg := &handlers.Message{
		ChatID:       query.Message.Chat.ID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		FullName:     userFullName(query.From),
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		b.sender.Send(msg.ChatID, render.ErrGeneric, nil)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	state := handler.GetState()

	if !handlers.IsValidState(state) {
		b.logger.Fatal("invalid handler state",
			zap.String("state", state),
		)
	}

	b.handlers[state] = handler
	b.logger.Info("handler registered",
		zap.String("state", state),
	)
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetSender returns the shared message sender (for handlers)
func (b *Bot) GetSender() *handlers.MessageSender {
	return b.sender
}

// GetPresenter returns the prompt presenter (for handlers)
func (b *Bot) GetPresenter() *handlers.Presenter {
	return b.presenter
}

// GetSurveyUsecase returns the survey usecase (for handlers)
func (b *Bot) GetSurveyUsecase() handlers.SurveyUsecase {
	return b.surveyUC
}

func userFullName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}
