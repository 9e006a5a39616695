package handlers

import (
	retry "github.com/avast/retry-go/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MessageSender provides centralized message sending with a short retry for
// transient Telegram API failures. Survey state is already committed by the
// time a prompt is sent, so re-sending is safe.
type MessageSender struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	attempts uint
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(bot *tgbotapi.BotAPI, attempts uint, logger *zap.Logger) *MessageSender {
	if attempts == 0 {
		attempts = 1
	}
	return &MessageSender{
		bot:      bot,
		logger:   logger,
		attempts: attempts,
	}
}

// Send sends a message to the specified chat
func (s *MessageSender) Send(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	err := retry.Do(
		func() error {
			_, err := s.bot.Send(msg)
			return err
		},
		retry.Attempts(s.attempts),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}

	return nil
}
