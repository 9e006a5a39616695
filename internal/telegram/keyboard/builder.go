package keyboard

import (
	"github.com/futig/custdev-bot/internal/survey"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// OptionsKeyboard creates one button per option of a choice question. The
// callback data carries "key:index" so the selection references an option
// positionally instead of re-transmitting its label.
func (b *Builder) OptionsKeyboard(q survey.Question) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for idx, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, FormatCallback(q.Key, idx)),
		))
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
