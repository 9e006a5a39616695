package keyboard

import (
	"testing"

	"github.com/futig/custdev-bot/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsKeyboard(t *testing.T) {
	b := NewBuilder()

	q := survey.Question{
		Key:      "gender",
		Text:     "Укажите, пожалуйста, ваш пол:",
		Modality: survey.ModalityChoice,
		Options:  []string{"👨 Мужской", "👩 Женский"},
	}

	markup := b.OptionsKeyboard(q)
	require.Len(t, markup.InlineKeyboard, 2)

	for i, row := range markup.InlineKeyboard {
		require.Len(t, row, 1)
		assert.Equal(t, q.Options[i], row[0].Text)

		require.NotNil(t, row[0].CallbackData)
		parsed, err := ParseCallback(*row[0].CallbackData)
		require.NoError(t, err)
		assert.Equal(t, "gender", parsed.QuestionKey)
		assert.Equal(t, i, parsed.OptionIndex)
	}
}
