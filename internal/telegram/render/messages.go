package render

import "fmt"

const (
	// Commands
	MsgHelp = `ℹ️ Помощь по боту

/start — 🚀 начать опрос
/help — ❓ помощь и инструкция
/about — 🍽️ о проекте
/cancel — ❌ отменить опрос
/privacy — 🔒 политика конфиденциальности

Бот задаёт вопросы о вашем опыте посещения ресторана. Ответы анонимны и нужны для улучшения сервиса!`

	MsgAbout = `🍽️ О проекте

Этот бот создан для анонимного опроса гостей ресторана. Ваши ответы помогут нам стать лучше!
Все данные сохраняются в таблицу и используются только для анализа качества обслуживания.`

	MsgPrivacy = `🔒 Конфиденциальность

Мы не собираем ваши контактные данные. Все ответы анонимны и используются только для внутреннего анализа.`

	MsgCancelled = `Опрос отменён ❌ Если захотите пройти опрос снова — отправьте /start 🚀`

	MsgUnknownCommand = `❌ Неизвестная команда. Используйте /start`

	// Survey flow
	MsgQuestion = `Вопрос %d из %d
%s`

	MsgFollowup = `💬 %s`

	MsgTextHint = `Введите, пожалуйста, Ваш ответ:`

	MsgNoSession = `Нет активного опроса. Отправьте /start, чтобы начать 🚀`

	MsgFinalizeSuccess = `Спасибо! Ваши ответы записаны. Приятного дня! 🙌`

	MsgFinalizeFailure = `Произошла ошибка при сохранении данных. Попробуйте позже.`

	// Rejections (protocol violations, state unchanged)
	MsgFollowupExpected = `Пожалуйста, ответьте текстом на уточняющий вопрос.`
	MsgMalformed        = `Ошибка: некорректный ответ.`
	MsgStaleQuestion    = `Пожалуйста, отвечайте на актуальный вопрос!`
	MsgDuplicateAnswer  = `Вы уже ответили на этот вопрос.`
	MsgUseButtons       = `Пожалуйста, выберите ответ кнопкой под вопросом.`
	MsgSurveyComplete   = `Опрос завершён. Спасибо!`

	// Errors
	ErrGeneric = `❌ Произошла ошибка. Попробуйте ещё раз или нажмите /start`
)

// RenderQuestion formats a main-line question with its progress indicator.
func RenderQuestion(position, total int, text string) string {
	return fmt.Sprintf(MsgQuestion, position, total, text)
}

// RenderFollowup formats an injected follow-up question.
func RenderFollowup(text string) string {
	return fmt.Sprintf(MsgFollowup, text)
}
