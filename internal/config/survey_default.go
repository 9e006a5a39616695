package config

import "github.com/futig/custdev-bot/internal/survey"

// DefaultSurvey returns the built-in restaurant guest survey: 16 main-line
// questions, three conditional free-text follow-ups and the column layout
// of the results sheet. A JSON file referenced by SURVEY_DEFINITION_PATH
// overrides it wholesale.
func DefaultSurvey() survey.Definition {
	return survey.Definition{
		Greeting: "👋 Здравствуйте! Это короткий опрос о вашем опыте посещения нашего ресторана.\n\n" +
			"Ответы анонимны и помогут нам стать лучше. Это займёт не больше пары минут. Поехали! 🚀",
		Questions: []survey.Question{
			{
				Key:      "gender",
				Text:     "Укажите, пожалуйста, ваш пол:",
				Modality: survey.ModalityChoice,
				Options:  []string{"👨 Мужской", "👩 Женский"},
			},
			{
				Key:      "age",
				Text:     "Сколько вам лет?",
				Modality: survey.ModalityChoice,
				Options: []string{
					"🔸 До 18",
					"🔸 18–25",
					"🔸 26–35",
					"🔸 36–45",
					"🔸 46–60",
					"🔸 Старше 60",
				},
			},
			{
				Key:      "first_time",
				Text:     "Вы у нас впервые?",
				Modality: survey.ModalityChoice,
				Options:  []string{"🆕 Да, впервые", "🔁 Нет, бывал(а) раньше"},
			},
			{
				Key:      "visit_source",
				Text:     "Как вы узнали о нашем ресторане?",
				Modality: survey.ModalityChoice,
				Options: []string{
					"👥 По совету друзей",
					"🌐 Из соцсетей",
					"⭐ По отзывам в интернете",
					"🗺 Проходил(а) мимо",
					"✍️ Другое",
				},
			},
			{
				Key:      "visit_frequency",
				Text:     "Как часто вы нас посещаете?",
				Modality: survey.ModalityChoice,
				Options: []string{
					"📅 Несколько раз в неделю",
					"📅 Несколько раз в месяц",
					"📅 Раз в месяц и реже",
					"🆕 Это первый визит",
				},
			},
			{
				Key:      "last_visit_satisfaction",
				Text:     "Как вам последний визит в целом?",
				Modality: survey.ModalityChoice,
				Options:  []string{"😍 Отлично", "🙂 Хорошо", "😐 Нормально", "🙁 Плохо"},
			},
			{
				Key:      "last_visit_issues",
				Text:     "Возникали ли какие-то проблемы во время последнего визита?",
				Modality: survey.ModalityChoice,
				Options:  []string{"🟢 Да", "🔴 Нет"},
			},
			{
				Key:      "issues_description",
				Text:     "Расскажите, пожалуйста, что именно пошло не так:",
				Modality: survey.ModalityFreeText,
			},
			{
				Key:      "cuisine_preference",
				Text:     "Какую кухню или какие блюда вы предпочитаете?",
				Modality: survey.ModalityFreeText,
			},
			{
				Key:      "menu_satisfaction",
				Text:     "Устраивает ли вас наше меню?",
				Modality: survey.ModalityChoice,
				Options: []string{
					"👌 Всё устраивает",
					"🍲 Не хватает определённых блюд",
					"🤔 Затрудняюсь ответить",
				},
			},
			{
				Key:      "menu_wishes",
				Text:     "Каких блюд вам не хватает в нашем меню?",
				Modality: survey.ModalityFreeText,
			},
			{
				Key:      "avg_bill",
				Text:     "Какой у вас обычно средний чек на человека?",
				Modality: survey.ModalityChoice,
				Options: []string{
					"💵 До 500 ₽",
					"💵 500–1000 ₽",
					"💵 1000–2000 ₽",
					"💵 Более 2000 ₽",
				},
			},
			{
				Key:      "reservation_preference",
				Text:     "Как вам удобнее бронировать столик?",
				Modality: survey.ModalityChoice,
				Options: []string{
					"📞 По телефону",
					"💬 Через мессенджеры",
					"🌐 Онлайн на сайте",
					"🚶 Прихожу без брони",
				},
			},
			{
				Key:      "important_factors",
				Text:     "Что для вас важнее всего при выборе ресторана? Напишите своими словами.",
				Modality: survey.ModalityFreeText,
			},
			{
				Key:      "delivery_interest",
				Text:     "Интересна ли вам доставка наших блюд?",
				Modality: survey.ModalityChoice,
				Options:  []string{"🚚 Да, пользуюсь доставкой", "🤔 Возможно", "❌ Нет"},
			},
			{
				Key:      "loyalty_program",
				Text:     "Знаете ли вы о нашей программе лояльности?",
				Modality: survey.ModalityChoice,
				Options: []string{
					"💳 Да, участвую",
					"ℹ️ Слышал(а), но не участвую",
					"❓ Впервые слышу",
				},
			},
			{
				Key:      "recommendation_willingness",
				Text:     "Порекомендуете ли вы нас друзьям?",
				Modality: survey.ModalityChoice,
				Options:  []string{"👍 Точно порекомендую", "🤷 Возможно", "👎 Нет"},
			},
			{
				Key:      "improvement_needed",
				Text:     "Есть ли что-то, что нам стоит улучшить?",
				Modality: survey.ModalityChoice,
				Options:  []string{"👍 Да", "👌 Нет, всё отлично"},
			},
			{
				Key:      "improvement_suggestions",
				Text:     "Что бы вы хотели улучшить в первую очередь?",
				Modality: survey.ModalityFreeText,
			},
		},
		Sequence: []string{
			"gender",
			"age",
			"first_time",
			"visit_source",
			"visit_frequency",
			"last_visit_satisfaction",
			"last_visit_issues",
			"cuisine_preference",
			"menu_satisfaction",
			"avg_bill",
			"reservation_preference",
			"important_factors",
			"delivery_interest",
			"loyalty_program",
			"recommendation_willingness",
			"improvement_needed",
		},
		Rules: []survey.Rule{
			{
				TriggerKey:   "last_visit_issues",
				TriggerValue: "🟢 Да",
				FollowupKey:  "issues_description",
			},
			{
				TriggerKey:   "menu_satisfaction",
				TriggerValue: "🍲 Не хватает определённых блюд",
				FollowupKey:  "menu_wishes",
			},
			{
				TriggerKey:   "improvement_needed",
				TriggerValue: "👍 Да",
				FollowupKey:  "improvement_suggestions",
			},
		},
		ColumnOrder: []string{
			"timestamp",
			"username",
			"user_id",
			"response_id",
			"gender",
			"age",
			"first_time",
			"visit_source",
			"visit_frequency",
			"last_visit_satisfaction",
			"last_visit_issues",
			"issues_description",
			"cuisine_preference",
			"menu_satisfaction",
			"menu_wishes",
			"avg_bill",
			"reservation_preference",
			"important_factors",
			"delivery_interest",
			"loyalty_program",
			"recommendation_willingness",
			"improvement_needed",
			"improvement_suggestions",
		},
	}
}
