package config

import (
	"testing"

	"github.com/futig/custdev-bot/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSurveyIsValid(t *testing.T) {
	catalog, err := survey.NewCatalog(DefaultSurvey())
	require.NoError(t, err)

	assert.Equal(t, 16, catalog.Len())
	assert.Len(t, catalog.ColumnOrder(), 23)
	assert.NotEmpty(t, catalog.Greeting())
}

func TestDefaultSurveyFollowupsAreNotScheduled(t *testing.T) {
	def := DefaultSurvey()

	scheduled := make(map[string]bool, len(def.Sequence))
	for _, key := range def.Sequence {
		scheduled[key] = true
	}

	for _, rule := range def.Rules {
		assert.False(t, scheduled[rule.FollowupKey],
			"follow-up %s must only appear when its rule fires", rule.FollowupKey)

		q, ok := findQuestion(def, rule.FollowupKey)
		require.True(t, ok)
		assert.Equal(t, survey.ModalityFreeText, q.Modality)
	}
}

func findQuestion(def survey.Definition, key string) (survey.Question, bool) {
	for _, q := range def.Questions {
		if q.Key == key {
			return q, true
		}
	}
	return survey.Question{}, false
}
