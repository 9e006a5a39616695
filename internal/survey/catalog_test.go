package survey

import (
	"testing"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogValid(t *testing.T) {
	c, err := NewCatalog(testDefinition())
	require.NoError(t, err)

	assert.Equal(t, "привет", c.Greeting())
	assert.Equal(t, 2, c.Len())

	q, ok := c.Question("q1")
	require.True(t, ok)
	assert.Equal(t, ModalityChoice, q.Modality)

	_, ok = c.Question("missing")
	assert.False(t, ok)

	assert.Equal(t, testDefinition().ColumnOrder, c.ColumnOrder())
}

func TestNewCatalogRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr error
	}{
		{
			name:    "empty sequence",
			mutate:  func(d *Definition) { d.Sequence = nil },
			wantErr: entity.ErrInvalidDefinition,
		},
		{
			name: "question without text",
			mutate: func(d *Definition) {
				d.Questions[0].Text = ""
			},
			wantErr: entity.ErrInvalidDefinition,
		},
		{
			name: "duplicate question key",
			mutate: func(d *Definition) {
				d.Questions = append(d.Questions, Question{
					Key: "q1", Text: "copy", Modality: ModalityFreeText,
				})
			},
			wantErr: entity.ErrDuplicateKey,
		},
		{
			name: "choice with single option",
			mutate: func(d *Definition) {
				d.Questions[0].Options = []string{"A"}
				d.Rules = nil
			},
			wantErr: entity.ErrInvalidModality,
		},
		{
			name: "free text with options",
			mutate: func(d *Definition) {
				d.Questions[1].Options = []string{"A", "B"}
			},
			wantErr: entity.ErrInvalidModality,
		},
		{
			name: "unknown modality",
			mutate: func(d *Definition) {
				d.Questions[1].Modality = "voice"
			},
			wantErr: entity.ErrInvalidModality,
		},
		{
			name: "sequence references unknown key",
			mutate: func(d *Definition) {
				d.Sequence = append(d.Sequence, "ghost")
			},
			wantErr: entity.ErrUnknownQuestion,
		},
		{
			name: "sequence repeats a key",
			mutate: func(d *Definition) {
				d.Sequence = append(d.Sequence, "q1")
			},
			wantErr: entity.ErrDuplicateKey,
		},
		{
			name: "rule trigger unknown",
			mutate: func(d *Definition) {
				d.Rules[0].TriggerKey = "ghost"
			},
			wantErr: entity.ErrInvalidRule,
		},
		{
			name: "rule trigger is free text",
			mutate: func(d *Definition) {
				d.Rules[0].TriggerKey = "q2"
			},
			wantErr: entity.ErrInvalidRule,
		},
		{
			name: "rule value not among options",
			mutate: func(d *Definition) {
				d.Rules[0].TriggerValue = "C"
			},
			wantErr: entity.ErrInvalidRule,
		},
		{
			name: "rule follow-up unknown",
			mutate: func(d *Definition) {
				d.Rules[0].FollowupKey = "ghost"
			},
			wantErr: entity.ErrInvalidRule,
		},
		{
			name: "rule follow-up is a choice question",
			mutate: func(d *Definition) {
				d.Questions[2].Modality = ModalityChoice
				d.Questions[2].Options = []string{"X", "Y"}
			},
			wantErr: entity.ErrInvalidRule,
		},
		{
			name: "follow-up scheduled in base sequence",
			mutate: func(d *Definition) {
				d.Sequence = append(d.Sequence, "q1_detail")
			},
			wantErr: entity.ErrInvalidRule,
		},
		{
			name: "two rules share a follow-up",
			mutate: func(d *Definition) {
				d.Rules = append(d.Rules, Rule{
					TriggerKey: "q1", TriggerValue: "A", FollowupKey: "q1_detail",
				})
			},
			wantErr: entity.ErrInvalidRule,
		},
		{
			name: "column order missing metadata key",
			mutate: func(d *Definition) {
				d.ColumnOrder = []string{"timestamp", "username", "user_id", "q1", "q1_detail", "q2"}
			},
			wantErr: entity.ErrInvalidDefinition,
		},
		{
			name: "column order missing sequence key",
			mutate: func(d *Definition) {
				d.ColumnOrder = []string{"timestamp", "username", "user_id", "response_id", "q1", "q1_detail"}
			},
			wantErr: entity.ErrInvalidDefinition,
		},
		{
			name: "column order missing follow-up key",
			mutate: func(d *Definition) {
				d.ColumnOrder = []string{"timestamp", "username", "user_id", "response_id", "q1", "q2"}
			},
			wantErr: entity.ErrInvalidDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testDefinition()
			tt.mutate(&def)

			_, err := NewCatalog(def)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
