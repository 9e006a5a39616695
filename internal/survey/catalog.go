package survey

import (
	"fmt"

	"github.com/futig/custdev-bot/internal/entity"
)

// Metadata keys seeded into every session at start. They occupy columns in
// the persisted row alongside the question keys.
const (
	KeyTimestamp  = "timestamp"
	KeyUsername   = "username"
	KeyUserID     = "user_id"
	KeyResponseID = "response_id"
)

var metadataKeys = []string{KeyTimestamp, KeyUsername, KeyUserID, KeyResponseID}

// Catalog is the validated, immutable survey definition. All lookups are
// resolved at construction time so malformed configuration fails at startup
// rather than mid-survey.
type Catalog struct {
	greeting    string
	questions   map[string]Question
	sequence    []string
	rules       []Rule
	columnOrder []string
}

// NewCatalog validates a definition and builds the catalog.
func NewCatalog(def Definition) (*Catalog, error) {
	if len(def.Sequence) == 0 {
		return nil, fmt.Errorf("%w: empty base sequence", entity.ErrInvalidDefinition)
	}

	questions := make(map[string]Question, len(def.Questions))
	for _, q := range def.Questions {
		if q.Key == "" || q.Text == "" {
			return nil, fmt.Errorf("%w: question key and text are required", entity.ErrInvalidDefinition)
		}
		if _, ok := questions[q.Key]; ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrDuplicateKey, q.Key)
		}
		switch q.Modality {
		case ModalityChoice:
			if len(q.Options) < 2 {
				return nil, fmt.Errorf("%w: choice question %s needs at least 2 options", entity.ErrInvalidModality, q.Key)
			}
		case ModalityFreeText:
			if len(q.Options) != 0 {
				return nil, fmt.Errorf("%w: free_text question %s must not have options", entity.ErrInvalidModality, q.Key)
			}
		default:
			return nil, fmt.Errorf("%w: question %s has modality %q", entity.ErrInvalidModality, q.Key, q.Modality)
		}
		questions[q.Key] = q
	}

	inSequence := make(map[string]bool, len(def.Sequence))
	for _, key := range def.Sequence {
		if _, ok := questions[key]; !ok {
			return nil, fmt.Errorf("%w: sequence references %s", entity.ErrUnknownQuestion, key)
		}
		if inSequence[key] {
			return nil, fmt.Errorf("%w: %s appears twice in sequence", entity.ErrDuplicateKey, key)
		}
		inSequence[key] = true
	}

	followups := make(map[string]bool, len(def.Rules))
	for _, r := range def.Rules {
		trigger, ok := questions[r.TriggerKey]
		if !ok {
			return nil, fmt.Errorf("%w: rule trigger %s is not a known question", entity.ErrInvalidRule, r.TriggerKey)
		}
		if trigger.Modality != ModalityChoice {
			return nil, fmt.Errorf("%w: rule trigger %s is not a choice question", entity.ErrInvalidRule, r.TriggerKey)
		}
		if !containsOption(trigger.Options, r.TriggerValue) {
			return nil, fmt.Errorf("%w: value %q is not an option of %s", entity.ErrInvalidRule, r.TriggerValue, r.TriggerKey)
		}
		followup, ok := questions[r.FollowupKey]
		if !ok {
			return nil, fmt.Errorf("%w: rule follow-up %s is not a known question", entity.ErrInvalidRule, r.FollowupKey)
		}
		if followup.Modality != ModalityFreeText {
			return nil, fmt.Errorf("%w: follow-up %s must be free_text", entity.ErrInvalidRule, r.FollowupKey)
		}
		// Follow-ups are injected, never pre-scheduled.
		if inSequence[r.FollowupKey] {
			return nil, fmt.Errorf("%w: follow-up %s is part of the base sequence", entity.ErrInvalidRule, r.FollowupKey)
		}
		if followups[r.FollowupKey] {
			return nil, fmt.Errorf("%w: follow-up %s is used by two rules", entity.ErrInvalidRule, r.FollowupKey)
		}
		followups[r.FollowupKey] = true
	}

	inColumns := make(map[string]bool, len(def.ColumnOrder))
	for _, key := range def.ColumnOrder {
		inColumns[key] = true
	}
	for _, key := range metadataKeys {
		if !inColumns[key] {
			return nil, fmt.Errorf("%w: column order is missing metadata key %s", entity.ErrInvalidDefinition, key)
		}
	}
	for _, key := range def.Sequence {
		if !inColumns[key] {
			return nil, fmt.Errorf("%w: column order is missing %s", entity.ErrInvalidDefinition, key)
		}
	}
	for key := range followups {
		if !inColumns[key] {
			return nil, fmt.Errorf("%w: column order is missing follow-up %s", entity.ErrInvalidDefinition, key)
		}
	}

	return &Catalog{
		greeting:    def.Greeting,
		questions:   questions,
		sequence:    append([]string(nil), def.Sequence...),
		rules:       append([]Rule(nil), def.Rules...),
		columnOrder: append([]string(nil), def.ColumnOrder...),
	}, nil
}

// Greeting returns the entry prompt text.
func (c *Catalog) Greeting() string { return c.greeting }

// Len returns the number of main-line questions.
func (c *Catalog) Len() int { return len(c.sequence) }

// Question looks up a question by key.
func (c *Catalog) Question(key string) (Question, bool) {
	q, ok := c.questions[key]
	return q, ok
}

// ColumnOrder returns the fixed column layout for persisted rows.
func (c *Catalog) ColumnOrder() []string {
	return append([]string(nil), c.columnOrder...)
}

// ruleFor returns the rule triggered by recording value for key, if any.
func (c *Catalog) ruleFor(key, value string) (Rule, bool) {
	for _, r := range c.rules {
		if r.TriggerKey == key && r.TriggerValue == value {
			return r, true
		}
	}
	return Rule{}, false
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
