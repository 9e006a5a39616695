package survey

// Modality defines how a question is answered.
type Modality string

const (
	// ModalityFreeText questions are answered with a plain text message.
	ModalityFreeText Modality = "free_text"
	// ModalityChoice questions are answered by pressing an inline button.
	ModalityChoice Modality = "choice"
)

// Question is a single survey question. Choice questions carry an ordered
// option list; an option is referenced by its index for the lifetime of a
// session, so labels never travel back through callback data.
type Question struct {
	Key      string   `json:"key"`
	Text     string   `json:"text"`
	Modality Modality `json:"modality"`
	Options  []string `json:"options,omitempty"`
}

// Rule injects a follow-up question when a specific answer is recorded for
// its trigger question. A rule fires at most once per session, the first
// time the trigger value is observed.
type Rule struct {
	TriggerKey   string `json:"trigger_key"`
	TriggerValue string `json:"trigger_value"`
	FollowupKey  string `json:"followup_key"`
}

// Definition is the serializable survey configuration: the full question
// catalog, the main-line ordering, the conditional rules and the column
// layout of the persisted row.
type Definition struct {
	Greeting    string     `json:"greeting"`
	Questions   []Question `json:"questions"`
	Sequence    []string   `json:"sequence"`
	Rules       []Rule     `json:"rules"`
	ColumnOrder []string   `json:"column_order"`
}
