package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

// CallbackData is a parsed answer selection: the question key and the
// 0-based index of the chosen option.
type CallbackData struct {
	QuestionKey string
	OptionIndex int
}

// FormatCallback builds the "key:index" callback payload.
func FormatCallback(questionKey string, optionIndex int) string {
	return fmt.Sprintf("%s:%d", questionKey, optionIndex)
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid option index in callback %q: %w", data, err)
	}

	if parts[0] == "" {
		return nil, fmt.Errorf("empty question key in callback: %s", data)
	}

	return &CallbackData{
		QuestionKey: parts[0],
		OptionIndex: idx,
	}, nil
}
