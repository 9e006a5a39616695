package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatParseRoundTrip(t *testing.T) {
	data := FormatCallback("visit_frequency", 3)
	assert.Equal(t, "visit_frequency:3", data)

	parsed, err := ParseCallback(data)
	require.NoError(t, err)
	assert.Equal(t, "visit_frequency", parsed.QuestionKey)
	assert.Equal(t, 3, parsed.OptionIndex)
}

func TestParseCallbackInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no separator", data: "gender"},
		{name: "empty string", data: ""},
		{name: "non-numeric index", data: "gender:abc"},
		{name: "empty index", data: "gender:"},
		{name: "empty key", data: ":0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCallback(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestParseCallbackKeyWithColonInIndexPart(t *testing.T) {
	// SplitN keeps everything after the first colon as the index part.
	_, err := ParseCallback("key:1:2")
	assert.Error(t, err)
}
