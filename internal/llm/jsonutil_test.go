package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare object",
			content: `{"key": "value"}`,
			want:    `{"key": "value"}`,
		},
		{
			name:    "fenced json block",
			content: "Sure, here is the result:\n```json\n{\"key\": \"value\"}\n```\nHope that helps!",
			want:    `{"key": "value"}`,
		},
		{
			name:    "fence without language tag",
			content: "```\n{\"key\": \"value\"}\n```",
			want:    `{"key": "value"}`,
		},
		{
			name:    "object embedded in prose",
			content: `The analysis is {"score": 1} as requested.`,
			want:    `{"score": 1}`,
		},
		{
			name:    "trailing comma cleaned",
			content: `{"items": ["a", "b",], "done": true,}`,
			want:    `{"items": ["a", "b"], "done": true}`,
		},
		{
			name:    "no object",
			content: "I am unable to answer that.",
			want:    "",
		},
		{
			name:    "empty input",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.content))
		})
	}
}

func TestExtractJSONProducesValidJSON(t *testing.T) {
	content := "```json\n{\n  \"nested\": {\"a\": [1, 2,],},\n}\n```"
	raw := ExtractJSON(content)
	require.NotEmpty(t, raw)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.Contains(t, data, "nested")
}
