package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/pocket-analyst/internal/models"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		values map[string]string
		want   string
	}{
		{
			name:   "simple placeholder",
			body:   "Hello $name!",
			values: map[string]string{"name": "Ann"},
			want:   "Hello Ann!",
		},
		{
			name:   "braced placeholder",
			body:   "Hello ${name}!",
			values: map[string]string{"name": "Ann"},
			want:   "Hello Ann!",
		},
		{
			name:   "unmatched placeholder stays verbatim",
			body:   "Hello $name, today is $day",
			values: map[string]string{"name": "Ann"},
			want:   "Hello Ann, today is $day",
		},
		{
			name:   "unmatched braced placeholder stays verbatim",
			body:   "value: ${missing}",
			values: map[string]string{},
			want:   "value: ${missing}",
		},
		{
			name:   "dollar escape",
			body:   "costs $$5 for $item",
			values: map[string]string{"item": "tea"},
			want:   "costs $5 for tea",
		},
		{
			name:   "trailing dollar",
			body:   "price in US$",
			values: map[string]string{},
			want:   "price in US$",
		},
		{
			name:   "dollar before digit stays verbatim",
			body:   "you owe $5",
			values: map[string]string{"5": "five"},
			want:   "you owe $5",
		},
		{
			name:   "unterminated brace stays verbatim",
			body:   "broken ${name",
			values: map[string]string{"name": "Ann"},
			want:   "broken ${name",
		},
		{
			name:   "braced non-identifier stays verbatim",
			body:   "odd ${a-b}",
			values: map[string]string{"a-b": "x"},
			want:   "odd ${a-b}",
		},
		{
			name:   "extra values ignored",
			body:   "just $one",
			values: map[string]string{"one": "1", "two": "2"},
			want:   "just 1",
		},
		{
			name:   "placeholder followed by punctuation",
			body:   "($tone)",
			values: map[string]string{"tone": "formal"},
			want:   "(formal)",
		},
		{
			name:   "adjacent braced placeholders",
			body:   "${a}${b}",
			values: map[string]string{"a": "x", "b": "y"},
			want:   "xy",
		},
		{
			name:   "underscore identifiers",
			body:   "$key_points here",
			values: map[string]string{"key_points": "KP"},
			want:   "KP here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.body, tt.values))
		})
	}
}

func TestRenderUsesBody(t *testing.T) {
	tmpl := &models.Template{
		Name: "Greeting",
		Body: "Hi $who",
	}
	assert.Equal(t, "Hi there", Render(tmpl, map[string]string{"who": "there"}))
}

func TestToMessages(t *testing.T) {
	tmpl := &models.Template{
		Name:          "With System",
		SystemMessage: "You are terse.",
		Body:          "Summarize: $text",
	}

	messages := ToMessages(tmpl, map[string]string{"text": "hello world"})
	require.Len(t, messages, 2)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, "You are terse.", messages[0].Content)
	assert.Equal(t, RoleUser, messages[1].Role)
	assert.Equal(t, "Summarize: hello world", messages[1].Content)
}

func TestToMessagesWithoutSystem(t *testing.T) {
	tmpl := &models.Template{Name: "Plain", Body: "just text"}

	messages := ToMessages(tmpl, nil)
	require.Len(t, messages, 1)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, "just text", messages[0].Content)
}

func TestMissingParameters(t *testing.T) {
	tmpl := &models.Template{
		Name: "Multi",
		Body: "$a $b $c",
		Parameters: map[string]string{
			"c": "third",
			"a": "first",
			"b": "second",
		},
	}

	missing := MissingParameters(tmpl, map[string]string{"b": "set"})
	assert.Equal(t, []string{"a", "c"}, missing)

	assert.Empty(t, MissingParameters(tmpl, map[string]string{"a": "1", "b": "2", "c": "3"}))
}

func TestExtractPlaceholders(t *testing.T) {
	body := "Analyze $document for ${audience}. Repeat: $document. Cost $$10, owe $5."
	assert.Equal(t, []string{"document", "audience"}, ExtractPlaceholders(body))
}

func TestExtractPlaceholdersEmpty(t *testing.T) {
	assert.Empty(t, ExtractPlaceholders("no placeholders here"))
	assert.Empty(t, ExtractPlaceholders(""))
	assert.Empty(t, ExtractPlaceholders("$"))
}
