package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Document Summary", "document_summary"},
		{"Chain of Thought Reasoning", "chain_of_thought_reasoning"},
		{"already_slugged", "already_slugged"},
		{"MixedCase", "mixedcase"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name))
	}
}

func TestSlugCollision(t *testing.T) {
	// Distinct names can share a slug; the model does not disambiguate.
	a := &Template{Name: "Code Review"}
	b := &Template{Name: "code review"}
	assert.Equal(t, a.Slug(), b.Slug())
}

func TestValidateRequiresName(t *testing.T) {
	tmpl := &Template{Body: "some body"}
	require.Error(t, tmpl.Validate())

	tmpl.Name = "Named"
	require.NoError(t, tmpl.Validate())
}

func TestSummarySortsParameters(t *testing.T) {
	tmpl := &Template{
		Name:        "Demo",
		Description: "demo template",
		Parameters: map[string]string{
			"zebra":  "last param",
			"apple":  "first param",
			"middle": "",
		},
		Tags:    []string{"x"},
		Version: "2.0",
	}

	summary := tmpl.Summary()
	assert.Equal(t, "Demo", summary.Name)
	assert.Equal(t, []string{"apple", "middle", "zebra"}, summary.Parameters)
	assert.Equal(t, []string{"x"}, summary.Tags)
	assert.Equal(t, "2.0", summary.Version)
}

func TestHasAnyTag(t *testing.T) {
	tmpl := &Template{Name: "Tagged", Tags: []string{"b", "z"}}

	assert.True(t, tmpl.HasAnyTag([]string{"a", "b"}), "one overlapping tag should match")
	assert.True(t, tmpl.HasAnyTag([]string{"z"}))
	assert.False(t, tmpl.HasAnyTag([]string{"a", "c"}))
	assert.False(t, tmpl.HasAnyTag(nil))

	untagged := &Template{Name: "Plain"}
	assert.False(t, untagged.HasAnyTag([]string{"b"}))
}

func TestFilterValue(t *testing.T) {
	tmpl := &Template{Name: "Code Review", Description: "Review code for issues"}
	assert.Equal(t, "Code Review Review code for issues", tmpl.FilterValue())
}
