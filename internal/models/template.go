package models

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultVersion is assigned to templates created without an explicit version.
const DefaultVersion = "1.0"

// Template represents a parameterized prompt: a body with $name/${name}
// placeholders plus the metadata needed to discover and document it.
type Template struct {
	Name          string            `json:"name" yaml:"name" validate:"required"`
	Description   string            `json:"description" yaml:"description"`
	Body          string            `json:"template" yaml:"template"`
	Parameters    map[string]string `json:"parameters" yaml:"parameters"`
	SystemMessage string            `json:"system_message,omitempty" yaml:"system_message,omitempty"`
	Tags          []string          `json:"tags" yaml:"tags"`
	Examples      []Example         `json:"examples" yaml:"examples"`
	Version       string            `json:"version" yaml:"version"`
}

// Example documents one illustrative invocation of a template. Examples are
// never executed; they exist so `templates show` can teach by example.
type Example struct {
	Parameters map[string]string `json:"parameters" yaml:"parameters"`
	Output     string            `json:"output,omitempty" yaml:"output,omitempty"`
}

// Summary is the listing view of a template: parameter names only, no
// descriptions or body.
type Summary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
	Tags        []string `json:"tags"`
	Version     string   `json:"version"`
}

var validate = validator.New()

// Validate checks the template's structural invariants before it is saved.
func (t *Template) Validate() error {
	return validate.Struct(t)
}

// Slug derives the filesystem identifier for the template: the name
// lowercased with spaces replaced by underscores. Distinct names can collide
// on the same slug; the store makes no attempt to detect this.
func (t *Template) Slug() string {
	return Slugify(t.Name)
}

// Slugify converts a template name to its on-disk identifier.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Summary returns the listing view of the template.
func (t *Template) Summary() Summary {
	params := make([]string, 0, len(t.Parameters))
	for name := range t.Parameters {
		params = append(params, name)
	}
	sort.Strings(params)
	return Summary{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  params,
		Tags:        t.Tags,
		Version:     t.Version,
	}
}

// HasAnyTag reports whether the template carries at least one of the given
// tags. Filtering is OR, not AND.
func (t *Template) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// FilterValue returns the string fuzzy search matches against.
func (t *Template) FilterValue() string {
	return t.Name + " " + t.Description
}
