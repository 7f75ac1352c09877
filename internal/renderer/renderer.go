// Package renderer turns a template plus parameter values into prompt text
// and the role-tagged message sequence sent to the completion API.
package renderer

import (
	"sort"
	"strings"

	"github.com/dpshade/pocket-analyst/internal/models"
)

// Message represents a chat message for LLM APIs.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Render substitutes $name and ${name} placeholders in the template body with
// the supplied values. Substitution is tolerant: a placeholder with no
// supplied value is left verbatim in the output, and supplied values with no
// matching placeholder are ignored. "$$" escapes a literal dollar sign.
//
// Tolerance is load-bearing: callers that skip the completeness check will
// send prompts with the raw placeholder text still in them, which is exactly
// what the CLI warns about.
func Render(tmpl *models.Template, values map[string]string) string {
	return Substitute(tmpl.Body, values)
}

// Substitute performs tolerant placeholder substitution on an arbitrary body.
func Substitute(body string, values map[string]string) string {
	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); {
		c := body[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}

		// Trailing "$" with nothing after it stays verbatim.
		if i+1 >= len(body) {
			b.WriteByte('$')
			break
		}

		switch next := body[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(body[i+2:], '}')
			if end < 0 {
				b.WriteString(body[i:])
				return b.String()
			}
			name := body[i+2 : i+2+end]
			if val, ok := values[name]; ok && isIdentifier(name) {
				b.WriteString(val)
			} else {
				b.WriteString(body[i : i+3+end])
			}
			i += 3 + end
		case isIdentStart(next):
			j := i + 1
			for j < len(body) && isIdentByte(body[j]) {
				j++
			}
			name := body[i+1 : j]
			if val, ok := values[name]; ok {
				b.WriteString(val)
			} else {
				b.WriteString(body[i:j])
			}
			i = j
		default:
			b.WriteByte('$')
			i++
		}
	}
	return b.String()
}

// ToMessages produces the chat message sequence for the template: the system
// message first when present, then the rendered body as the user message.
func ToMessages(tmpl *models.Template, values map[string]string) []Message {
	var messages []Message
	if tmpl.SystemMessage != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: tmpl.SystemMessage})
	}
	messages = append(messages, Message{Role: RoleUser, Content: Render(tmpl, values)})
	return messages
}

// MissingParameters returns the declared parameter names that have no
// supplied value. The renderer itself never enforces completeness; callers
// decide whether to warn or abort before spending an API call.
func MissingParameters(tmpl *models.Template, values map[string]string) []string {
	var missing []string
	for _, name := range sortedKeys(tmpl.Parameters) {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// ExtractPlaceholders returns the unique placeholder names referenced by a
// template body, in first-appearance order. Used by the interactive create
// flow to prompt for parameter descriptions.
func ExtractPlaceholders(body string) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && isIdentifier(name) && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for i := 0; i < len(body)-1; {
		if body[i] != '$' {
			i++
			continue
		}
		switch next := body[i+1]; {
		case next == '$':
			i += 2
		case next == '{':
			end := strings.IndexByte(body[i+2:], '}')
			if end < 0 {
				return names
			}
			add(body[i+2 : i+2+end])
			i += 3 + end
		case isIdentStart(next):
			j := i + 1
			for j < len(body) && isIdentByte(body[j]) {
				j++
			}
			add(body[i+1 : j])
			i = j
		default:
			i++
		}
	}
	return names
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Stable order so "missing parameters" messages are deterministic.
	sort.Strings(keys)
	return keys
}
