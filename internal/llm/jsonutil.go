package llm

import (
	"regexp"
)

// Models asked for "a valid JSON object" still like to wrap it in markdown
// fences or sprinkle trailing commas. ExtractJSON recovers the object before
// the strict parse so only genuinely non-JSON output is reported as
// malformed.

var (
	// jsonBlockPattern matches a JSON object inside a markdown code block.
	jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	// jsonObjectPattern matches any JSON object (greedy fallback).
	jsonObjectPattern = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON extracts a JSON object from a completion response. It returns
// the empty string when no object is present.
func ExtractJSON(content string) string {
	raw := ""
	if matches := jsonBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		raw = matches[1]
	} else {
		raw = jsonObjectPattern.FindString(content)
	}
	if raw == "" {
		return ""
	}
	return trailingCommaPattern.ReplaceAllString(raw, "$1")
}
