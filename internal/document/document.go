// Package document loads input files for analysis. HTML documents are
// reduced to markdown before they are sent to the completion API; binary
// files are rejected up front rather than wasting an API call.
package document

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/gabriel-vasile/mimetype"

	"github.com/dpshade/pocket-analyst/internal/errors"
)

var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

// Document is a loaded, analysis-ready text document.
type Document struct {
	Path string
	MIME string
	Text string
}

// Loader reads documents from disk and normalizes them to plain text.
type Loader struct {
	converter *md.Converter
}

// NewLoader creates a document loader.
func NewLoader() *Loader {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Loader{converter: converter}
}

// Load reads the file, sniffs its type, and returns its text content. HTML
// is converted to markdown; any non-textual type is a validation error.
func (l *Loader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, fmt.Sprintf("cannot read %s", path))
	}

	mtype := mimetype.Detect(data)
	doc := &Document{Path: path, MIME: mtype.String()}

	switch {
	case mtype.Is("text/html"):
		text, err := l.htmlToMarkdown(string(data))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("cannot convert HTML document %s", path))
		}
		doc.Text = text
	case isTextual(mtype):
		doc.Text = string(data)
	default:
		return nil, errors.ValidationError(
			fmt.Sprintf("%s is not a text document (detected %s)", path, mtype.String()))
	}

	return doc, nil
}

func (l *Loader) htmlToMarkdown(html string) (string, error) {
	markdown, err := l.converter.ConvertString(html)
	if err != nil {
		return "", err
	}
	markdown = excessiveLinesRe.ReplaceAllString(markdown, "\n\n\n")
	return strings.TrimSpace(markdown), nil
}

// isTextual reports whether the detected type is analyzable as plain text.
// mimetype resolves all text-like formats (markdown, csv, source code) to a
// type whose ancestry includes text/plain; a handful of structured formats
// are textual without that ancestry.
func isTextual(mtype *mimetype.MIME) bool {
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return true
		}
	}
	switch {
	case mtype.Is("application/json"),
		mtype.Is("application/xml"),
		mtype.Is("text/xml"),
		mtype.Is("application/x-yaml"):
		return true
	}
	return false
}
