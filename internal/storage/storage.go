// Package storage handles the on-disk template library: one JSON record per
// template, named by the template's slug.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dpshade/pocket-analyst/internal/errors"
	"github.com/dpshade/pocket-analyst/internal/models"
)

// Storage handles all file system operations for templates.
type Storage struct {
	rootPath string
	logger   *slog.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		s.logger = logger
	}
}

// NewStorage creates a storage instance rooted at rootPath. An empty rootPath
// falls back to ~/.pocket-analyst.
func NewStorage(rootPath string, opts ...Option) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".pocket-analyst")
	}

	s := &Storage{
		rootPath: rootPath,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BaseDir returns the root path of the storage.
func (s *Storage) BaseDir() string {
	return s.rootPath
}

// TemplateDir returns the directory holding template records.
func (s *Storage) TemplateDir() string {
	return filepath.Join(s.rootPath, "templates")
}

// InitLibrary creates the directory structure for a template library.
func (s *Storage) InitLibrary() error {
	for _, dir := range []string{s.rootPath, s.TemplateDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.StorageError(fmt.Sprintf("create directory %s", dir), err)
		}
	}
	return nil
}

// ListTemplates loads every template record in the library, in directory
// iteration order. Records that fail to parse are skipped with a warning so
// one corrupt file cannot take down the whole catalog.
func (s *Storage) ListTemplates() ([]*models.Template, error) {
	if err := s.InitLibrary(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.TemplateDir())
	if err != nil {
		return nil, errors.StorageError("read template directory", err)
	}

	var templates []*models.Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		tmpl, err := s.loadTemplateFile(filepath.Join(s.TemplateDir(), entry.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable template record",
				"file", entry.Name(),
				"error", err)
			continue
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// SaveTemplate writes the template to its slug-derived file, overwriting any
// existing record, and returns the file path.
func (s *Storage) SaveTemplate(tmpl *models.Template) (string, error) {
	if err := s.InitLibrary(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return "", errors.StorageError("serialize template", err)
	}

	path := s.templatePath(tmpl.Slug())
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", errors.StorageError(fmt.Sprintf("write template %s", tmpl.Name), err)
	}
	return path, nil
}

// DeleteTemplate removes the record for the given slug. A missing file is not
// an error: the manager may hold an entry whose record was removed externally.
func (s *Storage) DeleteTemplate(slug string) error {
	path := s.templatePath(slug)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.StorageError(fmt.Sprintf("delete template record %s", slug), err)
	}
	return nil
}

// HasTemplates reports whether the library already contains any template
// records. The default-catalog seeder uses this to avoid clobbering
// user-created templates.
func (s *Storage) HasTemplates() (bool, error) {
	entries, err := os.ReadDir(s.TemplateDir())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.StorageError("read template directory", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			return true, nil
		}
	}
	return false, nil
}

func (s *Storage) templatePath(slug string) string {
	return filepath.Join(s.TemplateDir(), slug+".json")
}

func (s *Storage) loadTemplateFile(path string) (*models.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var tmpl models.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if tmpl.Version == "" {
		tmpl.Version = models.DefaultVersion
	}
	return &tmpl, nil
}
