// Package service provides the template manager: an in-memory registry built
// from storage at startup, kept consistent with the on-disk records across
// saves and removals.
package service

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dpshade/pocket-analyst/internal/models"
	"github.com/dpshade/pocket-analyst/internal/storage"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// Service provides business logic for template management.
type Service struct {
	storage *storage.Storage
	logger  *slog.Logger

	// mu serializes mutations so the on-disk record and in-memory index move
	// together when the library is embedded in a long-lived process.
	mu    sync.RWMutex
	index map[string]*models.Template
	order []string // insertion order of names
}

// NewService creates a service backed by the given storage and loads the
// template index.
func NewService(store *storage.Storage, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svc := &Service{
		storage: store,
		logger:  logger,
		index:   make(map[string]*models.Template),
	}
	if err := svc.reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

// reload rebuilds the in-memory index from storage.
func (s *Service) reload() error {
	templates, err := s.storage.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = make(map[string]*models.Template, len(templates))
	s.order = s.order[:0]
	for _, tmpl := range templates {
		if _, ok := s.index[tmpl.Name]; !ok {
			s.order = append(s.order, tmpl.Name)
		}
		s.index[tmpl.Name] = tmpl
	}
	return nil
}

// BaseDir returns the library root directory.
func (s *Service) BaseDir() string {
	return s.storage.BaseDir()
}

// InitLibrary creates the library directory layout.
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// GetTemplate returns the template with the exact given name. The second
// return value reports whether it exists; an unknown name is not an error.
func (s *Service) GetTemplate(name string) (*models.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.index[name]
	return tmpl, ok
}

// ListTemplates returns all templates in index insertion order.
func (s *Service) ListTemplates() []*models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	templates := make([]*models.Template, 0, len(s.order))
	for _, name := range s.order {
		templates = append(templates, s.index[name])
	}
	return templates
}

// ListSummaries returns the listing view of every template, in index order.
func (s *Service) ListSummaries() []models.Summary {
	templates := s.ListTemplates()
	summaries := make([]models.Summary, 0, len(templates))
	for _, tmpl := range templates {
		summaries = append(summaries, tmpl.Summary())
	}
	return summaries
}

// SaveTemplate validates the template, writes it to storage, and upserts the
// in-memory entry. Re-saving an existing name replaces the stored version
// entirely. Returns the record's file path.
func (s *Service) SaveTemplate(tmpl *models.Template) (string, error) {
	if err := tmpl.Validate(); err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}
	if tmpl.Version == "" {
		tmpl.Version = models.DefaultVersion
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.storage.SaveTemplate(tmpl)
	if err != nil {
		return "", err
	}
	if _, ok := s.index[tmpl.Name]; !ok {
		s.order = append(s.order, tmpl.Name)
	}
	s.index[tmpl.Name] = tmpl
	return path, nil
}

// RemoveTemplate deletes the template's record and index entry. It returns
// whether a removal actually occurred; an unknown name returns false without
// error.
func (s *Service) RemoveTemplate(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmpl, ok := s.index[name]
	if !ok {
		return false, nil
	}

	if err := s.storage.DeleteTemplate(tmpl.Slug()); err != nil {
		return false, err
	}
	delete(s.index, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// FilterByTags returns templates carrying at least one of the given tags.
func (s *Service) FilterByTags(tags []string) []*models.Template {
	var matches []*models.Template
	for _, tmpl := range s.ListTemplates() {
		if tmpl.HasAnyTag(tags) {
			matches = append(matches, tmpl)
		}
	}
	return matches
}

// SearchTemplates performs a fuzzy search across template names and
// descriptions.
func (s *Service) SearchTemplates(query string) []*models.Template {
	templates := s.ListTemplates()
	if query == "" {
		return templates
	}

	haystack := make([]string, len(templates))
	for i, tmpl := range templates {
		haystack[i] = tmpl.FilterValue()
	}

	var results []*models.Template
	for _, match := range fuzzy.Find(query, haystack) {
		results = append(results, templates[match.Index])
	}
	return results
}

// AllTags returns the distinct tags across the catalog, in first-seen order.
func (s *Service) AllTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, tmpl := range s.ListTemplates() {
		for _, tag := range tmpl.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// templatePack is the export/import document: the whole catalog as one YAML
// file.
type templatePack struct {
	Templates []*models.Template `yaml:"templates"`
}

// ExportTemplates writes the entire catalog to a single YAML pack file.
func (s *Service) ExportTemplates(path string) error {
	pack := templatePack{Templates: s.ListTemplates()}
	data, err := yaml.Marshal(&pack)
	if err != nil {
		return fmt.Errorf("failed to serialize template pack: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write template pack: %w", err)
	}
	return nil
}

// ImportTemplates loads a YAML pack file and upserts every template in it.
// Returns the number of templates imported.
func (s *Service) ImportTemplates(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read template pack: %w", err)
	}

	var pack templatePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return 0, fmt.Errorf("failed to parse template pack: %w", err)
	}

	count := 0
	for _, tmpl := range pack.Templates {
		// A bare list item decodes to nil.
		if tmpl == nil {
			s.logger.Warn("skipping empty entry in pack")
			continue
		}
		if _, err := s.SaveTemplate(tmpl); err != nil {
			s.logger.Warn("skipping invalid template in pack",
				"name", tmpl.Name,
				"error", err)
			continue
		}
		count++
	}
	return count, nil
}
