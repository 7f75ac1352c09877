package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/pocket-analyst/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	return store
}

func sampleTemplate() *models.Template {
	return &models.Template{
		Name:        "Code Review",
		Description: "Review code for issues",
		Body:        "Review this:\n\n$code",
		Parameters:  map[string]string{"code": "The code to review"},
		Tags:        []string{"code", "review"},
		Version:     "1.0",
	}
}

func TestSaveAndListRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	path, err := store.SaveTemplate(sampleTemplate())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.TemplateDir(), "code_review.json"), path)

	templates, err := store.ListTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 1)

	got := templates[0]
	assert.Equal(t, "Code Review", got.Name)
	assert.Equal(t, "Review this:\n\n$code", got.Body)
	assert.Equal(t, map[string]string{"code": "The code to review"}, got.Parameters)
	assert.Equal(t, []string{"code", "review"}, got.Tags)
}

func TestSaveOverwritesSameSlug(t *testing.T) {
	store := newTestStorage(t)

	tmpl := sampleTemplate()
	_, err := store.SaveTemplate(tmpl)
	require.NoError(t, err)

	tmpl.Description = "updated"
	_, err = store.SaveTemplate(tmpl)
	require.NoError(t, err)

	entries, err := os.ReadDir(store.TemplateDir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "re-saving must not create a second record")

	templates, err := store.ListTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "updated", templates[0].Description)
}

func TestListSkipsCorruptRecords(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.InitLibrary())

	_, err := store.SaveTemplate(sampleTemplate())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(
		filepath.Join(store.TemplateDir(), "broken.json"),
		[]byte("{not json"), 0644))

	templates, err := store.ListTemplates()
	require.NoError(t, err, "a corrupt record must not fail the whole load")
	require.Len(t, templates, 1)
	assert.Equal(t, "Code Review", templates[0].Name)
}

func TestListIgnoresNonJSONFiles(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.InitLibrary())
	require.NoError(t, os.WriteFile(
		filepath.Join(store.TemplateDir(), "notes.txt"),
		[]byte("not a record"), 0644))

	templates, err := store.ListTemplates()
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestVersionDefaultsOnLoad(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.InitLibrary())
	require.NoError(t, os.WriteFile(
		filepath.Join(store.TemplateDir(), "old.json"),
		[]byte(`{"name": "Old Record", "template": "body"}`), 0644))

	templates, err := store.ListTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, models.DefaultVersion, templates[0].Version)
}

func TestDeleteTemplate(t *testing.T) {
	store := newTestStorage(t)

	tmpl := sampleTemplate()
	path, err := store.SaveTemplate(tmpl)
	require.NoError(t, err)

	require.NoError(t, store.DeleteTemplate(tmpl.Slug()))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting an already-absent record is fine.
	require.NoError(t, store.DeleteTemplate(tmpl.Slug()))
}

func TestHasTemplates(t *testing.T) {
	store := newTestStorage(t)

	has, err := store.HasTemplates()
	require.NoError(t, err)
	assert.False(t, has, "missing library directory counts as empty")

	require.NoError(t, store.InitLibrary())
	has, err = store.HasTemplates()
	require.NoError(t, err)
	assert.False(t, has)

	_, err = store.SaveTemplate(sampleTemplate())
	require.NoError(t, err)
	has, err = store.HasTemplates()
	require.NoError(t, err)
	assert.True(t, has)
}

func TestEmptyRootFallsBackToHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := NewStorage("")
	require.NoError(t, err)
	assert.Equal(t, ".pocket-analyst", filepath.Base(store.BaseDir()))
}
