package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"POCKET_ANALYST_DIR",
		"POCKET_ANALYST_MODEL",
		"POCKET_ANALYST_PROVIDER",
		"OPENAI_API_KEY",
		"OPENAI_BASE_URL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, MockAPIKey, cfg.APIKey, "missing key falls back to the mock credential")
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, ".pocket-analyst", filepath.Base(cfg.LibraryDir))
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("POCKET_ANALYST_DIR", dir)
	t.Setenv("OPENAI_API_KEY", "sk-real")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("POCKET_ANALYST_MODEL", "llama3")
	t.Setenv("POCKET_ANALYST_PROVIDER", "ollama")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.LibraryDir)
	assert.Equal(t, "sk-real", cfg.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.BaseURL)
	assert.Equal(t, "llama3", cfg.Model)
	assert.Equal(t, "ollama", cfg.Provider)
}

func TestLoadFromConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("POCKET_ANALYST_DIR", dir)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.yaml"),
		[]byte("model: gpt-4\nprovider: openai\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", cfg.Model)
}

func TestLoadFromDefaultDirConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	libraryDir := filepath.Join(home, ".pocket-analyst")
	require.NoError(t, os.MkdirAll(libraryDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(libraryDir, "config.yaml"),
		[]byte("model: from-file\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, libraryDir, cfg.LibraryDir)
	assert.Equal(t, "from-file", cfg.Model, "config.yaml in the default library dir must be read")
}

func TestEnvOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("POCKET_ANALYST_DIR", dir)
	t.Setenv("POCKET_ANALYST_MODEL", "from-env")
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.yaml"),
		[]byte("model: from-file\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Model)
}

func TestInjectEnv(t *testing.T) {
	clearEnv(t)

	cfg := &Config{APIKey: MockAPIKey}
	cfg.InjectEnv()
	assert.Equal(t, MockAPIKey, os.Getenv("OPENAI_API_KEY"))

	cfg.APIKey = "sk-other"
	cfg.InjectEnv()
	assert.Equal(t, "sk-other", os.Getenv("OPENAI_API_KEY"))
}
