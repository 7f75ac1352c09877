// Package config resolves runtime settings from the environment and an
// optional config file in the library directory. Settings are loaded once and
// passed explicitly into components; nothing reads them through a global.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// MockAPIKey is the placeholder credential used when OPENAI_API_KEY is not
// set. It lets every non-network code path run without real credentials; any
// actual API call made with it will fail authentication.
const MockAPIKey = "mock_openai_api_key_12345"

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "gpt-3.5-turbo"

// Config holds the resolved runtime settings.
type Config struct {
	// LibraryDir is the template library root (default ~/.pocket-analyst).
	LibraryDir string `mapstructure:"dir"`

	// APIKey is the completion API credential.
	APIKey string `mapstructure:"api_key"`

	// Provider selects the completion API implementation ("openai" or
	// "ollama").
	Provider string `mapstructure:"provider"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `mapstructure:"base_url"`

	// Model is the default model identifier.
	Model string `mapstructure:"model"`
}

// Load resolves configuration: defaults, then config.yaml in the library
// directory, then environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("provider", "openai")
	v.SetDefault("model", DefaultModel)
	v.SetDefault("api_key", MockAPIKey)

	v.SetEnvPrefix("POCKET_ANALYST")
	v.AutomaticEnv()
	_ = v.BindEnv("dir", "POCKET_ANALYST_DIR")
	_ = v.BindEnv("api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("base_url", "OPENAI_BASE_URL")
	_ = v.BindEnv("model", "POCKET_ANALYST_MODEL")
	_ = v.BindEnv("provider", "POCKET_ANALYST_PROVIDER")

	// The library dir is resolved before the config-file read so a
	// config.yaml in the default location is honored too.
	dir := v.GetString("dir")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".pocket-analyst")
		}
	}

	if dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.LibraryDir == "" {
		cfg.LibraryDir = dir
	}
	return &cfg, nil
}

// InjectEnv writes the resolved API key back into the process environment so
// the provider layer, which reads OPENAI_API_KEY directly, sees it. Called
// before every completion client is constructed.
func (c *Config) InjectEnv() {
	os.Setenv("OPENAI_API_KEY", c.APIKey)
}
