package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration, loaded from a YAML file.
//
// Environment Variables (override file values):
// - AUTODOCS_API_KEY: API key for the translation engine
// - AUTODOCS_API_URL: API endpoint URL
// - AUTODOCS_MODEL: Model name to use
type Config struct {
	// Repo is the Git repository URL or local path to translate.
	Repo string `yaml:"repo"`

	// Branch is the branch cloned on first sync.
	Branch string `yaml:"branch"`

	// Workspace is the root directory holding the synced checkout,
	// the translated mirror and the metadata record.
	Workspace string `yaml:"workspace"`

	// Cron is an optional cron expression. When empty the tool runs once
	// and exits; when set, the run repeats on the schedule.
	Cron string `yaml:"cron"`

	Engine    EngineConfig    `yaml:"engine"`
	Translate TranslateConfig `yaml:"translate"`
	Filter    FilterConfig    `yaml:"filter"`
}

// EngineConfig holds the translation-engine connection details.
// Works with any OpenAI-compatible provider.
type EngineConfig struct {
	Name        string  `yaml:"name"`
	URL         string  `yaml:"url"`
	Model       string  `yaml:"model"`
	APIKeyFile  string  `yaml:"api_key_file"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Timeout     int     `yaml:"timeout"`

	// resolved at load time, never serialized
	apiKey string
}

// TranslateConfig holds translation behavior configuration.
type TranslateConfig struct {
	// TargetLanguage is a BCP 47 language tag, e.g. "en", "zh", "ja".
	TargetLanguage string `yaml:"target_language"`
}

// FilterConfig holds the rules deciding which files are translated.
type FilterConfig struct {
	// Target is a space-separated list of glob-like suffix patterns,
	// e.g. "*.md *.txt".
	Target string `yaml:"target"`

	// Include substrings rescue files into candidacy even when their
	// suffix does not match Target.
	Include []string `yaml:"include"`

	// Exclude substrings remove files from candidacy regardless of suffix.
	Exclude []string `yaml:"exclude"`

	// LegacySuffixMatch enables the original raw string-suffix test
	// ("notes.xmd" matches suffix "md") instead of extension comparison.
	LegacySuffixMatch bool `yaml:"legacy_suffix_match"`
}

// Load reads and validates the YAML config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Environment overrides
	cfg.Engine.URL = getEnvString("AUTODOCS_API_URL", cfg.Engine.URL)
	cfg.Engine.Model = getEnvString("AUTODOCS_MODEL", cfg.Engine.Model)

	if err := cfg.resolveAPIKey(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Branch:    "main",
		Workspace: "./workspace",
		Engine: EngineConfig{
			Name:        "openai",
			URL:         "https://api.openai.com/v1",
			Temperature: 0.7,
			Timeout:     120,
		},
		Translate: TranslateConfig{
			TargetLanguage: "en",
		},
	}
}

// resolveAPIKey fills Engine.apiKey from the AUTODOCS_API_KEY environment
// variable, or from the configured key file.
func (c *Config) resolveAPIKey() error {
	if key := os.Getenv("AUTODOCS_API_KEY"); key != "" {
		c.Engine.apiKey = strings.TrimSpace(key)
		return nil
	}
	if c.Engine.APIKeyFile == "" {
		return nil
	}
	data, err := os.ReadFile(c.Engine.APIKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read API key file %s: %w", c.Engine.APIKeyFile, err)
	}
	c.Engine.apiKey = strings.TrimSpace(string(data))
	return nil
}

// APIKey returns the resolved engine API key.
func (e EngineConfig) APIKey() string {
	return e.apiKey
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.Repo == "" {
		return fmt.Errorf("repo is required")
	}
	if c.Workspace == "" {
		return fmt.Errorf("workspace is required")
	}
	if c.Engine.Model == "" {
		return fmt.Errorf("engine.model is required")
	}
	if c.Engine.apiKey == "" {
		return fmt.Errorf("engine API key is required (set engine.api_key_file or AUTODOCS_API_KEY)")
	}
	if _, err := c.TargetLanguageTag(); err != nil {
		return fmt.Errorf("invalid translate.target_language %q: %w", c.Translate.TargetLanguage, err)
	}
	if c.Filter.Target == "" {
		return fmt.Errorf("filter.target is required")
	}
	return nil
}

// TargetLanguageTag parses the configured target language as a BCP 47 tag.
func (c *Config) TargetLanguageTag() (language.Tag, error) {
	return language.Parse(c.Translate.TargetLanguage)
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
