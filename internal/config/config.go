package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted for the API key, in order
var APIKeyEnv = []string{"QUILL_API_KEY", "API_KEY"}

type Config struct {
	Provider    string  `yaml:"provider" validate:"required,provider"`
	APIKey      string  `yaml:"api_key,omitempty"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url,omitempty" validate:"omitempty,url"`
	MaxTokens   int     `yaml:"max_tokens,omitempty" validate:"gte=0"`
	Temperature float64 `yaml:"temperature,omitempty" validate:"gte=0,lte=2"`

	DefaultAction  string `yaml:"default_action,omitempty"`
	TargetLanguage string `yaml:"target_language,omitempty"`

	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFile  string `yaml:"log_file,omitempty"`

	// apiKeyFromEnv is set when APIKey came from the environment so Save
	// does not write it to disk.
	apiKeyFromEnv bool
}

func DefaultConfig() *Config {
	return &Config{
		Provider:       "gemini",
		Model:          "gemini-2.5-flash",
		DefaultAction:  "improve",
		TargetLanguage: "English",
		LogLevel:       "info",
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quill"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultLogPath is where logs go when log_file is not set
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quill.log"), nil
}

func resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return ConfigPath()
}

// Exists reports whether a config file is present at path (or the default
// location when path is empty).
func Exists(path string) bool {
	path, err := resolve(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file at path (or the default location when path is
// empty). A missing file yields nil, nil.
func Load(path string) (*Config, error) {
	path, err := resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overlays the API key from the environment. Environment values win
// over the file.
func (c *Config) ApplyEnv() {
	for _, name := range APIKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			c.APIKey = v
			c.apiKeyFromEnv = true
			return
		}
	}
}

// APIKeyFromEnv reports whether the API key was taken from the environment
func (c *Config) APIKeyFromEnv() bool {
	return c.apiKeyFromEnv
}

// Save writes the config to path (or the default location when path is
// empty). An API key taken from the environment is not persisted.
func (c *Config) Save(path string) error {
	path, err := resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	out := *c
	if c.apiKeyFromEnv {
		out.APIKey = ""
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		return id == "custom" || GetProvider(id) != nil
	})
	return v
}

// Validate checks field values. It does not require an API key: a missing
// key is reported when a request is made.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s (%s=%v)", strings.ToLower(fe.Field()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Provider == "custom" && c.BaseURL == "" {
		return fmt.Errorf("invalid config: custom provider requires base_url")
	}
	return nil
}
