// Package config provides configuration loading and management for freelo.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Model providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

const (
	defaultGeminiModel  = "gemini-2.0-flash"
	defaultOpenAIModel  = "gpt-4o-mini"
	defaultGeminiKeyEnv = "GEMINI_API_KEY"
	defaultOpenAIKeyEnv = "OPENAI_API_KEY"
	defaultJWTSecretEnv = "FREELO_JWT_SECRET"
	defaultModelTimeout = 30 * time.Second
)

// DefaultPath is the config file used when --config is not given.
var DefaultPath = filepath.Join(".freelo", "config.yaml")

// Config is the root configuration.
type Config struct {
	Owner     string          `json:"owner"     mapstructure:"owner"     yaml:"owner"`
	Database  DatabaseConfig  `json:"database"  mapstructure:"database"  yaml:"database"`
	Model     ModelConfig     `json:"model"     mapstructure:"model"     yaml:"model"`
	Assistant AssistantConfig `json:"assistant" mapstructure:"assistant" yaml:"assistant"`
	Server    ServerConfig    `json:"server"    mapstructure:"server"    yaml:"server"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `json:"path" mapstructure:"path" yaml:"path"`
}

// ModelConfig selects and configures the text-generation backend.
type ModelConfig struct {
	Provider  string        `json:"provider"              mapstructure:"provider"    yaml:"provider"`
	Name      string        `json:"name,omitempty"        mapstructure:"name"        yaml:"name,omitempty"`
	APIKey    string        `json:"api_key,omitempty"     mapstructure:"api_key"     yaml:"api_key,omitempty"`
	APIKeyEnv string        `json:"api_key_env,omitempty" mapstructure:"api_key_env" yaml:"api_key_env,omitempty"`
	BaseURL   string        `json:"base_url,omitempty"    mapstructure:"base_url"    yaml:"base_url,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty"     mapstructure:"timeout"     yaml:"timeout,omitempty"`
}

// AssistantConfig holds the defaults applied to records created from chat.
type AssistantConfig struct {
	DefaultPriority      string `json:"default_priority"       mapstructure:"default_priority"       yaml:"default_priority"`
	DefaultProjectStatus string `json:"default_project_status" mapstructure:"default_project_status" yaml:"default_project_status"`
	DefaultClientStatus  string `json:"default_client_status"  mapstructure:"default_client_status"  yaml:"default_client_status"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `json:"addr"                     mapstructure:"addr"           yaml:"addr"`
	BasePath     string `json:"base_path"                mapstructure:"base_path"      yaml:"base_path"`
	JWTSecret    string `json:"jwt_secret,omitempty"     mapstructure:"jwt_secret"     yaml:"jwt_secret,omitempty"`
	JWTSecretEnv string `json:"jwt_secret_env,omitempty" mapstructure:"jwt_secret_env" yaml:"jwt_secret_env,omitempty"`
}

// Default returns the configuration written by `freelo init`.
func Default() Config {
	return Config{
		Owner: "local",
		Database: DatabaseConfig{
			Path: filepath.Join(".freelo", "freelo.db"),
		},
		Model: ModelConfig{
			Provider:  ProviderGemini,
			Name:      defaultGeminiModel,
			APIKeyEnv: defaultGeminiKeyEnv,
			Timeout:   defaultModelTimeout,
		},
		Assistant: AssistantConfig{
			DefaultPriority:      "medium",
			DefaultProjectStatus: "active",
			DefaultClientStatus:  "active",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			BasePath:     "/v1",
			JWTSecretEnv: defaultJWTSecretEnv,
		},
	}
}

// ApplyDefaults fills zero values from Default.
func (c *Config) ApplyDefaults() {
	def := Default()
	if strings.TrimSpace(c.Owner) == "" {
		c.Owner = def.Owner
	}
	if c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.Model.Provider == "" {
		c.Model.Provider = def.Model.Provider
	}
	if c.Model.Name == "" {
		c.Model.Name = c.Model.DefaultName()
	}
	if c.Model.Timeout <= 0 {
		c.Model.Timeout = def.Model.Timeout
	}
	if c.Assistant.DefaultPriority == "" {
		c.Assistant.DefaultPriority = def.Assistant.DefaultPriority
	}
	if c.Assistant.DefaultProjectStatus == "" {
		c.Assistant.DefaultProjectStatus = def.Assistant.DefaultProjectStatus
	}
	if c.Assistant.DefaultClientStatus == "" {
		c.Assistant.DefaultClientStatus = def.Assistant.DefaultClientStatus
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = def.Server.BasePath
	}
}

// DefaultName returns the model used when none is configured.
func (m ModelConfig) DefaultName() string {
	if m.Provider == ProviderOpenAI {
		return defaultOpenAIModel
	}
	return defaultGeminiModel
}

// ResolveAPIKey returns the inline key or the value of the key env variable.
func (m ModelConfig) ResolveAPIKey() string {
	if key := strings.TrimSpace(m.APIKey); key != "" {
		return key
	}
	env := strings.TrimSpace(m.APIKeyEnv)
	if env == "" {
		env = defaultGeminiKeyEnv
		if m.Provider == ProviderOpenAI {
			env = defaultOpenAIKeyEnv
		}
	}
	return strings.TrimSpace(os.Getenv(env))
}

// ResolveJWTSecret returns the inline secret or the value of the secret env variable.
func (s ServerConfig) ResolveJWTSecret() string {
	if secret := strings.TrimSpace(s.JWTSecret); secret != "" {
		return secret
	}
	env := strings.TrimSpace(s.JWTSecretEnv)
	if env == "" {
		env = defaultJWTSecretEnv
	}
	return strings.TrimSpace(os.Getenv(env))
}
