package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DecodesDurationsAndAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `owner: ana
model:
  provider: openai
  timeout: 45s
assistant:
  default_priority: high
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "ana", cfg.Owner)
	assert.Equal(t, ProviderOpenAI, cfg.Model.Provider)
	assert.Equal(t, defaultOpenAIModel, cfg.Model.Name)
	assert.Equal(t, 45*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "high", cfg.Assistant.DefaultPriority)
	assert.Equal(t, "active", cfg.Assistant.DefaultProjectStatus)
	assert.Equal(t, "/v1", cfg.Server.BasePath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `model:
  provider: gemini
`)
	t.Setenv("FREELO_OWNER", "from-env")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Owner)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, `model:
  provider: llama
`)

	_, err := Load(viper.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config schema validation failed")
}

func TestLoad_DefaultConfigRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(Default())
	require.NoError(t, err)
	path := writeConfig(t, string(data))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateSettings_RejectsBadPriority(t *testing.T) {
	t.Parallel()

	settings := map[string]any{
		"model": map[string]any{"provider": ProviderGemini},
		"assistant": map[string]any{
			"default_priority": "urgent",
		},
	}
	require.Error(t, ValidateSettings(settings))
}

func TestValidateSettings_RequiresModel(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateSettings(map[string]any{"owner": "x"}))
}

func TestModelConfig_ResolveAPIKey(t *testing.T) {
	t.Setenv("FREELO_TEST_KEY", " secret ")

	assert.Equal(t, "inline", ModelConfig{APIKey: "inline", APIKeyEnv: "FREELO_TEST_KEY"}.ResolveAPIKey())
	assert.Equal(t, "secret", ModelConfig{APIKeyEnv: "FREELO_TEST_KEY"}.ResolveAPIKey())

	t.Setenv("OPENAI_API_KEY", "oa")
	assert.Equal(t, "oa", ModelConfig{Provider: ProviderOpenAI}.ResolveAPIKey())
}

func TestServerConfig_ResolveJWTSecret(t *testing.T) {
	t.Setenv("FREELO_JWT_SECRET", "s3cr3t")

	assert.Equal(t, "s3cr3t", ServerConfig{}.ResolveJWTSecret())
	assert.Equal(t, "inline", ServerConfig{JWTSecret: "inline"}.ResolveJWTSecret())
}
