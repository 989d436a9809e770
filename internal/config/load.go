package config

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// EnvPrefix prefixes environment overrides, e.g. FREELO_MODEL_PROVIDER.
const EnvPrefix = "FREELO"

// Load reads the config file at path into v, validates it and decodes it.
func Load(v *viper.Viper, path string) (Config, error) {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := ValidateSettings(v.AllSettings()); err != nil {
		return Config{}, err
	}
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// setDefaults registers every key so environment overrides apply even when
// the file omits them. Provider-dependent keys stay empty for ApplyDefaults.
func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("owner", def.Owner)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("model.provider", def.Model.Provider)
	v.SetDefault("model.name", "")
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.api_key_env", "")
	v.SetDefault("model.base_url", "")
	v.SetDefault("model.timeout", def.Model.Timeout.String())
	v.SetDefault("assistant.default_priority", def.Assistant.DefaultPriority)
	v.SetDefault("assistant.default_project_status", def.Assistant.DefaultProjectStatus)
	v.SetDefault("assistant.default_client_status", def.Assistant.DefaultClientStatus)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.base_path", def.Server.BasePath)
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.jwt_secret_env", "")
}

// ValidateSettings validates raw config settings against the JSON schema.
func ValidateSettings(settings map[string]any) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(settings)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate config schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)

	return fmt.Errorf("config schema validation failed: %s", strings.Join(errs, "; "))
}
