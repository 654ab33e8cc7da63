package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

// Load resolves configuration from layered sources, first available wins:
// environment variables override the YAML file, the file overrides the
// production defaults. A missing file is not an error; env-only deployments
// are supported.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// Env-only configuration
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setBool(&cfg.App.DemoMode, "DEMO_MODE")
	setBool(&cfg.App.SkipAuth, "SKIP_AUTH")
	setBool(&cfg.App.AutoLogin, "AUTO_LOGIN")
	setString(&cfg.App.DefaultRole, "DEFAULT_USER_ROLE")

	setString(&cfg.Logging.Level, "LOG_LEVEL")

	setString(&cfg.Supabase.ProjectID, "SUPABASE_PROJECT_ID")
	setString(&cfg.Supabase.AnonKey, "SUPABASE_ANON_KEY")
	setString(&cfg.Supabase.FunctionsURL, "SUPABASE_FUNCTIONS_URL")
	setString(&cfg.Supabase.AuthURL, "SUPABASE_AUTH_URL")

	setString(&cfg.Search.Node, "ELASTICSEARCH_NODE")
	setString(&cfg.Search.CloudID, "ELASTICSEARCH_CLOUD_ID")
	setString(&cfg.Search.APIKey, "ELASTICSEARCH_API_KEY")
	setString(&cfg.Search.Username, "ELASTICSEARCH_USERNAME")
	setString(&cfg.Search.Password, "ELASTICSEARCH_PASSWORD")
	setString(&cfg.Search.IndexPrefix, "ELASTICSEARCH_INDEX_PREFIX")

	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
}

func applyDefaults(cfg *AppConfig) {
	if cfg.App.DefaultRole == "" {
		cfg.App.DefaultRole = string(domain.RolePorter)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Search.IndexPrefix == "" {
		cfg.Search.IndexPrefix = "fueltrakr"
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = 3
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = 1 * time.Second
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = 30 * time.Second
	}
	if cfg.Supabase.Timeout == 0 {
		cfg.Supabase.Timeout = 10 * time.Second
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 10 * time.Second
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v == "true" || v == "1"
	}
}
