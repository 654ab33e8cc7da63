package config

import (
	"time"

	"github.com/napleton/fueltrakr/internal/infra/api"
	redisstore "github.com/napleton/fueltrakr/internal/infra/redis"
	"github.com/napleton/fueltrakr/internal/infra/search"
	"github.com/napleton/fueltrakr/internal/infra/supabase"
)

// AppConfig represents the top-level configuration, resolved once at startup
// and passed by value into each service constructor.
type AppConfig struct {
	App      AppSettings       `yaml:"app"`
	Supabase supabase.Config   `yaml:"supabase"`
	Search   search.Config     `yaml:"elasticsearch"`
	Redis    redisstore.Config `yaml:"redis"`
	Retry    RetrySettings     `yaml:"retry"`
	Logging  LoggingConfig     `yaml:"logging"`
}

// AppSettings holds operating-mode toggles. Production defaults: demo mode
// off, authentication required.
type AppSettings struct {
	DemoMode    bool   `yaml:"demo_mode"`
	SkipAuth    bool   `yaml:"skip_auth"`
	AutoLogin   bool   `yaml:"auto_login"`
	DefaultRole string `yaml:"default_role"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// RetrySettings is the serializable form of the executor's retry policy.
type RetrySettings struct {
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
}

// Policy converts the settings into an executor retry policy with the default
// transient-failure predicate.
func (r RetrySettings) Policy() api.RetryConfig {
	return api.RetryConfig{
		MaxRetries:  r.MaxRetries,
		BaseDelay:   r.BaseDelay,
		MaxDelay:    r.MaxDelay,
		ShouldRetry: api.DefaultShouldRetry,
	}
}
