package supabase

import (
	"fmt"
	"time"

	"github.com/napleton/fueltrakr/internal/infra/api"
)

// Config holds Supabase connection configuration.
type Config struct {
	ProjectID string `yaml:"project_id"`
	AnonKey   string `yaml:"anon_key"`
	// FunctionsURL overrides the derived edge-function origin, mainly for tests.
	FunctionsURL string `yaml:"functions_url"`
	// AuthURL overrides the derived GoTrue origin, mainly for tests.
	AuthURL string        `yaml:"auth_url"`
	Timeout time.Duration `yaml:"timeout"`
}

func (c Config) functionsURL() string {
	if c.FunctionsURL != "" {
		return c.FunctionsURL
	}
	return fmt.Sprintf("https://%s.supabase.co/functions/v1/make-server-218dc5b7", c.ProjectID)
}

func (c Config) authURL() string {
	if c.AuthURL != "" {
		return c.AuthURL
	}
	return fmt.Sprintf("https://%s.supabase.co/auth/v1", c.ProjectID)
}

// Client wraps the two Supabase surfaces the app talks to: the edge-function
// backend and the GoTrue auth REST API. Both share the resilient executor.
type Client struct {
	Functions *api.Client
	auth      *api.Client
	anonKey   string
}

// NewClient creates a Supabase client. The anon key is attached as the default
// bearer credential; authenticated calls override it per request.
func NewClient(cfg Config, retry api.RetryConfig) *Client {
	headers := map[string]string{
		"apikey":        cfg.AnonKey,
		"Authorization": "Bearer " + cfg.AnonKey,
	}
	return &Client{
		Functions: api.NewClient("supabase-functions", cfg.functionsURL(), headers, retry, cfg.Timeout),
		auth:      api.NewClient("supabase-auth", cfg.authURL(), headers, retry, cfg.Timeout),
		anonKey:   cfg.AnonKey,
	}
}

// BearerHeader builds the Authorization header for an access token.
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
