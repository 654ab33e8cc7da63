package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/napleton/fueltrakr/internal/core/config"
	"github.com/napleton/fueltrakr/internal/core/domain"
	"github.com/napleton/fueltrakr/internal/infra/memory"
	"github.com/napleton/fueltrakr/internal/infra/supabase"
)

// SessionStore persists the current session between runs. Load returns
// (nil, nil) when signed out.
type SessionStore interface {
	Save(ctx context.Context, sess *domain.Session) error
	Load(ctx context.Context) (*domain.Session, error)
	Clear(ctx context.Context) error
}

// Services bundles the domain facades. Every facade honors the same
// contract whether it runs against the live backend or the demo dataset;
// the mode is fixed at construction, never a package-level flag.
type Services struct {
	Auth  *Auth
	Fuel  *Fuel
	Admin *Admin
}

// New wires the facades for the configured mode. In live mode the Supabase
// client carries all backend traffic; in demo mode the seeded in-memory
// store does, with no network calls at all.
func New(cfg config.AppConfig, sessions SessionStore) *Services {
	demo := cfg.App.DemoMode
	store := memory.NewStore()

	var backend *supabase.Client
	if !demo {
		backend = supabase.NewClient(cfg.Supabase, cfg.Retry.Policy())
	}
	if sessions == nil {
		sessions = memory.NewSessionStore()
	}

	validate := validator.New()

	return &Services{
		Auth:  &Auth{demo: demo, store: store, backend: backend, sessions: sessions},
		Fuel:  &Fuel{demo: demo, store: store, backend: backend, validate: validate},
		Admin: &Admin{demo: demo, store: store, backend: backend},
	}
}
