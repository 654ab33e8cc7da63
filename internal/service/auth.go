package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/napleton/fueltrakr/internal/core/domain"
	"github.com/napleton/fueltrakr/internal/infra/api"
	"github.com/napleton/fueltrakr/internal/infra/memory"
	"github.com/napleton/fueltrakr/internal/infra/supabase"
)

// Auth handles sign-up, sign-in, session restoration, and sign-out.
//
// Session lifecycle: SignedOut -> Authenticating -> SignedIn(token) on
// success, back to SignedOut with an error otherwise; SignOut always lands
// in SignedOut.
type Auth struct {
	demo     bool
	store    *memory.Store
	backend  *supabase.Client
	sessions SessionStore
}

// SignUp registers a new porter account.
func (a *Auth) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	slog.Info("attempting user signup", "email", email)

	if a.demo {
		return &domain.User{
			ID:    "demo-new-user",
			Email: email,
			Name:  name,
			Role:  domain.RolePorter,
		}, nil
	}

	var resp struct {
		User  *domain.User `json:"user"`
		Error string       `json:"error"`
	}
	err := a.backend.Functions.Post(ctx, "/signup",
		map[string]string{"email": email, "password": password, "name": name}, nil, &resp)
	if err != nil {
		slog.Error("signup request failed", "email", email, "error", err)
		return nil, fmt.Errorf("network error during signup: %w", err)
	}
	if resp.Error != "" {
		slog.Warn("signup rejected", "email", email, "error", resp.Error)
		return nil, &domain.ValidationError{Reason: resp.Error}
	}
	if resp.User == nil {
		return nil, errors.New("signup returned no user")
	}

	slog.Info("signup successful", "email", email)
	return resp.User, nil
}

// SignIn authenticates and returns the session. In live mode the user
// profile is fetched from the backend after the token grant; a missing
// profile surfaces domain.ErrNotFound.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	slog.Info("attempting user signin", "email", email)

	if a.demo {
		user, err := a.store.Authenticate(email, password)
		if err != nil {
			slog.Warn("invalid demo credentials", "email", email)
			return nil, fmt.Errorf("invalid demo credentials, check your email and password: %w", err)
		}

		sess := &domain.Session{
			User:        *user,
			AccessToken: "demo-token-" + string(user.Role),
		}
		_ = a.sessions.Save(ctx, sess)
		slog.Info("demo signin successful", "email", email, "role", user.Role)
		return sess, nil
	}

	grant, err := a.backend.SignInWithPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			slog.Warn("signin rejected", "email", email)
			return nil, fmt.Errorf("invalid login credentials, check your email and password: %w", err)
		}
		slog.Error("signin request failed", "email", email, "error", err)
		return nil, fmt.Errorf("network error during sign in, check your connection: %w", err)
	}

	user, err := a.fetchProfile(ctx, grant.AccessToken)
	if err != nil {
		slog.Error("profile fetch failed after signin", "email", email, "error", err)
		return nil, err
	}

	sess := &domain.Session{
		User:         *user,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
	}
	if err := a.sessions.Save(ctx, sess); err != nil {
		slog.Warn("failed to persist session", "error", err)
	}

	slog.Info("signin successful", "email", email)
	return sess, nil
}

// Session attempts to restore a prior sign-in. It never fails: any problem
// resolves to signed out (nil session).
func (a *Auth) Session(ctx context.Context) *domain.Session {
	if a.demo {
		slog.Debug("demo mode: skipping session restore")
		return nil
	}

	sess, err := a.sessions.Load(ctx)
	if err != nil || sess == nil {
		if err != nil {
			slog.Warn("failed to restore session", "error", err)
		}
		return nil
	}

	// Revalidate the token against the backend before trusting it.
	user, err := a.fetchProfile(ctx, sess.AccessToken)
	if err != nil {
		slog.Warn("stored session no longer valid", "error", err)
		_ = a.sessions.Clear(ctx)
		return nil
	}

	sess.User = *user
	slog.Debug("session restored", "email", user.Email)
	return sess
}

// SignOut ends the session. The stored session is cleared even if the
// backend call fails.
func (a *Auth) SignOut(ctx context.Context, sess *domain.Session) error {
	slog.Info("user signing out")
	defer func() {
		_ = a.sessions.Clear(ctx)
	}()

	if a.demo || sess == nil {
		return nil
	}
	if err := a.backend.SignOut(ctx, sess.AccessToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// RefreshToken exchanges the session's refresh token for a fresh access
// token and persists the updated session.
func (a *Auth) RefreshToken(ctx context.Context, sess *domain.Session) (string, error) {
	if a.demo {
		return sess.AccessToken, nil
	}
	if sess.RefreshToken == "" {
		return "", domain.ErrNoSession
	}

	grant, err := a.backend.RefreshSession(ctx, sess.RefreshToken)
	if err != nil {
		slog.Warn("token refresh failed", "error", err)
		return "", fmt.Errorf("refresh token: %w", err)
	}

	sess.AccessToken = grant.AccessToken
	if grant.RefreshToken != "" {
		sess.RefreshToken = grant.RefreshToken
	}
	_ = a.sessions.Save(ctx, sess)
	return grant.AccessToken, nil
}

func (a *Auth) fetchProfile(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	err := a.backend.Functions.Get(ctx, "/profile", supabase.BearerHeader(token), &user)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) && se.Code == 404 {
			return nil, fmt.Errorf("profile not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("network error fetching profile: %w", err)
	}
	return &user, nil
}
