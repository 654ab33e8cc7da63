package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/napleton/fueltrakr/internal/core/domain"
	"github.com/napleton/fueltrakr/internal/infra/api"
)

// TokenResponse is the GoTrue token grant payload.
type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         AuthUser `json:"user"`
}

// AuthUser is the GoTrue view of a user. The full profile lives in the
// backend's users collection.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignInWithPassword exchanges credentials for a session token.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*TokenResponse, error) {
	var resp TokenResponse
	err := c.auth.Post(ctx, "/token?grant_type=password",
		map[string]string{"email": email, "password": password}, nil, &resp)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) && (se.Code == 400 || se.Code == 401) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, errors.New("no session created")
	}
	return &resp, nil
}

// RefreshSession exchanges a refresh token for a new session token.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var resp TokenResponse
	err := c.auth.Post(ctx, "/token?grant_type=refresh_token",
		map[string]string{"refresh_token": refreshToken}, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	return &resp, nil
}

// SignOut revokes the session's token. A missing or already-revoked token is
// not an error.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	err := c.auth.Post(ctx, "/logout", nil, BearerHeader(accessToken), nil)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) && (se.Code == 401 || se.Code == 404) {
			return nil
		}
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// IsInvalidCredentials reports whether a GoTrue error message denotes bad
// credentials rather than a transport problem.
func IsInvalidCredentials(err error) bool {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "invalid login credentials")
}
