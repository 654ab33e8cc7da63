package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/napleton/fueltrakr/internal/core/domain"
	"github.com/napleton/fueltrakr/internal/export"
	"github.com/napleton/fueltrakr/internal/infra/api"
	"github.com/napleton/fueltrakr/internal/infra/memory"
	"github.com/napleton/fueltrakr/internal/infra/supabase"
)

// Admin handles user management and accounting export.
type Admin struct {
	demo    bool
	store   *memory.Store
	backend *supabase.Client
}

// Users returns every registered user.
func (s *Admin) Users(ctx context.Context, sess domain.Session) ([]domain.User, error) {
	if s.demo {
		slog.Debug("demo mode: returning demo users")
		return s.store.Users(), nil
	}

	var users []domain.User
	err := s.backend.Functions.Get(ctx, "/admin/users", supabase.BearerHeader(sess.AccessToken), &users)
	if err != nil {
		slog.Error("failed to fetch users", "error", err)
		return nil, fmt.Errorf("network error while fetching users: %w", err)
	}
	return users, nil
}

// UpdateUserRole changes a user's role.
func (s *Admin) UpdateUserRole(ctx context.Context, sess domain.Session, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, &domain.ValidationError{Field: "role", Reason: "must be admin or porter"}
	}

	if s.demo {
		return s.store.UpdateUserRole(userID, role)
	}

	var user domain.User
	err := s.backend.Functions.Put(ctx, "/admin/users/"+userID+"/role",
		map[string]domain.Role{"role": role}, supabase.BearerHeader(sess.AccessToken), &user)
	if err != nil {
		slog.Error("failed to update user role", "user_id", userID, "role", role, "error", err)
		return nil, fmt.Errorf("network error while updating user role: %w", err)
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (s *Admin) DeleteUser(ctx context.Context, sess domain.Session, userID string) error {
	if s.demo {
		return s.store.DeleteUser(userID)
	}

	err := s.backend.Functions.Delete(ctx, "/admin/users/"+userID, supabase.BearerHeader(sess.AccessToken), nil)
	if err != nil {
		slog.Error("failed to delete user", "user_id", userID, "error", err)
		return fmt.Errorf("network error while deleting user: %w", err)
	}
	return nil
}

// ExportCSV returns the accounting report. Demo mode renders the in-memory
// entries locally; live mode downloads the backend's export.
func (s *Admin) ExportCSV(ctx context.Context, sess domain.Session) ([]byte, error) {
	slog.Info("exporting accounting data")

	if s.demo {
		return export.Render(s.store.Entries())
	}

	data, err := s.backend.Functions.Do(ctx, api.Request{
		Method:  http.MethodGet,
		Path:    "/admin/export",
		Headers: supabase.BearerHeader(sess.AccessToken),
	})
	if err != nil {
		slog.Error("failed to export data", "error", err)
		return nil, fmt.Errorf("failed to export data: %w", err)
	}
	return data, nil
}
