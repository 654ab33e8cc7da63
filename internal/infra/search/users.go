package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

// Users provides typed access to the users collection.
type Users struct {
	c *Client
}

// Users returns the user collection service.
func (c *Client) Users() *Users {
	return &Users{c: c}
}

func (u *Users) index() string {
	return u.c.IndexName(KindUsers)
}

// Create indexes a new user record. Role defaults to porter; timestamps are
// filled in when missing.
func (u *Users) Create(ctx context.Context, rec domain.UserRecord) (*domain.UserRecord, error) {
	now := time.Now().UTC()
	if rec.Role == "" {
		rec.Role = domain.RolePorter
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}

	if err := u.c.IndexDoc(ctx, u.index(), rec.ID, rec); err != nil {
		return nil, fmt.Errorf("index user: %w", err)
	}
	return &rec, nil
}

// ByID fetches a user record.
func (u *Users) ByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	var rec domain.UserRecord
	if err := u.c.GetDoc(ctx, u.index(), id, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ByEmail looks a user up by exact email.
func (u *Users) ByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	body := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"email": email},
		},
		"size": 1,
	}
	result, err := u.c.Search(ctx, u.index(), body)
	if err != nil {
		return nil, fmt.Errorf("search user by email: %w", err)
	}
	if len(result.Hits.Hits) == 0 {
		return nil, domain.ErrNotFound
	}

	var rec domain.UserRecord
	if err := json.Unmarshal(result.Hits.Hits[0].Source, &rec); err != nil {
		return nil, fmt.Errorf("parse user: %w", err)
	}
	return &rec, nil
}

// UpdateRole changes a user's role.
func (u *Users) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	doc := map[string]any{
		"role":       role,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	return u.c.UpdateDoc(ctx, u.index(), id, doc)
}

// Delete removes a user record.
func (u *Users) Delete(ctx context.Context, id string) error {
	return u.c.DeleteDoc(ctx, u.index(), id)
}

// List returns all users, newest first.
func (u *Users) List(ctx context.Context, limit int) ([]domain.UserRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	body := map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
		"sort":  []any{map[string]any{"created_at": "desc"}},
		"size":  limit,
	}
	result, err := u.c.Search(ctx, u.index(), body)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	records := make([]domain.UserRecord, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var rec domain.UserRecord
		if err := json.Unmarshal(hit.Source, &rec); err != nil {
			return nil, fmt.Errorf("parse user %s: %w", hit.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
