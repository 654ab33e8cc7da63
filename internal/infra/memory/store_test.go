package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

func TestAuthenticate(t *testing.T) {
	store := NewStore()

	tests := []struct {
		name     string
		email    string
		password string
		wantRole domain.Role
		wantErr  bool
	}{
		{"admin", "admin@napleton.com", "admin123", domain.RoleAdmin, false},
		{"porter", "porter@napleton.com", "porter123", domain.RolePorter, false},
		{"mixed case email", "Admin@Napleton.COM", "admin123", domain.RoleAdmin, false},
		{"wrong password", "admin@napleton.com", "porter123", "", true},
		{"unknown user", "ghost@napleton.com", "admin123", "", true},
	}

	for _, tt := range tests {
		user, err := store.Authenticate(tt.email, tt.password)
		if tt.wantErr {
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("%s: expected ErrInvalidCredentials, got %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if user.Role != tt.wantRole {
			t.Errorf("%s: expected role %s, got %s", tt.name, tt.wantRole, user.Role)
		}
	}
}

func TestCreateEntry_PrependsWithFixedClock(t *testing.T) {
	store := NewStore()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return fixed })

	user := domain.User{ID: "demo-porter", Name: "John Porter"}
	entry := store.CreateEntry(user, domain.CreateFuelEntry{
		StockNumber: "STK1",
		Mileage:     45000,
		FuelAmount:  12.5,
		FuelCost:    42.50,
	})

	if entry.ID == "" {
		t.Error("expected generated id")
	}
	if !entry.SubmittedAt.Equal(fixed) {
		t.Errorf("expected SubmittedAt %v, got %v", fixed, entry.SubmittedAt)
	}
	if !entry.Timestamp.Equal(fixed) {
		t.Errorf("expected zero timestamp to default to now, got %v", entry.Timestamp)
	}

	entries := store.Entries()
	if entries[0].ID != entry.ID {
		t.Errorf("expected new entry first, got %s", entries[0].ID)
	}
}

func TestEntriesByUser(t *testing.T) {
	store := NewStore()

	mine := store.EntriesByUser("demo-porter")
	if len(mine) != 2 {
		t.Fatalf("expected 2 seeded porter entries, got %d", len(mine))
	}
	if len(store.EntriesByUser("demo-admin")) != 0 {
		t.Error("expected no admin entries")
	}
}

func TestUsersCopyOnRead(t *testing.T) {
	store := NewStore()

	users := store.Users()
	users[0].Email = "tampered@example.com"

	again := store.Users()
	if again[0].Email == "tampered@example.com" {
		t.Error("Users returned a reference to internal state")
	}
}
