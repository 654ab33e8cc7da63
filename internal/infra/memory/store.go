package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

// Store holds the demo-mode dataset. All access goes through the mutex so the
// store stays safe under concurrent callers; the demo list is never handed
// out by reference.
type Store struct {
	mu          sync.RWMutex
	users       []domain.User
	credentials map[string]string
	entries     []domain.FuelEntry
	now         func() time.Time
}

// NewStore creates a store seeded with the demo fixtures.
func NewStore() *Store {
	now := time.Now
	return &Store{
		users:       demoUsers(),
		credentials: demoCredentials(),
		entries:     demoEntries(now().UTC()),
		now:         now,
	}
}

// SetClock overrides the store's clock, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Authenticate checks demo credentials and returns the matching user.
func (s *Store) Authenticate(email, password string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	normalized := strings.ToLower(strings.TrimSpace(email))
	want, ok := s.credentials[normalized]
	if !ok || want != password {
		return nil, domain.ErrInvalidCredentials
	}

	for _, u := range s.users {
		if u.Email == normalized {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

// UserByEmail returns the demo user with the given email.
func (s *Store) UserByEmail(email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == normalized {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Users returns a copy of the demo user list.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// UpdateUserRole changes a demo user's role.
func (s *Store) UpdateUserRole(id string, role domain.Role) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Role = role
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteUser removes a demo user and their entries.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.UserID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

// CreateEntry builds a fully-populated entry from the input, prepends it, and
// returns the stored record.
func (s *Store) CreateEntry(user domain.User, input domain.CreateFuelEntry) *domain.FuelEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	ts := input.Timestamp
	if ts.IsZero() {
		ts = now
	}

	entry := domain.FuelEntry{
		ID:           "demo-" + uuid.NewString(),
		UserID:       user.ID,
		UserName:     user.Name,
		StockNumber:  input.StockNumber,
		VIN:          input.VIN,
		Mileage:      input.Mileage,
		FuelAmount:   input.FuelAmount,
		FuelCost:     input.FuelCost,
		Timestamp:    ts,
		Notes:        input.Notes,
		Location:     input.Location,
		ReceiptPhoto: input.ReceiptPhoto,
		VINPhoto:     input.VINPhoto,
		SubmittedAt:  now,
	}

	s.entries = append([]domain.FuelEntry{entry}, s.entries...)

	stored := entry
	return &stored
}

// Entries returns a copy of all demo entries, newest first.
func (s *Store) Entries() []domain.FuelEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.FuelEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// EntriesByUser returns a copy of a user's entries, newest first.
func (s *Store) EntriesByUser(userID string) []domain.FuelEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.FuelEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
