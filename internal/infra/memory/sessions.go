package memory

import (
	"context"
	"sync"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

// SessionStore keeps the current session in process memory. It backs demo
// mode and live deployments without a configured Redis.
type SessionStore struct {
	mu      sync.Mutex
	session *domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.session = &copied
	return nil
}

// Load returns the stored session, or nil when signed out.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
