package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

const sessionKey = "fueltrakr:session"

// Config holds Redis connection configuration for the session store.
type Config struct {
	URL        string        `yaml:"url"`
	Password   string        `yaml:"password"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// SessionStore persists the live-mode session across process restarts so
// startup can restore a prior sign-in.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionStore connects to Redis and verifies the connection.
func NewSessionStore(cfg Config) (*SessionStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (s *SessionStore) Close() error {
	return s.rdb.Close()
}

// Save stores the session with the configured TTL.
func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when there is none.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &sess, nil
}

// Clear removes the stored session.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
