package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

// DefaultTTL is how long a stored identity stays valid after it was last written.
const DefaultTTL = 7 * 24 * time.Hour

// Store holds the process-wide session. Only the session router mutates it;
// workflows read it when they need the traveler's id.
type Store struct {
	mu        sync.RWMutex
	storage   Storage
	ttl       time.Duration
	now       func() time.Time
	logger    *logger.Logger
	current   Session
	expiresAt time.Time
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore loads the persisted identity. A missing or expired record yields an
// anonymous session; expired records are erased.
func NewStore(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  logger.Discard(),
		current: Anonymous(),
	}
	for _, opt := range opts {
		opt(s)
	}

	rec, found, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("init identity store: %w", err)
	}
	if !found {
		return s, nil
	}

	if !s.now().Before(rec.ExpiresAt) {
		s.logger.Info("Stored session expired at %s, starting anonymous", rec.ExpiresAt.Format(time.RFC3339))
		if err := storage.Delete(ctx); err != nil {
			s.logger.Warn("Failed to erase expired session: %v", err)
		}
		return s, nil
	}

	s.current = Resolve(rec.Token)
	s.expiresAt = rec.ExpiresAt
	s.logger.Debug("Restored %s session", s.current)
	return s, nil
}

// Get returns the current session, anonymous once the stored one has expired.
func (s *Store) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.current.IsAnonymous() && !s.now().Before(s.expiresAt) {
		return Anonymous()
	}
	return s.current
}

// ExpiresAt reports when the current session lapses. Zero for anonymous.
func (s *Store) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Set classifies token and persists it.
func (s *Store) Set(ctx context.Context, token string) (Session, error) {
	session := Resolve(token)
	if err := s.Put(ctx, session); err != nil {
		return Anonymous(), err
	}
	return session, nil
}

// Put persists an already classified session with a fresh expiry.
func (s *Store) Put(ctx context.Context, session Session) error {
	if session.IsAnonymous() {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{Token: session.Token(), ExpiresAt: s.now().Add(s.ttl)}
	if err := s.storage.Save(ctx, rec); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}

	s.current = session
	s.expiresAt = rec.ExpiresAt
	s.logger.Debug("Stored %s session until %s", session, rec.ExpiresAt.Format(time.RFC3339))
	return nil
}

// Clear erases the identity. The in-memory session is dropped even when the
// durable record could not be removed.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Anonymous()
	s.expiresAt = time.Time{}

	if err := s.storage.Delete(ctx); err != nil {
		return fmt.Errorf("erase identity: %w", err)
	}
	return nil
}
