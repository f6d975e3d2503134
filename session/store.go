// Package session holds the set of live admin console tokens.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-storefront/utils"
)

// ErrNotFound is returned when a token is unknown or has expired
var ErrNotFound = errors.New("session not found")

// Store issues, checks and revokes opaque session tokens
type Store interface {
	Create(ctx context.Context) (string, error)
	Lookup(ctx context.Context, token string) error
	Revoke(ctx context.Context, token string) error
}

// MemoryStore keeps tokens for the lifetime of the process.
// A zero TTL means tokens never expire.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a MemoryStore
type Option func(*MemoryStore)

// WithTTL expires tokens ttl after issue
func WithTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) { s.ttl = ttl }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context) (string, error) {
	issued := s.now()
	token, err := utils.GenerateToken(issued)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = issued
	return token, nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) error {
	if token == "" {
		return ErrNotFound
	}

	s.mu.RLock()
	issued, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	if s.ttl > 0 && s.now().Sub(issued) >= s.ttl {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return ErrNotFound
	}
	return nil
}

// Revoke removes token if present. Revoking an unknown token is not an error.
func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

// Clear drops every token
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]time.Time)
}

// Len returns the number of tokens held, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
