package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThenLookup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	token, err := s.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, s.Lookup(ctx, token))
	assert.Equal(t, 1, s.Len())
}

func TestLookupUnknown(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.ErrorIs(t, s.Lookup(ctx, "nope"), ErrNotFound)
	assert.ErrorIs(t, s.Lookup(ctx, ""), ErrNotFound)
}

func TestRevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	token, err := s.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, token))
	assert.ErrorIs(t, s.Lookup(ctx, token), ErrNotFound)
	assert.NoError(t, s.Revoke(ctx, token))
	assert.NoError(t, s.Revoke(ctx, "never-issued"))
}

func TestRevokeLeavesOtherTokens(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, err := s.Create(ctx)
	require.NoError(t, err)
	b, err := s.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, a))
	assert.NoError(t, s.Lookup(ctx, b))
}

func TestTokensNeverExpireWithoutTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(0, 0)
	s := NewMemoryStore(WithClock(func() time.Time { return now }))

	token, err := s.Create(ctx)
	require.NoError(t, err)

	now = now.Add(24 * 365 * time.Hour)
	assert.NoError(t, s.Lookup(ctx, token))
}

func TestTokensExpireWithTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(0, 0)
	s := NewMemoryStore(WithTTL(time.Hour), WithClock(func() time.Time { return now }))

	token, err := s.Create(ctx)
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	assert.NoError(t, s.Lookup(ctx, token))

	now = now.Add(time.Minute)
	assert.ErrorIs(t, s.Lookup(ctx, token), ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	token, err := s.Create(ctx)
	require.NoError(t, err)

	s.Clear()
	assert.ErrorIs(t, s.Lookup(ctx, token), ErrNotFound)
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := s.Create(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			if err := s.Lookup(ctx, token); err != nil {
				t.Error(err)
			}
			s.Revoke(ctx, token)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, s.Len())
}
