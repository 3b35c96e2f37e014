package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/lifewood/adminhub/internal/domain/auth"
	"github.com/lifewood/adminhub/internal/testutil"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		UserID:    "admin",
		Email:     "admin@lifewood.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.Email, retrieved.Email)
	assert.Equal(t, session.Role, retrieved.Role)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_RejectsExpired(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	err := store.Save(context.Background(), domainauth.Session{
		ID:        "expired",
		Email:     "admin@lifewood.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	assert.Error(t, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "to-delete",
		Email:     "admin@lifewood.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, "to-delete"))

	_, err := store.Get(ctx, "to-delete")
	assert.Equal(t, ErrNotFound, err)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "to-delete"))
}

func TestRateLimiter_AllowAndReset(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	limiter := NewRateLimiter(client, RateLimiterOptions{
		MaxAttempts: 2,
		Window:      time.Minute,
	})
	ctx := context.Background()

	ok, err := limiter.Allow(ctx, "admin@lifewood.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "admin@lifewood.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "admin@lifewood.com")
	require.NoError(t, err)
	assert.False(t, ok, "third attempt exceeds the limit")

	require.NoError(t, limiter.Reset(ctx, "admin@lifewood.com"))
	ok, err = limiter.Allow(ctx, "admin@lifewood.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCache_RoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	missing, err := cache.Get(ctx, "dashboard:snapshot")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, cache.Set(ctx, "dashboard:snapshot", []byte(`{"contacts":3}`), time.Minute))

	got, err := cache.Get(ctx, "dashboard:snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"contacts":3}`), got)

	existed, err := cache.Delete(ctx, "dashboard:snapshot")
	require.NoError(t, err)
	assert.True(t, existed)
}
