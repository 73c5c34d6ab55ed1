package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRevokerTest(t *testing.T) (*RedisRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return NewRedisRevoker(rdb), mr
}

func TestRedisRevoker_RevokeUntilExpiry(t *testing.T) {
	rev, mr := newRevokerTest(t)
	ctx := context.Background()

	revoked, err := rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, rev.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL("revoked:jti-1")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	mr.FastForward(time.Hour + time.Second)
	revoked, err = rev.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevoker_ExpiredTokenIgnored(t *testing.T) {
	rev, mr := newRevokerTest(t)

	require.NoError(t, rev.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("revoked:old"))
}

func TestRedisRevoker_BackendDown(t *testing.T) {
	rev, mr := newRevokerTest(t)
	mr.Close()

	_, err := rev.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}

func TestAuthenticator_RevokedTokenRejected(t *testing.T) {
	rev, _ := newRevokerTest(t)
	ctx := context.Background()
	tokens := NewTokens([]byte("k"), time.Hour)
	authn := NewAuthenticator(tokens, rev)

	raw, _, err := tokens.Issue("u1")
	require.NoError(t, err)

	claims, err := authn.Authenticate(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	require.NoError(t, authn.Revoke(ctx, claims))

	_, err = authn.Authenticate(ctx, raw)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthenticator_WithoutRevoker(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokens([]byte("k"), time.Hour)
	authn := NewAuthenticator(tokens, nil)

	raw, claims, err := tokens.Issue("u1")
	require.NoError(t, err)
	require.NoError(t, authn.Revoke(ctx, claims))

	got, err := authn.Authenticate(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}
