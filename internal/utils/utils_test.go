package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedis starts an in-process Redis
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// Tokens round-trip and carry a unique id for the denylist
func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "test-secret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.NotEmpty(t, claims.ID)

	// A second token for the same user gets a different id
	other, err := GenerateJWT(42, "test-secret")
	require.NoError(t, err)
	otherClaims, err := ParseJWT(other, "test-secret")
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)

	// The wrong secret does not verify
	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

// Cached values round-trip through JSON and disappear on delete
func TestCacheRoundTrip(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}
	require.NoError(t, SetCache(ctx, rdb, "key", payload{Name: "value"}, time.Minute))

	var got payload
	found, err := GetCache(ctx, rdb, "key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", got.Name)

	require.NoError(t, DeleteCache(ctx, rdb, "key"))
	found, err = GetCache(ctx, rdb, "key", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

// Denied token ids are reported until their entry expires
func TestTokenDenylist(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	denied, err := IsTokenDenied(ctx, rdb, "token-id")
	require.NoError(t, err)
	assert.False(t, denied)

	require.NoError(t, DenyToken(ctx, rdb, "token-id", time.Minute))

	denied, err = IsTokenDenied(ctx, rdb, "token-id")
	require.NoError(t, err)
	assert.True(t, denied)
}
