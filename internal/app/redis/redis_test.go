package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"licensestore/internal/app/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := New(context.Background(), config.RedisConfig{
		Host:        mr.Host(),
		Port:        port,
		DialTimeout: time.Second,
		ReadTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestJWTBlacklist(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)

	blacklisted, err := client.IsJWTBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, client.WriteJWTToBlacklist(ctx, "token-a", time.Minute))

	blacklisted, err = client.IsJWTBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, blacklisted)
	assert.True(t, mr.Exists("licensestore.jwt.token-a"))

	mr.FastForward(2 * time.Minute)
	blacklisted, err = client.IsJWTBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, blacklisted, "entry expires together with the token")
}

func TestIsJWTBlacklistedRedisDown(t *testing.T) {
	client, mr := newTestClient(t)
	mr.Close()

	_, err := client.IsJWTBlacklisted(context.Background(), "token-a")
	assert.Error(t, err)
}

func TestNewUnreachable(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 100 * time.Millisecond,
		ReadTimeout: 100 * time.Millisecond,
	})
	assert.Error(t, err)
}
