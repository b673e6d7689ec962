package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_FirstHitStartsWindow(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 10, time.Minute)

	mock.ExpectIncr("ratelimit:login:10.0.0.1").SetVal(1)
	mock.ExpectExpire("ratelimit:login:10.0.0.1", time.Minute).SetVal(true)

	allowed, err := limiter.Allow(context.Background(), "login", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllow_AtLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 10, time.Minute)

	mock.ExpectIncr("ratelimit:login:10.0.0.1").SetVal(10)

	allowed, err := limiter.Allow(context.Background(), "login", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllow_OverLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 10, time.Minute)

	mock.ExpectIncr("ratelimit:login:10.0.0.1").SetVal(11)

	allowed, err := limiter.Allow(context.Background(), "login", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAllow_RedisErrorFailsOpen(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 10, time.Minute)

	mock.ExpectIncr("ratelimit:login:10.0.0.1").SetErr(errors.New("connection refused"))

	allowed, err := limiter.Allow(context.Background(), "login", "10.0.0.1")
	require.Error(t, err)
	assert.True(t, allowed)
}

func TestAllow_ScopesKeysSeparately(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 1, time.Minute)

	mock.ExpectIncr("ratelimit:login:10.0.0.1").SetVal(2)
	mock.ExpectIncr("ratelimit:login:10.0.0.2").SetVal(1)
	mock.ExpectExpire("ratelimit:login:10.0.0.2", time.Minute).SetVal(true)

	blocked, err := limiter.Allow(context.Background(), "login", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	allowed, err := limiter.Allow(context.Background(), "login", "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
