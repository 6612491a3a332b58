package ratelimit_test

import (
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/mocks"
	"github.com/modemobile/todo-rewards/internal/ratelimit"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// fakeNow lets a test move the mocked clock forward
type fakeNow struct {
	now time.Time
}

func setupLimiter(t *testing.T, cfg ratelimit.Config) (ratelimit.Limiter, *fakeNow) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)

	current := &fakeNow{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return current.now }).AnyTimes()

	l, err := ratelimit.NewLimiter(cfg, clock)
	require.NoError(t, err)
	t.Cleanup(l.Close)

	return l, current
}

func TestLimiter_AllowsUpToMaxRequests(t *testing.T) {
	l, _ := setupLimiter(t, ratelimit.Config{Window: time.Minute, MaxRequests: 3, MaxClients: 10})

	for i := 0; i < 3; i++ {
		d := l.Allow("10.0.0.1")
		assert.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, 3, d.Limit)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := l.Allow("10.0.0.1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, 20*time.Second, d.RetryAfter)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := setupLimiter(t, ratelimit.Config{Window: time.Minute, MaxRequests: 1, MaxClients: 10})

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
}

func TestLimiter_Refills(t *testing.T) {
	l, now := setupLimiter(t, ratelimit.Config{Window: time.Minute, MaxRequests: 2, MaxClients: 10})

	assert.True(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("a").Allowed)

	denied := l.Allow("a")
	require.False(t, denied.Allowed)

	now.now = now.now.Add(denied.RetryAfter)
	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
}

func TestLimiter_DeniedRequestsDoNotConsume(t *testing.T) {
	l, now := setupLimiter(t, ratelimit.Config{Window: time.Minute, MaxRequests: 1, MaxClients: 10})

	assert.True(t, l.Allow("a").Allowed)
	for i := 0; i < 5; i++ {
		assert.False(t, l.Allow("a").Allowed)
	}

	now.now = now.now.Add(time.Minute)
	assert.True(t, l.Allow("a").Allowed)
}

func TestLimiter_EvictsLeastRecentlySeen(t *testing.T) {
	l, _ := setupLimiter(t, ratelimit.Config{Window: time.Hour, MaxRequests: 1, MaxClients: 2})

	assert.True(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
	assert.True(t, l.Allow("c").Allowed) // evicts a

	// a starts with a fresh bucket again
	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("c").Allowed)
}

func TestNewLimiter_Defaults(t *testing.T) {
	l, _ := setupLimiter(t, ratelimit.Config{})

	d := l.Allow("a")
	assert.True(t, d.Allowed)
	assert.Equal(t, 100, d.Limit)
	assert.Equal(t, 99, d.Remaining)
}

func TestNewLimiter_InvalidConfig(t *testing.T) {
	_, err := ratelimit.NewLimiter(ratelimit.Config{MaxRequests: -1}, nil)
	assert.Error(t, err)
}
