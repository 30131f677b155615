package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_LimitPerKey(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < OTPBurst.Limit; i++ {
		ok, err := l.Allow(ctx, OTPBurst, "+15550001111")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, OTPBurst, "+15550001111")
	assert.False(t, ok)

	// другой ключ и другое правило считаются отдельно
	ok, _ = l.Allow(ctx, OTPBurst, "+15550002222")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, OTPDaily, "+15550001111")
	assert.True(t, ok)
}

func TestMemoryLimiter_Cooldown(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := l.Allow(ctx, OTPCooldown, "a@b.c")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, OTPCooldown, "a@b.c")
	assert.False(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = l.Allow(ctx, OTPCooldown, "a@b.c")
	assert.True(t, ok)
}

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		every   time.Duration
		span    time.Duration
		allowed int
	}{
		{"daily cap over a day", OTPDaily, time.Minute, 24*time.Hour - time.Second, 10},
		{"burst cap inside five minutes", OTPBurst, time.Minute, 5*time.Minute - time.Second, 3},
		{"cooldown once per window", OTPCooldown, 10 * time.Second, 59 * time.Second, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewMemoryLimiter()
			start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			now := start
			l.now = func() time.Time { return now }

			allowed := 0
			for ; now.Sub(start) <= tt.span; now = now.Add(tt.every) {
				ok, err := l.Allow(context.Background(), tt.rule, "+15550001111")
				require.NoError(t, err)
				if ok {
					allowed++
				}
			}
			assert.Equal(t, tt.allowed, allowed)

			// новое окно открывается ровно через Window после первого запроса
			now = start.Add(tt.rule.Window)
			ok, _ := l.Allow(context.Background(), tt.rule, "+15550001111")
			assert.True(t, ok)
		})
	}
}

func TestMemoryLimiter_Cleanup(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), OTPCooldown, "k1")
	_, _ = l.Allow(context.Background(), OTPDaily, "k2")

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, l.Cleanup())
}

func TestNoop(t *testing.T) {
	ok, err := Noop{}.Allow(context.Background(), Login, "x")
	require.NoError(t, err)
	assert.True(t, ok)
}
