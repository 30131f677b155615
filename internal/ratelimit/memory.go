package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// window - фиксированное окно ключа. Бакет без пополнения: Limit запросов до resetAt.
type window struct {
	limiter *rate.Limiter
	resetAt time.Time
}

// MemoryLimiter - фиксированное окно на процесс, та же семантика что у RedisLimiter:
// окно открывается первым запросом и живет Window.
// Подходит для одного инстанса; для нескольких нужен RedisLimiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, rule Rule, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	id := rule.Name + ":" + key
	w, ok := l.windows[id]
	if !ok || !now.Before(w.resetAt) {
		w = &window{
			limiter: rate.NewLimiter(0, rule.Limit),
			resetAt: now.Add(rule.Window),
		}
		l.windows[id] = w
	}
	return w.limiter.AllowN(now, 1), nil
}

// Cleanup удаляет истекшие окна
func (l *MemoryLimiter) Cleanup() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, id)
			removed++
		}
	}
	return removed
}

// Run периодически чистит истекшие окна до отмены ctx
func (l *MemoryLimiter) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}
