package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

type countingCleaner struct {
	calls   atomic.Int32
	deleted int64
	err     error
}

func (c *countingCleaner) CleanupExpired(*gorm.DB) (int64, error) {
	c.calls.Add(1)
	return c.deleted, c.err
}

func TestTokenCleanupWorker_RunOnce(t *testing.T) {
	cleaner := &countingCleaner{deleted: 3}
	w := NewTokenCleanupWorker(testDB(t), cleaner, time.Hour)
	assert.Equal(t, int64(3), w.RunOnce(context.Background()))

	cleaner.err = errors.New("db down")
	assert.Equal(t, int64(0), w.RunOnce(context.Background()))
	assert.Equal(t, int32(2), cleaner.calls.Load())
}

func TestTokenCleanupWorker_StopsOnCancel(t *testing.T) {
	cleaner := &countingCleaner{}
	w := NewTokenCleanupWorker(testDB(t), cleaner, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	after := cleaner.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, cleaner.calls.Load())
}
