package workers

import (
	"context"
	"time"

	"jobboard_backend/internal/logger"

	"gorm.io/gorm"
)

// TokenCleaner удаляет истекшие refresh и одноразовые токены (services.TokenService)
type TokenCleaner interface {
	CleanupExpired(db *gorm.DB) (int64, error)
}

type TokenCleanupWorker struct {
	db       *gorm.DB
	cleaner  TokenCleaner
	interval time.Duration
}

func NewTokenCleanupWorker(db *gorm.DB, cleaner TokenCleaner, interval time.Duration) *TokenCleanupWorker {
	return &TokenCleanupWorker{db: db, cleaner: cleaner, interval: interval}
}

// Start запускает очистку в отдельной горутине до отмены ctx
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *TokenCleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("token_cleanup", "stopped", nil)
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce - один проход очистки
func (w *TokenCleanupWorker) RunOnce(ctx context.Context) int64 {
	deleted, err := w.cleaner.CleanupExpired(w.db.WithContext(ctx))
	if err != nil {
		logger.WorkerLog("token_cleanup", "cleanup", err)
		return 0
	}
	if deleted > 0 {
		logger.WorkerLog("token_cleanup", "cleanup", nil, "deleted", deleted)
	}
	return deleted
}
