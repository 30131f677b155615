package logger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger направляет логи gorm в slog с полями из context запроса
type GormLogger struct {
	SlowThreshold time.Duration
	level         gormlogger.LogLevel
}

func NewGormLogger(env string, slowThreshold time.Duration) *GormLogger {
	level := gormlogger.Warn
	switch env {
	case "development":
		level = gormlogger.Info
	case "test":
		level = gormlogger.Silent
	}
	return &GormLogger{SlowThreshold: slowThreshold, level: level}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		CtxInfo(ctx, msg, "args", args)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		CtxWarn(ctx, msg, "args", args)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		CtxError(ctx, msg, "args", args)
	}
}

// Trace - вызывается gorm после каждого запроса
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		CtxWithError(ctx, "database query failed", err, "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		CtxWarn(ctx, "slow database query", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		CtxDebug(ctx, "database query", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	}
}
