package logger

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

var current atomic.Pointer[slog.Logger]

// Init настраивает глобальный логгер по окружению:
// development - текст с debug-уровнем, test - только ошибки, остальное - JSON.
func Init(env string) *slog.Logger {
	l := slog.New(newHandler(env, os.Stdout))
	current.Store(l)
	slog.SetDefault(l)
	return l
}

func newHandler(env string, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	switch env {
	case "development":
		opts.Level = slog.LevelDebug
		return slog.NewTextHandler(w, opts)
	case "test":
		opts.Level = slog.LevelError
		opts.AddSource = false
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return Init("development")
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует ошибку и завершает процесс
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With создает логгер с дополнительными полями
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError создает логгер с полем error
func WithError(err error) *slog.Logger {
	if err == nil {
		return GetLogger()
	}
	return GetLogger().With("error", err.Error())
}

// ============================================
// Специализированные логгеры
// ============================================

// HTTPLog - одна строка на запрос; уровень зависит от статуса
func HTTPLog(l *slog.Logger, method, path string, status int, duration time.Duration, size int, extra ...any) {
	fields := append([]any{
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size_bytes", size,
	}, extra...)

	switch {
	case status >= 500:
		l.Error("HTTP server error", fields...)
	case status >= 400:
		l.Warn("HTTP client error", fields...)
	default:
		l.Info("HTTP request", fields...)
	}
}

// WorkerLog логирует операцию фонового воркера
func WorkerLog(worker, operation string, err error, args ...any) {
	fields := append([]any{"worker", worker, "operation", operation}, args...)
	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("worker operation failed", fields...)
		return
	}
	GetLogger().Info("worker operation completed", fields...)
}
