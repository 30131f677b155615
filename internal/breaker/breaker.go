package breaker

import (
	"time"

	"jobboard_backend/internal/logger"

	"github.com/sony/gobreaker"
)

// Settings - параметры предохранителя для внешнего вызова
type Settings struct {
	MaxFailures uint32
	Interval    time.Duration
	Timeout     time.Duration
	// IsSuccessful - ошибки, которые не считаются сбоем (nil = любая ошибка это сбой)
	IsSuccessful func(err error) bool
}

func DefaultSettings() Settings {
	return Settings{
		MaxFailures: 5,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	}
}

// New создает circuit breaker, который размыкается после MaxFailures подряд
func New(name string, s Settings) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: s.IsSuccessful,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// IsOpen - вызов отклонен предохранителем, а не упал сам
func IsOpen(err error) bool {
	return err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests
}
