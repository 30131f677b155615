package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := New("test", Settings{MaxFailures: 2, Interval: time.Minute, Timeout: time.Minute})
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	}

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	assert.True(t, IsOpen(err))
	assert.False(t, IsOpen(boom))
}
