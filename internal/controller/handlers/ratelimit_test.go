package handlers

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiter_Allow(t *testing.T) {
	// очень медленное пополнение, чтобы тест не зависел от времени
	l := NewRateLimiter(0.001, 2, zap.NewNop())

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))

	// у другого чата свой лимит
	assert.True(t, l.Allow(2))
}

func TestRateLimiter_AllowConcurrentFirstMessages(t *testing.T) {
	l := NewRateLimiter(0.001, 2, zap.NewNop())

	var (
		wg      sync.WaitGroup
		allowed atomic.Int32
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow(1) {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	// один лимитер на чат, даже когда первые сообщения приходят одновременно
	assert.Equal(t, int32(2), allowed.Load())
}
