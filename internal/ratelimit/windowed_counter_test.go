package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowedCounterCheck(t *testing.T) {
	t.Run("Bloqueia a requisição seguinte ao limite dentro da janela", func(t *testing.T) {
		limiter := NewWindowedCounter(time.Minute, 100)

		for i := 0; i < 10; i++ {
			decision := limiter.Check("203.0.113.7", 10)

			require.True(t, decision.Allowed, "requisição %d deveria passar", i+1)
			assert.Equal(t, 10-(i+1), decision.Remaining)
		}

		decision := limiter.Check("203.0.113.7", 10)

		assert.False(t, decision.Allowed)
		assert.Equal(t, 0, decision.Remaining)
	})

	t.Run("Requisições bloqueadas também contam", func(t *testing.T) {
		clock := newFakeClock()
		limiter := NewWindowedCounter(time.Minute, 100)
		limiter.now = clock.Now

		require.True(t, limiter.Check("203.0.113.7", 1).Allowed)

		// Marteladas seguidas continuam bloqueadas até a janela virar
		for i := 0; i < 5; i++ {
			assert.False(t, limiter.Check("203.0.113.7", 1).Allowed)
		}
	})

	t.Run("Contador zera quando a janela vira", func(t *testing.T) {
		clock := newFakeClock()
		limiter := NewWindowedCounter(time.Minute, 100)
		limiter.now = clock.Now

		start := clock.Now()

		require.True(t, limiter.Check("203.0.113.7", 1).Allowed)

		blocked := limiter.Check("203.0.113.7", 1)
		require.False(t, blocked.Allowed)
		assert.Equal(t, start.Add(time.Minute), blocked.ResetAt)

		clock.Advance(time.Minute)

		decision := limiter.Check("203.0.113.7", 1)
		assert.True(t, decision.Allowed)
		assert.Equal(t, clock.Now().Add(time.Minute), decision.ResetAt)
	})

	t.Run("Chaves distintas têm contadores independentes", func(t *testing.T) {
		limiter := NewWindowedCounter(time.Minute, 100)

		require.True(t, limiter.Check("203.0.113.7", 1).Allowed)
		require.False(t, limiter.Check("203.0.113.7", 1).Allowed)

		assert.True(t, limiter.Check("198.51.100.9", 1).Allowed)
	})

	t.Run("Chaves excedentes são despejadas por LRU", func(t *testing.T) {
		limiter := NewWindowedCounter(time.Minute, 2)

		limiter.Check("a", 10)
		limiter.Check("b", 10)
		limiter.Check("c", 10)

		assert.Equal(t, 2, limiter.Len())
	})
}

func TestWindowedCounterConcurrency(t *testing.T) {
	limiter := NewWindowedCounter(time.Minute, 100)

	const goroutines = 100
	const limit = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if limiter.Check("203.0.113.7", limit).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
}
