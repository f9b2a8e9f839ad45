package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock permite avançar o relógio do limitador de forma determinística
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

func TestSlidingWindowLogCheck(t *testing.T) {
	t.Run("Bloqueia a requisição seguinte ao limite dentro da janela", func(t *testing.T) {
		clock := newFakeClock()
		limiter := NewSlidingWindowLog(time.Minute, 100)
		limiter.now = clock.Now

		for i := 0; i < 10; i++ {
			decision := limiter.Check("203.0.113.7", 10)

			require.True(t, decision.Allowed, "requisição %d deveria passar", i+1)
			assert.Equal(t, 10, decision.Limit)
			assert.Equal(t, 10-(i+1), decision.Remaining)

			clock.Advance(time.Second)
		}

		decision := limiter.Check("203.0.113.7", 10)

		assert.False(t, decision.Allowed)
		assert.Equal(t, 0, decision.Remaining)
	})

	t.Run("Reabre quando a requisição mais antiga sai da janela", func(t *testing.T) {
		clock := newFakeClock()
		limiter := NewSlidingWindowLog(time.Minute, 100)
		limiter.now = clock.Now

		start := clock.Now()

		for i := 0; i < 3; i++ {
			require.True(t, limiter.Check("203.0.113.7", 3).Allowed)
			clock.Advance(10 * time.Second)
		}

		blocked := limiter.Check("203.0.113.7", 3)
		require.False(t, blocked.Allowed)
		assert.Equal(t, start.Add(time.Minute), blocked.ResetAt)

		// 41s depois do início, a primeira requisição (t=0) ainda está na janela
		clock.Advance(11 * time.Second)
		assert.False(t, limiter.Check("203.0.113.7", 3).Allowed)

		// 61s depois do início, a primeira requisição saiu e abre uma vaga
		clock.Advance(20 * time.Second)
		assert.True(t, limiter.Check("203.0.113.7", 3).Allowed)
	})

	t.Run("Chaves distintas têm contagens independentes", func(t *testing.T) {
		limiter := NewSlidingWindowLog(time.Minute, 100)

		require.True(t, limiter.Check("203.0.113.7", 1).Allowed)
		require.False(t, limiter.Check("203.0.113.7", 1).Allowed)

		assert.True(t, limiter.Check("198.51.100.9", 1).Allowed)
	})

	t.Run("RetryAfterSeconds nunca é menor que um segundo", func(t *testing.T) {
		clock := newFakeClock()
		limiter := NewSlidingWindowLog(time.Minute, 100)
		limiter.now = clock.Now

		require.True(t, limiter.Check("203.0.113.7", 1).Allowed)

		clock.Advance(59*time.Second + 900*time.Millisecond)
		decision := limiter.Check("203.0.113.7", 1)
		require.False(t, decision.Allowed)

		assert.Equal(t, 1, decision.RetryAfterSeconds(clock.Now()))
	})

	t.Run("Chaves excedentes são despejadas por LRU", func(t *testing.T) {
		limiter := NewSlidingWindowLog(time.Minute, 2)

		limiter.Check("a", 10)
		limiter.Check("b", 10)
		limiter.Check("c", 10)

		assert.Equal(t, 2, limiter.Len())
	})
}

func TestSlidingWindowLogConcurrency(t *testing.T) {
	limiter := NewSlidingWindowLog(time.Minute, 100)

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

	// Exatamente `limit` requisições passam, independentemente da ordem
	assert.Equal(t, limit, allowed)
}

func TestNew(t *testing.T) {
	tests := []struct {
		strategy string
		wantErr  bool
	}{
		{strategy: StrategySlidingWindow},
		{strategy: StrategyWindowedCounter},
		{strategy: "token_bucket", wantErr: true},
		{strategy: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("estratégia %q", tt.strategy), func(t *testing.T) {
			limiter, err := New(tt.strategy, time.Minute, 100)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, limiter)
		})
	}
}
