package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type windowLog struct {
	timestamps []time.Time
}

// SlidingWindowLog guarda os instantes de cada requisição por chave e
// descarta os mais antigos que (agora - janela) a cada checagem. Conta
// corretamente todas as chamadas e é a estratégia padrão. Memória limitada
// pelo mesmo despejo LRU + TTL do contador por janela.
type SlidingWindowLog struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, *windowLog]
	window  time.Duration

	now func() time.Time
}

func NewSlidingWindowLog(window time.Duration, maxUniqueTokens int) *SlidingWindowLog {
	if maxUniqueTokens <= 0 {
		maxUniqueTokens = 500
	}

	return &SlidingWindowLog{
		entries: expirable.NewLRU[string, *windowLog](maxUniqueTokens, nil, window),
		window:  window,
		now:     time.Now,
	}
}

// Check descarta os timestamps fora da janela, bloqueia se a contagem
// restante já atingiu o limite e, caso contrário, registra a requisição.
func (s *SlidingWindowLog) Check(key string, limit int) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	windowStart := now.Add(-s.window)

	entry, ok := s.entries.Get(key)
	if !ok {
		entry = &windowLog{}
	}

	recent := entry.timestamps[:0]
	for _, ts := range entry.timestamps {
		if ts.After(windowStart) {
			recent = append(recent, ts)
		}
	}
	entry.timestamps = recent

	if len(entry.timestamps) >= limit {
		// O limite reabre quando a requisição mais antiga sair da janela
		return Decision{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			ResetAt:   entry.timestamps[0].Add(s.window),
		}
	}

	entry.timestamps = append(entry.timestamps, now)

	// Add renova o TTL da entrada a cada requisição aceita
	s.entries.Add(key, entry)

	return Decision{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(entry.timestamps),
		ResetAt:   entry.timestamps[0].Add(s.window),
	}
}

// Len retorna o número de chaves rastreadas no momento
func (s *SlidingWindowLog) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}
