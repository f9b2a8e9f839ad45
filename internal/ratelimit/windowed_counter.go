package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type counterEntry struct {
	count       int
	windowStart time.Time
}

// WindowedCounter é o contador por janela com memória limitada: no máximo
// maxUniqueTokens chaves distintas (despejo LRU além disso) e TTL por
// entrada igual ao tamanho da janela.
//
// O contador incrementa em TODA chamada e bloqueia quando o total da janela
// ultrapassa o limite. A variante observada em produção que congelava o
// contador na primeira chamada liberava tráfego ilimitado depois da
// primeira requisição e foi corrigida aqui; ver DESIGN.md.
type WindowedCounter struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, *counterEntry]
	window  time.Duration

	now func() time.Time
}

func NewWindowedCounter(window time.Duration, maxUniqueTokens int) *WindowedCounter {
	if maxUniqueTokens <= 0 {
		maxUniqueTokens = 500
	}

	return &WindowedCounter{
		entries: expirable.NewLRU[string, *counterEntry](maxUniqueTokens, nil, window),
		window:  window,
		now:     time.Now,
	}
}

// Check registra uma requisição da chave e decide se ela passa.
// Atômico: o read-modify-write do contador é serializado pelo mutex.
func (c *WindowedCounter) Check(key string, limit int) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	entry, ok := c.entries.Get(key)
	if !ok || now.Sub(entry.windowStart) >= c.window {
		entry = &counterEntry{count: 0, windowStart: now}
		c.entries.Add(key, entry)
	}

	entry.count++

	remaining := limit - entry.count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   entry.count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   entry.windowStart.Add(c.window),
	}
}

// Len retorna o número de chaves rastreadas no momento
func (c *WindowedCounter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
