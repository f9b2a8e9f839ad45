// Package ratelimit limita o volume de requisições por chave de cliente
// (IP ou ID de usuário) dentro de uma janela de tempo, com memória limitada.
package ratelimit

import (
	"time"

	"github.com/pkg/errors"
)

// Estratégias disponíveis de limitação
const (
	StrategySlidingWindow   = "sliding_window"
	StrategyWindowedCounter = "windowed_counter"
)

// Decision é o resultado estruturado de uma checagem de limite. Bloqueio é
// um resultado de negócio, nunca um erro: o chamador usa os campos para
// montar a resposta 429 com os cabeçalhos de limite.
type Decision struct {
	Allowed   bool      `json:"allowed"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// RetryAfterSeconds calcula, em segundos, quanto o cliente deve aguardar
// antes de tentar novamente. Sempre >= 1 quando bloqueado.
func (d Decision) RetryAfterSeconds(now time.Time) int {
	secs := int(d.ResetAt.Sub(now).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Limiter é o contrato comum das duas estratégias. Check é atômico por
// chave: leituras e escritas concorrentes do contador/log de uma mesma
// chave são serializadas internamente.
type Limiter interface {
	Check(key string, limit int) Decision
}

// New cria o limitador da estratégia configurada. Capacidade esgotada é
// tratada por despejo LRU, nunca rejeitando tráfego legítimo.
func New(strategy string, window time.Duration, maxUniqueTokens int) (Limiter, error) {
	switch strategy {
	case StrategySlidingWindow:
		return NewSlidingWindowLog(window, maxUniqueTokens), nil
	case StrategyWindowedCounter:
		return NewWindowedCounter(window, maxUniqueTokens), nil
	default:
		return nil, errors.Errorf("estratégia de rate limit desconhecida: %s", strategy)
	}
}
