package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/linkvault-api/internal/ratelimit"
	"github.com/vfg2006/linkvault-api/pkg/apiErrors"
	"github.com/vfg2006/linkvault-api/pkg/utils"
)

// RateLimitMiddleware limita as requisições por IP de origem nas rotas da
// API. O caminho de redirecionamento tem seu próprio limite dentro do
// pipeline; este middleware protege as rotas de criação e consulta.
func RateLimitMiddleware(limiter ratelimit.Limiter, limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := utils.ClientIP(r)

			decision := limiter.Check("api:"+clientIP, limit)

			WriteRateLimitHeaders(w, decision)

			if !decision.Allowed {
				apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Limite de requisições excedido", map[string]any{
					"retry_after_seconds": decision.RetryAfterSeconds(time.Now()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WriteRateLimitHeaders escreve os cabeçalhos padrão de limitação de taxa
func WriteRateLimitHeaders(w http.ResponseWriter, decision ratelimit.Decision) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
}
