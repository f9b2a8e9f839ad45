package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/internal/usecases/redirecting"
	"github.com/vfg2006/linkvault-api/pkg/apiErrors"
	"github.com/vfg2006/linkvault-api/pkg/middleware"
	"github.com/vfg2006/linkvault-api/pkg/utils"
)

// Redirect resolve o short code, executa o pipeline de monetização e
// responde com 302 para a URL original. Desfechos de negócio (link
// inexistente, senha, limite de taxa) viram códigos HTTP específicos.
func Redirect(service redirecting.Redirector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := httprouter.ParamsFromContext(r.Context()).ByName("code")
		if code == "" {
			apiErrors.WriteError(w, apiErrors.ErrLinkNotFound, "Link não encontrado", nil)
			return
		}

		req := redirecting.RedirectRequest{
			Code:           code,
			ClientIP:       utils.ClientIP(r),
			UserAgent:      r.UserAgent(),
			Referrer:       r.Referer(),
			AcceptLanguage: r.Header.Get("Accept-Language"),
			Password:       r.URL.Query().Get("password"),
		}

		result, err := service.Redirect(r.Context(), req)
		if err != nil {
			logrus.WithError(err).WithField("code", code).Error("Erro no pipeline de redirecionamento")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar redirecionamento", nil)
			return
		}

		if result.RateLimit != nil {
			middleware.WriteRateLimitHeaders(w, *result.RateLimit)
		}

		switch result.Status {
		case redirecting.StatusRedirect:
			http.Redirect(w, r, result.TargetURL, http.StatusFound)

		case redirecting.StatusBlacklisted:
			apiErrors.WriteError(w, apiErrors.ErrIPBlacklisted, "Acesso bloqueado", nil)

		case redirecting.StatusNotFound:
			apiErrors.WriteError(w, apiErrors.ErrLinkNotFound, "Link não encontrado ou expirado", nil)

		case redirecting.StatusClickLimit:
			apiErrors.WriteError(w, apiErrors.ErrLinkClickLimit, "Link atingiu o limite de cliques", nil)

		case redirecting.StatusPasswordRequired:
			apiErrors.WriteError(w, apiErrors.ErrLinkPasswordRequired, "Link protegido por senha", nil)

		case redirecting.StatusRateLimited:
			apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Limite de requisições excedido", map[string]any{
				"retry_after_seconds": result.RateLimit.RetryAfterSeconds(time.Now()),
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Desfecho de redirecionamento desconhecido", nil)
		}
	}
}
