package handler

import (
	"net/http"

	"github.com/vfg2006/linkvault-api/infrastructure/repository"
	"github.com/vfg2006/linkvault-api/internal/api/handler/router"
	"github.com/vfg2006/linkvault-api/internal/ratelimit"
	"github.com/vfg2006/linkvault-api/internal/usecases/authenticating"
	"github.com/vfg2006/linkvault-api/internal/usecases/redirecting"
	"github.com/vfg2006/linkvault-api/internal/usecases/shortening"
	"github.com/vfg2006/linkvault-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Redirecting expõe o caminho público de redirecionamento. O limite de taxa
// deste caminho é aplicado dentro do pipeline, não por middleware.
func Redirecting(service redirecting.Redirector) []router.Route {
	return []router.Route{
		{
			Path:    "/r/:code",
			Method:  http.MethodGet,
			Handler: Redirect(service),
		},
	}
}

func Links(service shortening.Shortener, limiter ratelimit.Limiter, shortenLimit int) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/links",
			Method:      http.MethodPost,
			Handler:     CreateLink(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RateLimitMiddleware(limiter, shortenLimit)},
		},
		{
			Path:    "/v1/links",
			Method:  http.MethodGet,
			Handler: ListLinks(service),
		},
		{
			Path:    "/v1/links/:code/stats",
			Method:  http.MethodGet,
			Handler: GetLinkStats(service),
		},
		{
			Path:    "/v1/earnings/predict",
			Method:  http.MethodGet,
			Handler: PredictEarnings(service),
		},
		{
			Path:    "/v1/plans/recommend",
			Method:  http.MethodGet,
			Handler: RecommendPlan(service),
		},
	}
}

func Earnings(earningRepo repository.EarningRepository, planRepo repository.PlanRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/me/earnings",
			Method:  http.MethodGet,
			Handler: GetEarningsSummary(earningRepo),
		},
		{
			Path:    "/v1/plans",
			Method:  http.MethodGet,
			Handler: ListPlans(planRepo),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: RegisterUser(service),
		},
		{
			Path:    "/v1/users/:id/change-password",
			Method:  http.MethodPost,
			Handler: ChangePassword(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/users/:id",
			Method:  http.MethodGet,
			Handler: GetUser(service),
		},
		{
			Path:    "/v1/users/:id",
			Method:  http.MethodPut,
			Handler: UpdateUser(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
