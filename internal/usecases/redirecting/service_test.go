package redirecting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ipapimocks "github.com/vfg2006/linkvault-api/infrastructure/integrator/ipapi/mocks"
	"github.com/vfg2006/linkvault-api/infrastructure/repository/mocks"
	"github.com/vfg2006/linkvault-api/internal/config"
	"github.com/vfg2006/linkvault-api/internal/domain"
	"github.com/vfg2006/linkvault-api/internal/ratelimit"
	optimizingmocks "github.com/vfg2006/linkvault-api/internal/usecases/optimizing/mocks"
	"go.uber.org/mock/gomock"
)

const testUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

type serviceMocks struct {
	linkRepo      *mocks.MockLinkRepository
	clickRepo     *mocks.MockClickRepository
	earningRepo   *mocks.MockEarningRepository
	userRepo      *mocks.MockUserRepository
	blacklistRepo *mocks.MockBlacklistRepository
	analyticsRepo *mocks.MockAnalyticsRepository
	geoLocator    *ipapimocks.MockGeoLocator
	optimizer     *optimizingmocks.MockOptimizer
}

func newTestService(t *testing.T, ctrl *gomock.Controller) (*Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		linkRepo:      mocks.NewMockLinkRepository(ctrl),
		clickRepo:     mocks.NewMockClickRepository(ctrl),
		earningRepo:   mocks.NewMockEarningRepository(ctrl),
		userRepo:      mocks.NewMockUserRepository(ctrl),
		blacklistRepo: mocks.NewMockBlacklistRepository(ctrl),
		analyticsRepo: mocks.NewMockAnalyticsRepository(ctrl),
		geoLocator:    ipapimocks.NewMockGeoLocator(ctrl),
		optimizer:     optimizingmocks.NewMockOptimizer(ctrl),
	}

	cfg := &config.Config{
		RateLimit: config.RateLimit{
			RedirectLimit: 60,
		},
		Optimizer: config.Optimizer{
			UniquenessWindow:  24 * time.Hour,
			UniquenessTimeout: 500 * time.Millisecond,
		},
	}

	service := NewService(
		cfg,
		m.linkRepo,
		m.clickRepo,
		m.earningRepo,
		m.userRepo,
		m.blacklistRepo,
		m.analyticsRepo,
		m.geoLocator,
		m.optimizer,
		ratelimit.NewWindowedCounter(time.Minute, 100),
	)

	// Relógio fixo para unicidade, multiplicador horário e agregado diário
	service.now = func() time.Time {
		return time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	}

	return service, m
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func activeLink() *domain.Link {
	return &domain.Link{
		ID:          42,
		UserID:      intPtr(7),
		OriginalURL: "https://example.com/artigo",
		ShortCode:   "aB3xYz",
		IsActive:    true,
	}
}

func TestRedirect(t *testing.T) {
	ctx := context.Background()

	t.Run("Clique válido redireciona e persiste ganhos com bônus de indicação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		link := activeLink()
		owner := &domain.User{
			ID:         7,
			Email:      "dono@example.com",
			PlanName:   "professional",
			ReferredBy: intPtr(3),
		}
		networkID := "coinzilla"
		earnings := domain.EarningsResult{
			Amount:       0.025,
			AdNetworkID:  &networkID,
			EffectiveCPM: 25.0,
			Reason:       domain.RejectionNone,
		}

		m.blacklistRepo.EXPECT().IsBlacklisted("203.0.113.7").Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode("aB3xYz").Return(link, nil)
		m.geoLocator.EXPECT().ResolveLocation(gomock.Any(), "203.0.113.7").
			Return(&domain.GeoLocation{Country: "US", Region: "CA", City: "San Francisco"})
		m.clickRepo.EXPECT().HasRecentClick(gomock.Any(), 42, "203.0.113.7", gomock.Any()).Return(false, nil)
		m.userRepo.EXPECT().GetUserByID(7).Return(owner, nil).Times(2)

		m.optimizer.EXPECT().CalculateEarnings(gomock.Any()).
			DoAndReturn(func(click domain.ClickContext) domain.EarningsResult {
				assert.Equal(t, "US", click.CountryCode)
				assert.Equal(t, domain.DeviceMobile, click.Device)
				assert.Equal(t, 14, click.HourOfDay)
				assert.Equal(t, "professional", click.PlanID)
				assert.True(t, click.IsUniqueClick)
				return earnings
			})

		m.clickRepo.EXPECT().CreateClick(gomock.Any()).
			DoAndReturn(func(click *domain.Click) (*domain.Click, error) {
				assert.Equal(t, 42, click.LinkID)
				assert.Equal(t, "US", click.Country)
				assert.True(t, click.IsUnique)
				assert.Equal(t, 0.025, click.Earnings)

				click.ID = 900
				return click, nil
			})
		m.linkRepo.EXPECT().RegisterClick(42, true, 0.025, gomock.Any()).Return(nil)

		// Lançamento do clique no ledger e crédito ao dono
		m.earningRepo.EXPECT().CreateEarning(gomock.Any()).
			DoAndReturn(func(earning *domain.Earning) (bool, error) {
				assert.Equal(t, domain.EarningTypeClick, earning.Type)
				assert.Equal(t, 7, earning.UserID)
				assert.Equal(t, 900, earning.ClickID)
				assert.Equal(t, "coinzilla", earning.Source)
				return true, nil
			})
		m.userRepo.EXPECT().CreditEarnings(7, 0.025).Return(nil)

		// Bônus de 10% ao indicador, arredondado em 4 casas
		m.earningRepo.EXPECT().CreateEarning(gomock.Any()).
			DoAndReturn(func(earning *domain.Earning) (bool, error) {
				assert.Equal(t, domain.EarningTypeReferral, earning.Type)
				assert.Equal(t, 3, earning.UserID)
				assert.Equal(t, 0.0025, earning.Amount)
				assert.Equal(t, "referral_system", earning.Source)
				return true, nil
			})
		m.userRepo.EXPECT().CreditEarnings(3, 0.0025).Return(nil)

		m.analyticsRepo.EXPECT().IncrementDaily(gomock.Any()).
			DoAndReturn(func(daily *domain.DailyAnalytics) error {
				assert.Equal(t, 42, daily.LinkID)
				assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), daily.Date)
				assert.Equal(t, 0.025, daily.Earnings)
				return nil
			})

		result, err := service.Redirect(ctx, RedirectRequest{
			Code:      "aB3xYz",
			ClientIP:  "203.0.113.7",
			UserAgent: testUserAgent,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusRedirect, result.Status)
		assert.Equal(t, "https://example.com/artigo", result.TargetURL)
		require.NotNil(t, result.RateLimit)
		assert.True(t, result.RateLimit.Allowed)
		require.NotNil(t, result.Earnings)
		assert.Equal(t, 0.025, result.Earnings.Amount)
	})

	t.Run("Bônus de indicação já lançado não é creditado de novo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		link := activeLink()
		owner := &domain.User{ID: 7, Email: "dono@example.com", PlanName: "free", ReferredBy: intPtr(3)}
		networkID := "popads"
		earnings := domain.EarningsResult{Amount: 0.004, AdNetworkID: &networkID, Reason: domain.RejectionNone}

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode(gomock.Any()).Return(link, nil)
		m.geoLocator.EXPECT().ResolveLocation(gomock.Any(), gomock.Any()).Return(&domain.GeoLocation{Country: "BR"})
		m.clickRepo.EXPECT().HasRecentClick(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		m.userRepo.EXPECT().GetUserByID(7).Return(owner, nil).Times(2)
		m.optimizer.EXPECT().CalculateEarnings(gomock.Any()).Return(earnings)
		m.clickRepo.EXPECT().CreateClick(gomock.Any()).
			DoAndReturn(func(click *domain.Click) (*domain.Click, error) {
				click.ID = 901
				return click, nil
			})
		m.linkRepo.EXPECT().RegisterClick(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		gomock.InOrder(
			m.earningRepo.EXPECT().CreateEarning(gomock.Any()).Return(true, nil),
			m.earningRepo.EXPECT().CreateEarning(gomock.Any()).Return(false, nil),
		)

		// Só o dono é creditado: o bônus duplicado é ignorado
		m.userRepo.EXPECT().CreditEarnings(7, 0.004).Return(nil)

		m.analyticsRepo.EXPECT().IncrementDaily(gomock.Any()).Return(nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7", UserAgent: testUserAgent})

		require.NoError(t, err)
		assert.Equal(t, StatusRedirect, result.Status)
	})

	t.Run("IP banido é barrado antes de resolver o link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		m.blacklistRepo.EXPECT().IsBlacklisted("198.51.100.9").Return(true, nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "198.51.100.9"})

		require.NoError(t, err)
		assert.Equal(t, StatusBlacklisted, result.Status)
	})

	t.Run("Falha na blacklist degrada para não banido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, errors.New("conexão recusada"))
		m.linkRepo.EXPECT().GetLinkByCode("aB3xYz").Return(nil, nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7"})

		require.NoError(t, err)
		assert.Equal(t, StatusNotFound, result.Status)
	})

	t.Run("Link expirado responde como inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		expired := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		link := activeLink()
		link.ExpiresAt = &expired

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode("aB3xYz").Return(link, nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7"})

		require.NoError(t, err)
		assert.Equal(t, StatusNotFound, result.Status)
	})

	t.Run("Limite de cliques esgotado interrompe o pipeline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		link := activeLink()
		link.ClickLimit = intPtr(100)
		link.TotalClicks = 100

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode("aB3xYz").Return(link, nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7"})

		require.NoError(t, err)
		assert.Equal(t, StatusClickLimit, result.Status)
	})

	t.Run("Senha incorreta exige autenticação do link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		link := activeLink()
		link.Password = strPtr("segredo")

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode("aB3xYz").Return(link, nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7", Password: "errada"})

		require.NoError(t, err)
		assert.Equal(t, StatusPasswordRequired, result.Status)
	})

	t.Run("Estouro do rate limit devolve a decisão para os cabeçalhos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)
		service.limiter = ratelimit.NewWindowedCounter(time.Minute, 100)
		service.cfg.RateLimit.RedirectLimit = 0

		link := activeLink()

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode("aB3xYz").Return(link, nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7"})

		require.NoError(t, err)
		assert.Equal(t, StatusRateLimited, result.Status)
		require.NotNil(t, result.RateLimit)
		assert.False(t, result.RateLimit.Allowed)
		assert.Equal(t, 0, result.RateLimit.Remaining)
	})

	t.Run("Falha na verificação de unicidade conta o clique como único", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		link := activeLink()
		owner := &domain.User{ID: 7, Email: "dono@example.com", PlanName: "starter"}
		networkID := "propeller"
		earnings := domain.EarningsResult{Amount: 0.006, AdNetworkID: &networkID, Reason: domain.RejectionNone}

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode(gomock.Any()).Return(link, nil)
		m.geoLocator.EXPECT().ResolveLocation(gomock.Any(), gomock.Any()).Return(&domain.GeoLocation{Country: "US"})
		m.clickRepo.EXPECT().HasRecentClick(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, errors.New("timeout"))
		m.userRepo.EXPECT().GetUserByID(7).Return(owner, nil).Times(2)

		m.optimizer.EXPECT().CalculateEarnings(gomock.Any()).
			DoAndReturn(func(click domain.ClickContext) domain.EarningsResult {
				assert.True(t, click.IsUniqueClick)
				return earnings
			})

		m.clickRepo.EXPECT().CreateClick(gomock.Any()).
			DoAndReturn(func(click *domain.Click) (*domain.Click, error) {
				click.ID = 902
				return click, nil
			})
		m.linkRepo.EXPECT().RegisterClick(gomock.Any(), true, 0.006, gomock.Any()).Return(nil)
		m.earningRepo.EXPECT().CreateEarning(gomock.Any()).Return(true, nil)
		m.userRepo.EXPECT().CreditEarnings(7, 0.006).Return(nil)
		m.analyticsRepo.EXPECT().IncrementDaily(gomock.Any()).Return(nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7", UserAgent: testUserAgent})

		require.NoError(t, err)
		assert.Equal(t, StatusRedirect, result.Status)
	})

	t.Run("Tráfego rejeitado pelo otimizador redireciona sem remuneração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		link := activeLink()
		owner := &domain.User{ID: 7, Email: "dono@example.com", PlanName: "free"}

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode(gomock.Any()).Return(link, nil)
		m.geoLocator.EXPECT().ResolveLocation(gomock.Any(), gomock.Any()).Return(&domain.GeoLocation{Country: "US"})
		m.clickRepo.EXPECT().HasRecentClick(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		m.userRepo.EXPECT().GetUserByID(7).Return(owner, nil)

		m.optimizer.EXPECT().CalculateEarnings(gomock.Any()).
			Return(domain.EarningsResult{Amount: 0, Reason: domain.RejectionSuspiciousTraffic})

		// O clique é registrado mesmo sem remuneração; o ledger não é tocado
		m.clickRepo.EXPECT().CreateClick(gomock.Any()).
			DoAndReturn(func(click *domain.Click) (*domain.Click, error) {
				assert.Equal(t, 0.0, click.Earnings)
				click.ID = 903
				return click, nil
			})
		m.linkRepo.EXPECT().RegisterClick(gomock.Any(), gomock.Any(), 0.0, gomock.Any()).Return(nil)
		m.analyticsRepo.EXPECT().IncrementDaily(gomock.Any()).Return(nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "66.249.66.1", UserAgent: testUserAgent})

		require.NoError(t, err)
		assert.Equal(t, StatusRedirect, result.Status)
		assert.Equal(t, domain.RejectionSuspiciousTraffic, result.Earnings.Reason)
	})

	t.Run("Link sem dono redireciona com ganhos zerados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		link := activeLink()
		link.UserID = nil

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode(gomock.Any()).Return(link, nil)
		m.geoLocator.EXPECT().ResolveLocation(gomock.Any(), gomock.Any()).Return(&domain.GeoLocation{Country: "US"})
		m.clickRepo.EXPECT().HasRecentClick(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		m.clickRepo.EXPECT().CreateClick(gomock.Any()).
			DoAndReturn(func(click *domain.Click) (*domain.Click, error) {
				click.ID = 904
				return click, nil
			})
		m.linkRepo.EXPECT().RegisterClick(gomock.Any(), gomock.Any(), 0.0, gomock.Any()).Return(nil)
		m.analyticsRepo.EXPECT().IncrementDaily(gomock.Any()).Return(nil)

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7", UserAgent: testUserAgent})

		require.NoError(t, err)
		assert.Equal(t, StatusRedirect, result.Status)
		assert.Equal(t, 0.0, result.Earnings.Amount)
	})

	t.Run("Erro ao resolver o link propaga para o handler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(t, ctrl)

		m.blacklistRepo.EXPECT().IsBlacklisted(gomock.Any()).Return(false, nil)
		m.linkRepo.EXPECT().GetLinkByCode(gomock.Any()).Return(nil, errors.New("conexão recusada"))

		result, err := service.Redirect(ctx, RedirectRequest{Code: "aB3xYz", ClientIP: "203.0.113.7"})

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestFirstLanguage(t *testing.T) {
	assert.Equal(t, "pt-BR", firstLanguage("pt-BR,pt;q=0.9,en;q=0.8"))
	assert.Equal(t, "en-US", firstLanguage("en-US;q=0.9"))
	assert.Equal(t, "en", firstLanguage("en"))
	assert.Equal(t, "", firstLanguage(""))
}
