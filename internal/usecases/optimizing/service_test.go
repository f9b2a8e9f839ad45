package optimizing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	return NewService(defaultRegistry(t), rand.New(rand.NewSource(42)))
}

func TestServiceCalculateEarnings(t *testing.T) {
	t.Run("Tráfego suspeito não gera remuneração", func(t *testing.T) {
		service := newTestService(t)

		result := service.CalculateEarnings(domain.ClickContext{
			ClientIP:    "66.249.66.1",
			CountryCode: "US",
			Device:      domain.DeviceMobile,
			HourOfDay:   14,
			PlanID:      "professional",
		})

		assert.Equal(t, 0.0, result.Amount)
		assert.Equal(t, domain.RejectionSuspiciousTraffic, result.Reason)
		assert.Nil(t, result.AdNetworkID)
	})

	t.Run("Dispositivo sem rede adequada não gera remuneração", func(t *testing.T) {
		service := newTestService(t)

		result := service.CalculateEarnings(domain.ClickContext{
			ClientIP:    "201.17.88.4",
			CountryCode: "US",
			Device:      domain.DeviceType("smartwatch"),
			HourOfDay:   14,
			PlanID:      "free",
		})

		assert.Equal(t, 0.0, result.Amount)
		assert.Equal(t, domain.RejectionNoSuitableNetwork, result.Reason)
	})

	t.Run("Clique premium é atribuído à rede cripto com valor dentro da faixa de jitter", func(t *testing.T) {
		service := newTestService(t)

		result := service.CalculateEarnings(domain.ClickContext{
			ClientIP:      "201.17.88.4",
			CountryCode:   "US",
			Device:        domain.DeviceMobile,
			HourOfDay:     14,
			PlanID:        "professional",
			IsUniqueClick: true,
		})

		require.NotNil(t, result.AdNetworkID)
		assert.Equal(t, "coinzilla", *result.AdNetworkID)
		assert.Equal(t, domain.RejectionNone, result.Reason)

		// CPM cru 62.4 travado no teto de 25.0; jitter mantém o valor em [0.0225, 0.0275]
		assert.Equal(t, 25.0, result.EffectiveCPM)
		assert.GreaterOrEqual(t, result.Amount, 0.0225)
		assert.LessOrEqual(t, result.Amount, 0.0275)
		assert.InDelta(t, 7.8, result.Multipliers.Product(), 1e-9)
	})

	t.Run("Gerador com a mesma semente reproduz o mesmo valor", func(t *testing.T) {
		click := domain.ClickContext{
			ClientIP:      "201.17.88.4",
			CountryCode:   "GB",
			Device:        domain.DeviceDesktop,
			HourOfDay:     10,
			PlanID:        "starter",
			IsUniqueClick: true,
		}

		first := newTestService(t).CalculateEarnings(click)
		second := newTestService(t).CalculateEarnings(click)

		assert.Equal(t, first.Amount, second.Amount)
		assert.Equal(t, first.EffectiveCPM, second.EffectiveCPM)
	})
}

func TestPredictEarnings(t *testing.T) {
	service := newTestService(t)

	t.Run("Projeção usa apenas o multiplicador do plano", func(t *testing.T) {
		prediction := service.PredictEarnings("professional", 10000)

		require.NotNil(t, prediction)
		assert.Equal(t, 60.0, prediction.EstimatedEarnings)
		assert.Equal(t, 7.0, prediction.EstimatedCPM)
		assert.Equal(t, 10000, prediction.BasedOnClicks)
	})

	t.Run("Plano desconhecido projeta com multiplicador neutro", func(t *testing.T) {
		prediction := service.PredictEarnings("vip", 1000)

		require.NotNil(t, prediction)
		assert.Equal(t, 3.0, prediction.EstimatedEarnings)
		assert.Equal(t, 3.0, prediction.EstimatedCPM)
	})
}

func TestRecommendPlan(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name     string
		clicks   int
		plan     string
		earnings float64
	}{
		{
			name:     "Volume baixo recomenda o plano gratuito",
			clicks:   500,
			plan:     "free",
			earnings: 0.5,
		},
		{
			name:     "Volume médio recomenda o starter",
			clicks:   5000,
			plan:     "starter",
			earnings: 15.0,
		},
		{
			name:     "Volume alto recomenda o professional",
			clicks:   50000,
			plan:     "professional",
			earnings: 400.0,
		},
		{
			name:     "Volume muito alto recomenda o enterprise",
			clicks:   200000,
			plan:     "enterprise",
			earnings: 3000.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recommendation := service.RecommendPlan(tt.clicks)

			require.NotNil(t, recommendation)
			assert.Equal(t, tt.plan, recommendation.Plan)
			assert.InDelta(t, tt.earnings, recommendation.PotentialEarnings, 1e-9)
		})
	}
}
