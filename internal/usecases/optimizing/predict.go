package optimizing

import (
	"math"

	"github.com/vfg2006/linkvault-api/internal/domain"
)

// averageBaseCPM é a base usada nas estimativas de potencial de ganhos
const averageBaseCPM = 3.0

// PredictEarnings estima o potencial de ganhos para um volume de cliques,
// usando apenas o multiplicador de plano. É uma projeção grosseira para a
// tela de criação de links, não um cálculo real.
func (s *Service) PredictEarnings(planName string, estimatedClicks int) *domain.EarningsPrediction {
	planMultiplier := PlanMultiplier(planName)

	estimated := (averageBaseCPM / 1000) * float64(estimatedClicks) * planMultiplier

	return &domain.EarningsPrediction{
		EstimatedEarnings: math.Round(estimated*100) / 100,
		EstimatedCPM:      averageBaseCPM * planMultiplier,
		BasedOnClicks:     estimatedClicks,
	}
}

// RecommendPlan sugere um plano com base no volume mensal esperado de cliques
func (s *Service) RecommendPlan(expectedMonthlyClicks int) *domain.PlanRecommendation {
	clicks := float64(expectedMonthlyClicks)

	switch {
	case expectedMonthlyClicks < 1000:
		return &domain.PlanRecommendation{
			Plan:              "free",
			Reason:            "Volume de tráfego baixo, o plano gratuito é suficiente",
			PotentialEarnings: clicks * 0.001,
		}
	case expectedMonthlyClicks < 10000:
		return &domain.PlanRecommendation{
			Plan:              "starter",
			Reason:            "Tráfego médio, o plano starter oferece CPM melhor",
			PotentialEarnings: clicks * 0.003,
		}
	case expectedMonthlyClicks < 100000:
		return &domain.PlanRecommendation{
			Plan:              "professional",
			Reason:            "Tráfego alto, o plano professional maximiza os ganhos",
			PotentialEarnings: clicks * 0.008,
		}
	default:
		return &domain.PlanRecommendation{
			Plan:              "enterprise",
			Reason:            "Tráfego muito alto, o plano enterprise oferece CPM premium",
			PotentialEarnings: clicks * 0.015,
		}
	}
}
