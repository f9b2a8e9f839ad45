package optimizing

import (
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

// Optimizer é o motor de decisão de monetização por clique
type Optimizer interface {
	CalculateEarnings(click domain.ClickContext) domain.EarningsResult
	IsSuspiciousTraffic(clientIP string) bool
	PredictEarnings(planName string, estimatedClicks int) *domain.EarningsPrediction
	RecommendPlan(expectedMonthlyClicks int) *domain.PlanRecommendation
}

// Service implementa o Optimizer sobre um registro imutável de redes.
// Todas as etapas são funções puras; o único estado mutável é o gerador
// de jitter, protegido por mutex para uso em requisições concorrentes.
type Service struct {
	registry *Registry

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService cria o motor de otimização. O gerador é injetado e semeável
// para que testes fixem o jitter e validem valores exatos.
func NewService(registry *Registry, rng *rand.Rand) *Service {
	return &Service{
		registry: registry,
		rng:      rng,
	}
}

// Registry expõe o registro carregado (somente leitura)
func (s *Service) Registry() *Registry {
	return s.registry
}

// IsSuspiciousTraffic delega para o filtro de fraude
func (s *Service) IsSuspiciousTraffic(clientIP string) bool {
	return IsSuspicious(clientIP)
}

// CalculateEarnings decide a atribuição e o valor monetário de um clique:
// filtro de fraude → seleção de rede → multiplicadores → cálculo com clamp,
// jitter e arredondamento. Rejeições são valores de retorno, nunca erros.
func (s *Service) CalculateEarnings(click domain.ClickContext) domain.EarningsResult {
	if s.IsSuspiciousTraffic(click.ClientIP) {
		logrus.WithFields(logrus.Fields{
			"ip":      click.ClientIP,
			"user_id": click.UserID,
		}).Debug("Tráfego suspeito: clique sem remuneração")

		return domain.EarningsResult{
			Amount: 0,
			Reason: domain.RejectionSuspiciousTraffic,
		}
	}

	network, ok := s.registry.SelectNetwork(click.CountryCode, click.Device)
	if !ok {
		return domain.EarningsResult{
			Amount: 0,
			Reason: domain.RejectionNoSuitableNetwork,
		}
	}

	multipliers := ResolveMultipliers(click)

	s.rngMu.Lock()
	jitterSample := s.rng.Float64()
	s.rngMu.Unlock()

	amount, effectiveCPM := CalculateEarnings(network, multipliers, jitterSample)

	networkID := network.ID

	return domain.EarningsResult{
		Amount:       amount,
		AdNetworkID:  &networkID,
		EffectiveCPM: effectiveCPM,
		Multipliers:  multipliers,
		Reason:       domain.RejectionNone,
	}
}
