package optimizing

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

const (
	// Jitter anti-gaming: fator uniforme em [0.9, 1.1] aplicado ao valor final
	// para impossibilitar a previsão exata do pagamento por clique.
	jitterBase = 0.9
	jitterSpan = 0.2

	// Pagamentos são arredondados em ponto fixo com 4 casas decimais
	amountPrecision = 4
)

// CalculateEarnings combina o CPM base da rede com os multiplicadores,
// trava o CPM efetivo nos limites do contrato da rede, aplica o jitter
// e arredonda. jitterSample deve ser um valor uniforme em [0, 1) vindo de
// um gerador semeável — injetado para que testes fixem o resultado.
//
// Retorna o valor por clique (sempre >= 0) e o CPM efetivo pré-jitter,
// que por construção está dentro de [minCPM, maxCPM].
func CalculateEarnings(network domain.AdNetwork, multipliers domain.MultiplierBreakdown, jitterSample float64) (float64, float64) {
	// Valor base por evento: CPM / 1000
	earnings := decimal.NewFromFloat(network.BaseCPM).Div(decimal.NewFromInt(1000))

	earnings = earnings.Mul(decimal.NewFromFloat(multipliers.Product()))

	// Converte de volta para CPM e trava nos limites da rede. O clamp é
	// um limite rígido independente de quão extremo for o produto dos
	// multiplicadores.
	effectiveCPM := earnings.Mul(decimal.NewFromInt(1000))

	minCPM := decimal.NewFromFloat(network.MinCPM)
	maxCPM := decimal.NewFromFloat(network.MaxCPM)

	if effectiveCPM.LessThan(minCPM) {
		effectiveCPM = minCPM
	}
	if effectiveCPM.GreaterThan(maxCPM) {
		effectiveCPM = maxCPM
	}

	earnings = effectiveCPM.Div(decimal.NewFromInt(1000))

	jitter := decimal.NewFromFloat(jitterBase + jitterSample*jitterSpan)
	earnings = earnings.Mul(jitter)

	amount, _ := earnings.Round(amountPrecision).Float64()
	if amount < 0 {
		amount = 0
	}

	cpm, _ := effectiveCPM.Float64()

	return amount, cpm
}
