package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

func TestCalculateEarnings(t *testing.T) {
	coinzilla := domain.AdNetwork{
		ID:      "coinzilla",
		BaseCPM: 8.0,
		MinCPM:  2.0,
		MaxCPM:  25.0,
	}

	t.Run("CPM efetivo é travado no teto da rede", func(t *testing.T) {
		// US + mobile + horário comercial + professional + único: produto 7.8
		multipliers := domain.MultiplierBreakdown{
			Country: 2.5,
			Device:  1.2,
			Time:    1.3,
			Plan:    2.0,
			Unique:  1.0,
		}

		// jitterSample 0.5 produz fator 1.0 e isola o clamp
		amount, cpm := CalculateEarnings(coinzilla, multipliers, 0.5)

		assert.Equal(t, 25.0, cpm)
		assert.Equal(t, 0.025, amount)
	})

	t.Run("CPM efetivo é travado no piso da rede", func(t *testing.T) {
		propeller := domain.AdNetwork{
			ID:      "propeller",
			BaseCPM: 5.0,
			MinCPM:  1.0,
			MaxCPM:  15.0,
		}

		// País de piso fora do horário nobre: produto 0.08, CPM cru 0.4
		multipliers := domain.MultiplierBreakdown{
			Country: 0.1,
			Device:  1.0,
			Time:    0.8,
			Plan:    1.0,
			Unique:  1.0,
		}

		amount, cpm := CalculateEarnings(propeller, multipliers, 0.5)

		assert.Equal(t, 1.0, cpm)
		assert.Equal(t, 0.001, amount)
	})

	t.Run("Jitter varia o pagamento dentro de mais ou menos 10%", func(t *testing.T) {
		multipliers := domain.MultiplierBreakdown{
			Country: 2.5,
			Device:  1.2,
			Time:    1.3,
			Plan:    2.0,
			Unique:  1.0,
		}

		low, _ := CalculateEarnings(coinzilla, multipliers, 0.0)
		high, _ := CalculateEarnings(coinzilla, multipliers, 0.999999)

		assert.Equal(t, 0.0225, low)
		assert.Equal(t, 0.0275, high)
	})

	t.Run("CPM retornado não inclui o jitter", func(t *testing.T) {
		multipliers := domain.MultiplierBreakdown{
			Country: 2.5,
			Device:  1.2,
			Time:    1.3,
			Plan:    2.0,
			Unique:  1.0,
		}

		_, lowCPM := CalculateEarnings(coinzilla, multipliers, 0.0)
		_, highCPM := CalculateEarnings(coinzilla, multipliers, 0.999999)

		assert.Equal(t, lowCPM, highCPM)
	})

	t.Run("Pagamento é arredondado em quatro casas decimais", func(t *testing.T) {
		google := domain.AdNetwork{
			ID:      "google",
			BaseCPM: 3.5,
			MinCPM:  0.5,
			MaxCPM:  12.0,
		}

		multipliers := domain.MultiplierBreakdown{
			Country: 1.0,
			Device:  1.0,
			Time:    1.0,
			Plan:    1.0,
			Unique:  1.0,
		}

		// 0.0035 * (0.9 + 0.123*0.2) = 0.0032361 -> 0.0032
		amount, cpm := CalculateEarnings(google, multipliers, 0.123)

		assert.Equal(t, 3.5, cpm)
		assert.Equal(t, 0.0032, amount)
	})
}
