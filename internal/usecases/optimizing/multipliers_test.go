package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

func TestCountryMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		expected float64
	}{
		{
			name:     "Estados Unidos tem o multiplicador mais alto",
			country:  "US",
			expected: 2.5,
		},
		{
			name:     "Canadá e Reino Unido valem 2.0",
			country:  "CA",
			expected: 2.0,
		},
		{
			name:     "Código em caixa baixa é normalizado",
			country:  "us",
			expected: 2.5,
		},
		{
			name:     "País desconhecido recebe o piso de 0.1",
			country:  "ZZ",
			expected: 0.1,
		},
		{
			name:     "Código vazio recebe o piso de 0.1",
			country:  "",
			expected: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountryMultiplier(tt.country))
		})
	}
}

func TestDeviceMultiplier(t *testing.T) {
	assert.Equal(t, 1.2, DeviceMultiplier(domain.DeviceMobile))
	assert.Equal(t, 1.1, DeviceMultiplier(domain.DeviceTablet))
	assert.Equal(t, 1.0, DeviceMultiplier(domain.DeviceDesktop))

	// Dispositivo desconhecido cai na linha de base
	assert.Equal(t, 1.0, DeviceMultiplier(domain.DeviceType("smartwatch")))
}

func TestTimeMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		expected float64
	}{
		{
			name:     "Meio da tarde usa horário comercial",
			hour:     14,
			expected: 1.3,
		},
		{
			name:     "Início do horário comercial às 9h",
			hour:     9,
			expected: 1.3,
		},
		{
			name:     "20h cai na janela comercial, que tem prioridade sobre a noturna",
			hour:     20,
			expected: 1.3,
		},
		{
			name:     "21h ainda é horário comercial",
			hour:     21,
			expected: 1.3,
		},
		{
			name:     "22h cai na janela de fim de noite",
			hour:     22,
			expected: 1.5,
		},
		{
			name:     "23h cai na janela de fim de noite",
			hour:     23,
			expected: 1.5,
		},
		{
			name:     "Madrugada usa o multiplicador padrão",
			hour:     3,
			expected: 0.8,
		},
		{
			name:     "8h ainda usa o multiplicador padrão",
			hour:     8,
			expected: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeMultiplier(tt.hour))
		})
	}
}

func TestPlanMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, PlanMultiplier("free"))
	assert.Equal(t, 1.5, PlanMultiplier("starter"))
	assert.Equal(t, 2.0, PlanMultiplier("professional"))
	assert.Equal(t, 3.0, PlanMultiplier("enterprise"))

	// Plano desconhecido não penaliza nem bonifica
	assert.Equal(t, 1.0, PlanMultiplier("vip"))
	assert.Equal(t, 1.0, PlanMultiplier(""))
}

func TestResolveMultipliers(t *testing.T) {
	t.Run("Clique único não sofre redução", func(t *testing.T) {
		multipliers := ResolveMultipliers(domain.ClickContext{
			CountryCode:   "US",
			Device:        domain.DeviceMobile,
			HourOfDay:     14,
			PlanID:        "professional",
			IsUniqueClick: true,
		})

		assert.Equal(t, 2.5, multipliers.Country)
		assert.Equal(t, 1.2, multipliers.Device)
		assert.Equal(t, 1.3, multipliers.Time)
		assert.Equal(t, 2.0, multipliers.Plan)
		assert.Equal(t, 1.0, multipliers.Unique)
		assert.InDelta(t, 7.8, multipliers.Product(), 1e-9)
	})

	t.Run("Clique repetido paga 30% do valor", func(t *testing.T) {
		multipliers := ResolveMultipliers(domain.ClickContext{
			CountryCode:   "US",
			Device:        domain.DeviceMobile,
			HourOfDay:     14,
			PlanID:        "professional",
			IsUniqueClick: false,
		})

		assert.Equal(t, 0.3, multipliers.Unique)
		assert.InDelta(t, 7.8*0.3, multipliers.Product(), 1e-9)
	})
}

func TestIsHighValueCountry(t *testing.T) {
	assert.True(t, IsHighValueCountry("US"))
	assert.True(t, IsHighValueCountry("JP"))
	assert.True(t, IsHighValueCountry("sg"))
	assert.False(t, IsHighValueCountry("BR"))
	assert.False(t, IsHighValueCountry(""))
}
