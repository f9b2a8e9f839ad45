package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

func defaultRegistry(t *testing.T) *Registry {
	t.Helper()

	registry, err := NewRegistry(DefaultNetworks())
	require.NoError(t, err)

	return registry
}

func TestSelectNetwork(t *testing.T) {
	registry := defaultRegistry(t)

	tests := []struct {
		name      string
		country   string
		device    domain.DeviceType
		networkID string
	}{
		{
			name:      "País premium com rede cripto disponível prefere cripto",
			country:   "US",
			device:    domain.DeviceMobile,
			networkID: "coinzilla",
		},
		{
			name:      "País premium em tablet não tem cripto e cai na maior CPM",
			country:   "US",
			device:    domain.DeviceTablet,
			networkID: "propeller",
		},
		{
			name:      "Brasil só é atendido pela PopAds",
			country:   "BR",
			device:    domain.DeviceMobile,
			networkID: "popads",
		},
		{
			name:      "País premium sem rede cripto adequada usa a maior CPM geral",
			country:   "FR",
			device:    domain.DeviceMobile,
			networkID: "propeller",
		},
		{
			name:      "País sem cobertura usa a primeira rede que atende o dispositivo",
			country:   "XX",
			device:    domain.DeviceTablet,
			networkID: "propeller",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network, ok := registry.SelectNetwork(tt.country, tt.device)

			require.True(t, ok)
			assert.Equal(t, tt.networkID, network.ID)
		})
	}

	t.Run("Dispositivo que nenhuma rede atende retorna falso", func(t *testing.T) {
		_, ok := registry.SelectNetwork("US", domain.DeviceType("smartwatch"))
		assert.False(t, ok)
	})

	t.Run("Seleção é determinística para um registro fixo", func(t *testing.T) {
		first, ok := registry.SelectNetwork("DE", domain.DeviceDesktop)
		require.True(t, ok)

		for i := 0; i < 10; i++ {
			network, ok := registry.SelectNetwork("DE", domain.DeviceDesktop)
			require.True(t, ok)
			assert.Equal(t, first.ID, network.ID)
		}
	})
}

func TestSelectNetworkTieBreak(t *testing.T) {
	// Duas redes com o mesmo CPM base: vence a primeira na ordem do registro
	registry, err := NewRegistry([]domain.AdNetwork{
		{
			ID:          "alpha",
			Name:        "Alpha",
			BaseCPM:     5.0,
			Countries:   []string{"US"},
			DeviceTypes: []domain.DeviceType{domain.DeviceMobile},
			MinCPM:      1.0,
			MaxCPM:      10.0,
		},
		{
			ID:          "beta",
			Name:        "Beta",
			BaseCPM:     5.0,
			Countries:   []string{"US"},
			DeviceTypes: []domain.DeviceType{domain.DeviceMobile},
			MinCPM:      1.0,
			MaxCPM:      10.0,
		},
	})
	require.NoError(t, err)

	network, ok := registry.SelectNetwork("BR", domain.DeviceMobile)
	require.True(t, ok)
	assert.Equal(t, "alpha", network.ID)

	network, ok = registry.SelectNetwork("US", domain.DeviceMobile)
	require.True(t, ok)
	assert.Equal(t, "alpha", network.ID)
}
