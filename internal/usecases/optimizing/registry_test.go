package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

func TestNewRegistry(t *testing.T) {
	t.Run("Cadastro padrão carrega sem erros", func(t *testing.T) {
		registry, err := NewRegistry(DefaultNetworks())

		require.NoError(t, err)
		assert.Len(t, registry.Networks(), 5)
	})

	t.Run("Perfil com piso maior que o teto é rejeitado", func(t *testing.T) {
		_, err := NewRegistry([]domain.AdNetwork{
			{
				ID:          "broken",
				Name:        "Broken",
				BaseCPM:     5.0,
				Countries:   []string{"US"},
				DeviceTypes: []domain.DeviceType{domain.DeviceMobile},
				MinCPM:      10.0,
				MaxCPM:      2.0,
			},
		})

		assert.Error(t, err)
	})

	t.Run("Identificador duplicado é rejeitado", func(t *testing.T) {
		networks := DefaultNetworks()
		networks = append(networks, networks[0])

		_, err := NewRegistry(networks)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicada")
	})
}

func TestFindByID(t *testing.T) {
	registry := defaultRegistry(t)

	network, ok := registry.FindByID("coinzilla")
	require.True(t, ok)
	assert.Equal(t, "Coinzilla", network.Name)
	assert.True(t, network.IsCrypto())

	_, ok = registry.FindByID("inexistente")
	assert.False(t, ok)
}
