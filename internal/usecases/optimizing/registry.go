package optimizing

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

// Registry guarda os perfis das redes de anúncios em ordem de inserção.
// Carregado uma vez na inicialização e somente leitura a partir daí, o que
// permite acesso concorrente sem locks. A ordem importa: os desempates do
// seletor são resolvidos pelo primeiro elemento máximo na ordem do registro.
type Registry struct {
	networks []domain.AdNetwork
}

// DefaultNetworks retorna o cadastro padrão das redes parceiras
func DefaultNetworks() []domain.AdNetwork {
	return []domain.AdNetwork{
		{
			ID:          "propeller",
			Name:        "PropellerAds",
			BaseCPM:     5.0,
			Countries:   []string{"US", "CA", "GB", "AU", "DE", "FR", "IT", "ES", "NL", "CH", "SE", "NO", "DK"},
			DeviceTypes: []domain.DeviceType{domain.DeviceMobile, domain.DeviceDesktop, domain.DeviceTablet},
			MinCPM:      1.0,
			MaxCPM:      15.0,
		},
		{
			ID:          "google",
			Name:        "Google AdSense",
			BaseCPM:     3.5,
			Countries:   []string{"US", "CA", "GB", "AU", "DE", "FR", "JP", "KR", "NL", "CH", "SE"},
			DeviceTypes: []domain.DeviceType{domain.DeviceMobile, domain.DeviceDesktop, domain.DeviceTablet},
			MinCPM:      0.5,
			MaxCPM:      12.0,
		},
		{
			ID:          "coinzilla",
			Name:        "Coinzilla",
			BaseCPM:     8.0,
			Countries:   []string{"US", "CA", "GB", "DE", "SG", "JP", "KR", "AU", "CH", "NL"},
			DeviceTypes: []domain.DeviceType{domain.DeviceMobile, domain.DeviceDesktop},
			MinCPM:      2.0,
			MaxCPM:      25.0,
			Specialty:   domain.SpecialtyCrypto,
		},
		{
			ID:          "popads",
			Name:        "PopAds",
			BaseCPM:     4.5,
			Countries:   []string{"US", "CA", "GB", "AU", "DE", "FR", "IT", "ES", "BR", "MX"},
			DeviceTypes: []domain.DeviceType{domain.DeviceMobile, domain.DeviceDesktop, domain.DeviceTablet},
			MinCPM:      1.0,
			MaxCPM:      10.0,
		},
		{
			ID:          "a_ads",
			Name:        "A-Ads",
			BaseCPM:     6.0,
			Countries:   []string{"US", "CA", "GB", "DE", "NL", "CH", "AU", "SG"},
			DeviceTypes: []domain.DeviceType{domain.DeviceMobile, domain.DeviceDesktop},
			MinCPM:      2.0,
			MaxCPM:      15.0,
			Specialty:   domain.SpecialtyCrypto,
		},
	}
}

// NewRegistry valida e carrega os perfis das redes. Perfil inválido
// (ex.: minCPM > maxCPM) é erro fatal de inicialização, nunca de runtime.
func NewRegistry(networks []domain.AdNetwork) (*Registry, error) {
	seen := make(map[string]bool, len(networks))

	for _, network := range networks {
		if err := network.Validate(); err != nil {
			return nil, errors.Wrap(err, "perfil de rede de anúncios inválido")
		}

		if seen[network.ID] {
			return nil, errors.Errorf("rede de anúncios duplicada no registro: %s", network.ID)
		}
		seen[network.ID] = true
	}

	logrus.WithField("networks", len(networks)).Info("Registro de redes de anúncios carregado")

	return &Registry{networks: networks}, nil
}

// Networks retorna os perfis na ordem de inserção
func (r *Registry) Networks() []domain.AdNetwork {
	return r.networks
}

// FindByID busca um perfil pelo identificador
func (r *Registry) FindByID(id string) (domain.AdNetwork, bool) {
	for _, network := range r.networks {
		if network.ID == id {
			return network, true
		}
	}
	return domain.AdNetwork{}, false
}
