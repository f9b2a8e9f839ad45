package optimizing

import (
	"github.com/vfg2006/linkvault-api/internal/domain"
)

// betterNetwork é o comparador nomeado de desempate do seletor: entre duas
// redes, vence a de maior baseCPM; em empate, vence a que aparece primeiro
// na ordem do registro (ou seja, a corrente só é trocada por CPM estritamente maior).
func betterNetwork(best, candidate domain.AdNetwork) domain.AdNetwork {
	if candidate.BaseCPM > best.BaseCPM {
		return candidate
	}
	return best
}

// SelectNetwork escolhe a rede de anúncios mais adequada para o par
// (país, dispositivo). Maximização gulosa com uma regra de domínio:
// países premium preferem redes cripto quando alguma atende o contexto.
// Determinístico para um registro fixo; retorna (zero, false) quando
// nenhuma rede atende nem mesmo o dispositivo.
func (r *Registry) SelectNetwork(countryCode string, device domain.DeviceType) (domain.AdNetwork, bool) {
	var suitable []domain.AdNetwork
	for _, network := range r.networks {
		if network.SupportsCountry(countryCode) && network.SupportsDevice(device) {
			suitable = append(suitable, network)
		}
	}

	if len(suitable) == 0 {
		// Fallback: primeira rede na ordem do registro que atenda o dispositivo,
		// ignorando o país
		for _, network := range r.networks {
			if network.SupportsDevice(device) {
				return network, true
			}
		}
		return domain.AdNetwork{}, false
	}

	// Países premium preferem redes cripto quando houver alguma adequada
	if IsHighValueCountry(countryCode) {
		var crypto []domain.AdNetwork
		for _, network := range suitable {
			if network.IsCrypto() {
				crypto = append(crypto, network)
			}
		}

		if len(crypto) > 0 {
			best := crypto[0]
			for _, network := range crypto[1:] {
				best = betterNetwork(best, network)
			}
			return best, true
		}
	}

	best := suitable[0]
	for _, network := range suitable[1:] {
		best = betterNetwork(best, network)
	}

	return best, true
}
