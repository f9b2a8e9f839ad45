package domain

import "fmt"

// DeviceType representa o tipo de dispositivo detectado no clique
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
)

// SpecialtyCrypto identifica redes especializadas em audiência cripto
const SpecialtyCrypto = "crypto"

// AdNetwork é o perfil imutável de uma rede parceira de anúncios.
// Carregado uma única vez na inicialização do processo; nunca alterado depois.
type AdNetwork struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	BaseCPM     float64      `json:"base_cpm"`
	Countries   []string     `json:"countries"`
	DeviceTypes []DeviceType `json:"device_types"`
	MinCPM      float64      `json:"min_cpm"`
	MaxCPM      float64      `json:"max_cpm"`
	Specialty   string       `json:"specialty,omitempty"`
}

// Validate verifica os limites do perfil. A restrição minCPM <= baseCPM <= maxCPM
// não é garantida pela construção e precisa ser validada no carregamento.
func (n AdNetwork) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("rede de anúncios sem ID")
	}

	if n.MinCPM > n.MaxCPM {
		return fmt.Errorf("rede %s: minCPM (%.2f) maior que maxCPM (%.2f)", n.ID, n.MinCPM, n.MaxCPM)
	}

	if n.BaseCPM < n.MinCPM || n.BaseCPM > n.MaxCPM {
		return fmt.Errorf("rede %s: baseCPM (%.2f) fora do intervalo [%.2f, %.2f]", n.ID, n.BaseCPM, n.MinCPM, n.MaxCPM)
	}

	if len(n.Countries) == 0 || len(n.DeviceTypes) == 0 {
		return fmt.Errorf("rede %s: listas de países e dispositivos não podem ser vazias", n.ID)
	}

	return nil
}

// SupportsCountry verifica se a rede atende o país informado
func (n AdNetwork) SupportsCountry(countryCode string) bool {
	for _, c := range n.Countries {
		if c == countryCode {
			return true
		}
	}
	return false
}

// SupportsDevice verifica se a rede atende o tipo de dispositivo informado
func (n AdNetwork) SupportsDevice(device DeviceType) bool {
	for _, d := range n.DeviceTypes {
		if d == device {
			return true
		}
	}
	return false
}

// IsCrypto indica se a rede é especializada em cripto
func (n AdNetwork) IsCrypto() bool {
	return n.Specialty == SpecialtyCrypto
}
