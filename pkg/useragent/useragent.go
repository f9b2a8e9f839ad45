// Package useragent extrai informações de dispositivo e navegador do
// cabeçalho User-Agent para alimentar o motor de otimização.
package useragent

import (
	ua "github.com/mileusna/useragent"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

// Parse analisa a string de User-Agent. Nunca falha: entradas vazias ou
// irreconhecíveis caem no padrão desktop, que é a linha de base de CPM.
func Parse(raw string) domain.DeviceInfo {
	parsed := ua.Parse(raw)

	device := domain.DeviceDesktop
	switch {
	case parsed.Mobile:
		device = domain.DeviceMobile
	case parsed.Tablet:
		device = domain.DeviceTablet
	}

	return domain.DeviceInfo{
		Device:         device,
		Browser:        parsed.Name,
		BrowserVersion: parsed.Version,
		OS:             parsed.OS,
		OSVersion:      parsed.OSVersion,
		IsBot:          parsed.Bot,
		UserAgent:      raw,
	}
}
