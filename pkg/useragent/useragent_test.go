package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		device    domain.DeviceType
		isBot     bool
	}{
		{
			name:      "iPhone é classificado como mobile",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			device:    domain.DeviceMobile,
		},
		{
			name:      "iPad é classificado como tablet",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
			device:    domain.DeviceTablet,
		},
		{
			name:      "Chrome em Windows é classificado como desktop",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			device:    domain.DeviceDesktop,
		},
		{
			name:      "Googlebot é marcado como bot",
			userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			device:    domain.DeviceDesktop,
			isBot:     true,
		},
		{
			name:      "User-Agent vazio cai no padrão desktop",
			userAgent: "",
			device:    domain.DeviceDesktop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Parse(tt.userAgent)

			assert.Equal(t, tt.device, info.Device)
			assert.Equal(t, tt.isBot, info.IsBot)
			assert.Equal(t, tt.userAgent, info.UserAgent)
		})
	}
}
