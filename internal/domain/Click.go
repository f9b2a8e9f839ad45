package domain

import "time"

// ClickContext carrega os dados de um evento de clique usados pelo motor de
// otimização. Transiente: construído por requisição e nunca persistido.
type ClickContext struct {
	CountryCode   string     `json:"country_code"`
	Device        DeviceType `json:"device"`
	HourOfDay     int        `json:"hour_of_day"` // 0-23
	PlanID        string     `json:"plan_id"`
	IsUniqueClick bool       `json:"is_unique_click"`
	ClientIP      string     `json:"client_ip"`
	UserID        int        `json:"user_id"`
}

// Click é o registro persistido de um redirecionamento
type Click struct {
	ID        int        `json:"id"`
	LinkID    int        `json:"link_id"`
	UserID    *int       `json:"user_id"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent"`
	Country   string     `json:"country"`
	Region    string     `json:"region"`
	City      string     `json:"city"`
	Device    DeviceType `json:"device"`
	Browser   string     `json:"browser"`
	OS        string     `json:"os"`
	Referrer  string     `json:"referrer"`
	Language  string     `json:"language"`
	IsUnique  bool       `json:"is_unique"`
	Earnings  float64    `json:"earnings"`
	AdNetwork *string    `json:"ad_network"`
	CreatedAt time.Time  `json:"created_at"`
}

// GeoLocation é o resultado da resolução geográfica de um IP
type GeoLocation struct {
	Country     string  `json:"country"`
	CountryName string  `json:"country_name"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	ISP         string  `json:"isp"`
	IP          string  `json:"ip"`
}

// DeviceInfo é o resultado da análise do User-Agent
type DeviceInfo struct {
	Device         DeviceType `json:"device"`
	Browser        string     `json:"browser"`
	BrowserVersion string     `json:"browser_version"`
	OS             string     `json:"os"`
	OSVersion      string     `json:"os_version"`
	IsBot          bool       `json:"is_bot"`
	UserAgent      string     `json:"user_agent"`
}
