package domain

import (
	"net/url"
	"time"
)

// Link representa uma URL encurtada rastreada pela plataforma
type Link struct {
	ID            int        `json:"id"`
	UserID        *int       `json:"user_id"`
	OriginalURL   string     `json:"original_url"`
	ShortCode     string     `json:"short_code"`
	CustomAlias   *string    `json:"custom_alias"`
	Password      *string    `json:"password,omitempty"`
	ClickLimit    *int       `json:"click_limit"`
	TotalClicks   int        `json:"total_clicks"`
	UniqueClicks  int        `json:"unique_clicks"`
	TotalEarnings float64    `json:"total_earnings"`
	IsActive      bool       `json:"is_active"`
	ExpiresAt     *time.Time `json:"expires_at"`
	LastClickedAt *time.Time `json:"last_clicked_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Expired verifica se o link já passou da data de expiração
func (l Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// ClickLimitReached verifica se o link atingiu o limite de cliques
func (l Link) ClickLimitReached() bool {
	return l.ClickLimit != nil && l.TotalClicks >= *l.ClickLimit
}

// CreateLinkRequest é o corpo da requisição de encurtamento
type CreateLinkRequest struct {
	OriginalURL string     `json:"original_url"`
	CustomAlias *string    `json:"custom_alias"`
	Password    *string    `json:"password"`
	ClickLimit  *int       `json:"click_limit"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// ValidateURL confere se a URL original é http(s) absoluta
func (r CreateLinkRequest) ValidateURL() bool {
	u, err := url.Parse(r.OriginalURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// DailyAnalytics é a linha agregada diária por link/país/dispositivo/navegador
type DailyAnalytics struct {
	ID       int       `json:"id"`
	LinkID   int       `json:"link_id"`
	Date     time.Time `json:"date"`
	Country  string    `json:"country"`
	Device   string    `json:"device"`
	Browser  string    `json:"browser"`
	Clicks   int       `json:"clicks"`
	Earnings float64   `json:"earnings"`
}
