package domain

import "time"

// RejectionReason enumera os motivos de rejeição do motor de ganhos.
// "none" indica sucesso; rejeições são resultados de negócio, não erros.
type RejectionReason string

const (
	RejectionNone              RejectionReason = "none"
	RejectionSuspiciousTraffic RejectionReason = "suspicious_traffic"
	RejectionNoSuitableNetwork RejectionReason = "no_suitable_network"
)

// MultiplierBreakdown detalha cada multiplicador aplicado ao cálculo
type MultiplierBreakdown struct {
	Country float64 `json:"country"`
	Device  float64 `json:"device"`
	Time    float64 `json:"time"`
	Plan    float64 `json:"plan"`
	Unique  float64 `json:"unique"`
}

// Product retorna o produto de todos os multiplicadores
func (m MultiplierBreakdown) Product() float64 {
	return m.Country * m.Device * m.Time * m.Plan * m.Unique
}

// EarningsResult é o valor imutável devolvido pelo motor de otimização
// para cada evento de clique. Amount é sempre >= 0; zero é um resultado
// válido quando o tráfego é rejeitado ou nenhuma rede atende o contexto.
type EarningsResult struct {
	Amount       float64             `json:"amount"`
	AdNetworkID  *string             `json:"ad_network_id"`
	EffectiveCPM float64             `json:"effective_cpm"`
	Multipliers  MultiplierBreakdown `json:"multipliers"`
	Reason       RejectionReason     `json:"reason"`
}

// EarningType diferencia lançamentos de clique e bônus de indicação no ledger
type EarningType string

const (
	EarningTypeClick    EarningType = "CLICK"
	EarningTypeReferral EarningType = "REFERRAL"
)

// Earning é um lançamento no ledger de ganhos de um usuário
type Earning struct {
	ID          int         `json:"id"`
	UserID      int         `json:"user_id"`
	LinkID      *int        `json:"link_id"`
	ClickID     int         `json:"click_id"`
	Amount      float64     `json:"amount"`
	Type        EarningType `json:"type"`
	Source      string      `json:"source"`
	Country     string      `json:"country"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}

// EarningsPrediction estima o potencial de ganhos de um link
type EarningsPrediction struct {
	EstimatedEarnings float64 `json:"estimated_earnings"`
	EstimatedCPM      float64 `json:"estimated_cpm"`
	BasedOnClicks     int     `json:"based_on_clicks"`
}

// PlanRecommendation sugere um plano com base no tráfego esperado
type PlanRecommendation struct {
	Plan              string  `json:"plan"`
	Reason            string  `json:"reason"`
	PotentialEarnings float64 `json:"potential_earnings"`
}

// EarningsSummary agrega os ganhos de um usuário para exibição
type EarningsSummary struct {
	TotalEarnings float64 `json:"total_earnings"`
	TotalClicks   int     `json:"total_clicks"`
	UniqueClicks  int     `json:"unique_clicks"`
	AverageCPM    float64 `json:"average_cpm"`
}
