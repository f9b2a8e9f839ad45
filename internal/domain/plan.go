package domain

// Plan é um plano de assinatura do dono do link. A tabela de multiplicadores
// por plano vive no motor de otimização; aqui ficam apenas os dados cadastrais.
type Plan struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"` // free, starter, professional, enterprise
	DisplayName     string  `json:"display_name"`
	Price           float64 `json:"price"`
	ReferralBonus   float64 `json:"referral_bonus"`
	WithdrawalLimit float64 `json:"withdrawal_limit"`
	IsActive        bool    `json:"is_active"`
	SortOrder       int     `json:"sort_order"`
}
