package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"password"`
	Active           bool       `json:"active"`
	PlanName         string     `json:"plan_name"`
	ReferredBy       *int       `json:"referred_by"`
	ReferralCode     string     `json:"referral_code"`
	TotalEarnings    float64    `json:"total_earnings"`
	AvailableBalance float64    `json:"available_balance"`
	Deleted          bool       `json:"deleted"`
	DeletedAt        *time.Time `json:"deleted_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID       int     `json:"id"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Active   *bool   `json:"active"`
	PlanName *string `json:"plan_name"`
	Deleted  *bool   `json:"deleted"`
}

type Claims struct {
	UserID    int
	UserName  string
	UserEmail string
	UserPlan  string
	jwt.RegisteredClaims
}
