package domain

import "github.com/dgrijalva/jwt-go"

// Actor roles carried in dashboard tokens.
const (
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

// Claim is the JWT payload for dashboard callers. ActorID doubles as the
// movement actor recorded on manual loads and deductions.
type Claim struct {
	ActorID    string `json:"actor_id"`
	MerchantID string `json:"merchant_id,omitempty"`
	Role       string `json:"role"`
	jwt.StandardClaims
}
