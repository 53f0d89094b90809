package authservice

import (
	"context"

	"github.com/rewardly/cbs/internal/domain"
)

type IAuthService interface {
	VerifyToken(ctx context.Context, tokenString string) (*domain.Claim, error)
	GenerateToken(ctx context.Context, actorID, merchantID, role string) (string, error)
	VerifyAPIKey(key string) bool
}
