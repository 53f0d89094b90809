package authservice

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/pkg/config"
)

const tokenIssuer = "rewardly"

type authService struct {
	config *config.Config
	logger zerolog.Logger
}

func NewAuthService(config *config.Config, logger zerolog.Logger) IAuthService {
	return &authService{
		config: config,
		logger: logger,
	}
}

func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*domain.Claim, error) {
	jwtSecret := s.config.JWT.Secret
	if jwtSecret == "" {
		s.logger.Error().Msg("JWT secret not configured")
		return nil, fmt.Errorf("JWT secret not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %v", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*domain.Claim)
	if !ok {
		return nil, fmt.Errorf("invalid claims format")
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("token expired")
	}
	if claims.Issuer != tokenIssuer {
		return nil, fmt.Errorf("invalid issuer")
	}

	return claims, nil
}

func (s *authService) GenerateToken(ctx context.Context, actorID, merchantID, role string) (string, error) {
	jwtSecret := s.config.JWT.Secret
	if jwtSecret == "" {
		s.logger.Error().Msg("JWT secret not configured")
		return "", fmt.Errorf("JWT secret not configured")
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claim := &domain.Claim{
		ActorID:    actorID,
		MerchantID: merchantID,
		Role:       role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    tokenIssuer,
			Subject:   actorID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		s.logger.Error().Err(err).Str("actor_id", actorID).Msg("Failed to sign token")
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}

// VerifyAPIKey guards the service-to-service surface used by the transaction
// collaborator. Comparison is constant-time.
func (s *authService) VerifyAPIKey(key string) bool {
	configured := s.config.Security.APIKey
	if configured == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(key)) == 1
}
