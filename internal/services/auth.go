package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/platform/logger"
	"github.com/renthaus/enlistd/internal/requestdata"
)

// AuthService verifies bearer tokens issued by the listing platform and
// stamps the caller identity onto the request context. The token's email
// claim is the identity every aggregate operation is gated on.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	IssueToken(email string, ttl time.Duration) (string, error)
}

type authService struct {
	log          *logger.Logger
	jwtSecretKey string
}

func NewAuthService(log *logger.Logger, jwtSecretKey string) AuthService {
	return &authService{
		log:          log.With("service", "AuthService"),
		jwtSecretKey: jwtSecretKey,
	}
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, fmt.Errorf("missing token")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ctx, fmt.Errorf("invalid token claims")
	}
	email, _ := claims["email"].(string)
	email = types.NormalizeEmail(email)
	if email == "" {
		return ctx, fmt.Errorf("token carries no email claim")
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		CallerID:    email,
	}), nil
}

func (as *authService) IssueToken(email string, ttl time.Duration) (string, error) {
	email = types.NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("missing email")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
