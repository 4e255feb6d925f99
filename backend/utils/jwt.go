package utils

import (
	"strings"
	"time"

	"oabplanner/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 72 * time.Hour

// Claims identify the caller. IssuedAt doubles as the sign-in time for
// operations that need a recent login.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func GenerateJWTToken(userID string, cfg *config.Config) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ParseToken(tokenString string, cfg *config.Config) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, NewUnauthorizedError("missing authorization token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, NewUnauthorizedError("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, NewUnauthorizedError("invalid token")
	}
	if claims.UserID == "" {
		return nil, NewUnauthorizedError("invalid user ID in token")
	}
	return claims, nil
}

func ExtractClaimsFromToken(c *fiber.Ctx, cfg *config.Config) (*Claims, error) {
	return ParseToken(c.Get(fiber.HeaderAuthorization), cfg)
}
