package middleware

import (
	"errors"

	"oabplanner/backend/config"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID = "user_id"
	LocalClaims = "claims"
)

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's claims in Locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return err
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// UserID returns the authenticated user set by AuthMiddleware.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

func Claims(c *fiber.Ctx) *utils.Claims {
	claims, _ := c.Locals(LocalClaims).(*utils.Claims)
	return claims
}

func errorStatus(err error) int {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return 0
}
