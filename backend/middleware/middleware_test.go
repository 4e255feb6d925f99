package middleware

import (
	"net/http/httptest"
	"testing"

	"oabplanner/backend/config"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuthMiddlewareSetsLocals(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Get("/me", AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		require.NotNil(t, Claims(c))
		return c.SendString(UserID(c))
	})

	token, err := utils.GenerateJWTToken("user-1", cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoggingMiddlewareUsesErrorStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Use(LoggingMiddleware(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/missing", func(c *fiber.Ctx) error { return utils.NewNotFoundError("thing") })
	app.Get("/boom", func(c *fiber.Ctx) error { return assert.AnError })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(404), entries[1].ContextMap()["status"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(500), entries[2].ContextMap()["status"])
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}
