package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"oabplanner/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateJWTToken("user-1", cfg)
	require.NoError(t, err)

	claims, err := ParseToken("Bearer "+token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
}

func TestParseTokenRejects(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	other := &config.Config{JWTSecret: "other"}

	token, err := GenerateJWTToken("user-1", other)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredToken, err := expired.SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong secret": token,
		"expired":      expiredToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(raw, cfg)
			var appErr *AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, fiber.StatusUnauthorized, appErr.Status)
		})
	}
}

func TestValidate(t *testing.T) {
	type input struct {
		Email string `validate:"required,email"`
		Goal  int    `validate:"min=1,max=200"`
	}

	assert.NoError(t, Validate(input{Email: "a@b.com", Goal: 10}))

	err := Validate(input{Email: "nope", Goal: 0})
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "Email")
	assert.Contains(t, appErr.Details, "Goal")
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/app", func(c *fiber.Ctx) error { return NewConflictError("busy") })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrTeapot })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		path   string
		status int
	}{
		{"/app", fiber.StatusConflict},
		{"/fiber", fiber.StatusTeapot},
		{"/plain", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode, tt.path)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
	}
}
