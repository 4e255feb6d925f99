package controllers

import (
	"errors"

	"oabplanner/backend/config"
	"oabplanner/backend/gate"
	"oabplanner/backend/repository"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	Store  *repository.Store
	Gate   *gate.Gate
	Cfg    *config.Config
	Logger *zap.Logger
}

func NewAuthController(store *repository.Store, g *gate.Gate, cfg *config.Config, logger *zap.Logger) *AuthController {
	return &AuthController{Store: store, Gate: g, Cfg: cfg, Logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"aluno@example.com"`
	Password string `json:"password" validate:"required" example:"OAB123456"`
}

// Login godoc
// @Summary User login
// @Description Authenticates with the emailed credential and returns a JWT plus where the client should land
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.NewBadRequestError("cannot parse JSON")
	}
	if err := utils.Validate(input); err != nil {
		return err
	}

	account, err := ac.Store.Accounts.FindByEmail(c.UserContext(), input.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewUnauthorizedError("invalid credentials")
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return utils.NewUnauthorizedError("invalid credentials")
	}

	token, err := utils.GenerateJWTToken(account.ID, ac.Cfg)
	if err != nil {
		return utils.NewInternalError("could not generate token")
	}

	if _, err := ac.Gate.RecordLogin(c.UserContext(), account.ID); err != nil {
		ac.Logger.Warn("failed to update login streak", zap.String("user_id", account.ID), zap.Error(err))
	}

	route, err := ac.Gate.Resolve(c.UserContext(), account.ID)
	if err != nil {
		return err
	}

	ac.Logger.Info("user signed in", zap.String("user_id", account.ID))
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    account.ID,
			"email": account.Email,
			"name":  account.Name,
		},
		"route": route,
	})
}

// Session godoc
// @Summary Resolve session
// @Description Returns the screen the caller belongs on: login, profile setup or dashboard. Missing or invalid tokens resolve to login.
// @Tags auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /session [get]
func (ac *AuthController) Session(c *fiber.Ctx) error {
	var userID string
	if claims, err := utils.ExtractClaimsFromToken(c, ac.Cfg); err == nil {
		userID = claims.UserID
	}

	route, err := ac.Gate.Resolve(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, route)
}
