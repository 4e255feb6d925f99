package controllers

import (
	"time"

	"oabplanner/backend/gate"
	"oabplanner/backend/middleware"
	"oabplanner/backend/services"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Profiles *services.ProfileService
	Gate     *gate.Gate
}

func NewProfileController(profiles *services.ProfileService, g *gate.Gate) *ProfileController {
	return &ProfileController{Profiles: profiles, Gate: g}
}

// GetProfile godoc
// @Summary Get profile
// @Description Returns the authenticated user's planner profile
// @Tags profile
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [get]
func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	profile, err := pc.Profiles.Get(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return appError(err)
	}
	return utils.Success(c, fiber.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Save profile
// @Description Saves the profile and marks it complete. Changing the password needs a sign-in from the last five minutes.
// @Tags profile
// @Accept json
// @Produce json
// @Param input body services.ProfileInput true "Profile data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [put]
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.NewBadRequestError("cannot parse JSON")
	}
	if err := utils.Validate(input); err != nil {
		return err
	}

	var signedInAt time.Time
	if claims := middleware.Claims(c); claims != nil && claims.IssuedAt != nil {
		signedInAt = claims.IssuedAt.Time
	}

	userID := middleware.UserID(c)
	profile, err := pc.Profiles.Save(c.UserContext(), userID, signedInAt, input)
	if err != nil {
		return appError(err)
	}

	route, err := pc.Gate.Resolve(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"profile": profile,
		"route":   route,
	})
}
