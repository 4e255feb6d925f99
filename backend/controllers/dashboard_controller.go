package controllers

import (
	"oabplanner/backend/middleware"
	"oabplanner/backend/repository"
	"oabplanner/backend/services"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type DashboardController struct {
	Dashboard *services.DashboardService
	Store     *repository.Store
}

func NewDashboardController(dashboard *services.DashboardService, store *repository.Store) *DashboardController {
	return &DashboardController{Dashboard: dashboard, Store: store}
}

// GetStats godoc
// @Summary Dashboard stats
// @Description Answer counts, accuracy, streak, current cycle subject and the last seven days of practice
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	stats, err := dc.Dashboard.Stats(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

// GetMenu godoc
// @Summary Study menu
// @Description Study modes with their availability, plus the subjects and editions in the question bank
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard/menu [get]
func (dc *DashboardController) GetMenu(c *fiber.Ctx) error {
	menu, err := dc.Dashboard.Menu(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, menu)
}

// GetHistory godoc
// @Summary Session history
// @Description Most recent completed sessions, newest first
// @Tags dashboard
// @Produce json
// @Param limit query int false "Number of sessions" default(20)
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard/history [get]
func (dc *DashboardController) GetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	records, err := dc.Store.Progress.Recent(c.UserContext(), middleware.UserID(c), limit)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, records)
}
