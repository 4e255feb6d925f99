package controllers

import (
	"oabplanner/backend/middleware"
	"oabplanner/backend/models"
	"oabplanner/backend/repository"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type NotebookController struct {
	Store  *repository.Store
	Cache  repository.StatsCache
	Logger *zap.Logger
}

func NewNotebookController(store *repository.Store, cache repository.StatsCache, logger *zap.Logger) *NotebookController {
	return &NotebookController{Store: store, Cache: cache, Logger: logger}
}

func outcomeParam(c *fiber.Ctx) (models.Outcome, error) {
	outcome := models.Outcome(c.Params("outcome"))
	if !outcome.Valid() {
		return "", utils.NewBadRequestError("outcome must be mistake or correct")
	}
	return outcome, nil
}

// List godoc
// @Summary List notebook
// @Description Questions the user got wrong (mistake) or right (correct), newest first
// @Tags notebook
// @Produce json
// @Param outcome path string true "Notebook" Enums(mistake, correct)
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notebook/{outcome} [get]
func (nc *NotebookController) List(c *fiber.Ctx) error {
	outcome, err := outcomeParam(c)
	if err != nil {
		return err
	}

	answers, err := nc.Store.Notebook.List(c.UserContext(), middleware.UserID(c), outcome)
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, answers)
}

// Clear godoc
// @Summary Clear notebook
// @Tags notebook
// @Produce json
// @Param outcome path string true "Notebook" Enums(mistake, correct)
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notebook/{outcome} [delete]
func (nc *NotebookController) Clear(c *fiber.Ctx) error {
	outcome, err := outcomeParam(c)
	if err != nil {
		return err
	}

	userID := middleware.UserID(c)
	removed, err := nc.Store.Notebook.Clear(c.UserContext(), userID, outcome)
	if err != nil {
		return err
	}
	if err := nc.Cache.Invalidate(c.UserContext(), userID); err != nil {
		nc.Logger.Warn("stats cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}

	nc.Logger.Info("notebook cleared",
		zap.String("user_id", userID),
		zap.String("outcome", string(outcome)),
		zap.Int("removed", removed),
	)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"removed": removed})
}
