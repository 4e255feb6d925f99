package controllers

import (
	"errors"

	"oabplanner/backend/provision"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WebhookController struct {
	Provisioner *provision.Provisioner
	Logger      *zap.Logger
}

func NewWebhookController(p *provision.Provisioner, logger *zap.Logger) *WebhookController {
	return &WebhookController{Provisioner: p, Logger: logger}
}

// Handle godoc
// @Summary Payment webhook
// @Description Provisions an account for a completed checkout and emails the credentials. Other event types are acknowledged and ignored.
// @Tags webhook
// @Accept json
// @Produce json
// @Param event body provision.Event true "Payment provider event"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 405 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]string
// @Router /webhook [post]
func (wc *WebhookController) Handle(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return utils.MethodNotAllowed(c)
	}

	var event provision.Event
	if err := c.App().Config().JSONDecoder(c.Body(), &event); err != nil {
		wc.Logger.Warn("unparseable webhook payload", zap.Error(err))
		return utils.Message(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := wc.Provisioner.HandleEvent(c.UserContext(), event)
	switch {
	case errors.Is(err, provision.ErrMissingEmail):
		return utils.Message(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return utils.Message(c, fiber.StatusInternalServerError, "failed to process event")
	case !result.Handled:
		return utils.Message(c, fiber.StatusOK, "event ignored")
	case result.ExistingAccount:
		return utils.Message(c, fiber.StatusOK, "existing account notified")
	}
	return utils.Message(c, fiber.StatusOK, "account provisioned")
}
