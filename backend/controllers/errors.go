package controllers

import (
	"errors"

	"oabplanner/backend/quiz"
	"oabplanner/backend/repository"
	"oabplanner/backend/services"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// appError maps domain errors onto HTTP errors. Unknown errors pass
// through and end up as a 500.
func appError(err error) error {
	switch {
	case errors.Is(err, quiz.ErrNoSession):
		return utils.NewNotFoundError("quiz session")
	case errors.Is(err, quiz.ErrEmptySession):
		return &utils.AppError{Code: utils.CodeNotFound, Message: "no questions available for this selection", Status: fiber.StatusNotFound}
	case errors.Is(err, quiz.ErrInvalidOperation):
		return utils.NewConflictError(err.Error())
	case errors.Is(err, services.ErrProfileRequired):
		return utils.NewConflictError(err.Error())
	case errors.Is(err, services.ErrUnknownAction), errors.Is(err, services.ErrUnknownMode):
		return utils.NewBadRequestError(err.Error())
	case errors.Is(err, services.ErrRequiresRecentLogin):
		return utils.NewRequiresRecentLoginError(err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return utils.NewNotFoundError("resource")
	}
	return err
}
