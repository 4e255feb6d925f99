package controllers

import (
	"oabplanner/backend/middleware"
	"oabplanner/backend/services"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type QuizController struct {
	Study *services.StudyService
}

func NewQuizController(study *services.StudyService) *QuizController {
	return &QuizController{Study: study}
}

// Start godoc
// @Summary Start a study session
// @Description Launches guided, free, notebook replay or mock exam sessions. Any running session is replaced.
// @Tags quiz
// @Accept json
// @Produce json
// @Param input body services.StartRequest true "Study mode"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/start [post]
func (qc *QuizController) Start(c *fiber.Ctx) error {
	var input services.StartRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.NewBadRequestError("cannot parse JSON")
	}
	if err := utils.Validate(input); err != nil {
		return err
	}

	view, err := qc.Study.Start(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return appError(err)
	}
	return utils.Success(c, fiber.StatusCreated, view)
}

// Current godoc
// @Summary Current session
// @Tags quiz
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz [get]
func (qc *QuizController) Current(c *fiber.Ctx) error {
	view, err := qc.Study.Current(middleware.UserID(c))
	if err != nil {
		return appError(err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}

// Action godoc
// @Summary Quiz action
// @Description Runs select, confirm, advance, exit or view on the current session
// @Tags quiz
// @Accept json
// @Produce json
// @Param action path string true "Action name" Enums(select, confirm, advance, exit, view)
// @Param input body services.Command false "Option label for select"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/actions/{action} [post]
func (qc *QuizController) Action(c *fiber.Ctx) error {
	var cmd services.Command
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&cmd); err != nil {
			return utils.NewBadRequestError("cannot parse JSON")
		}
	}
	cmd.Action = c.Params("action")

	view, err := qc.Study.Dispatch(c.UserContext(), middleware.UserID(c), cmd)
	if err != nil {
		return appError(err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}
