package controllers

import (
	"errors"
	"net/url"

	"oabplanner/backend/middleware"
	"oabplanner/backend/models"
	"oabplanner/backend/repository"
	"oabplanner/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type NotesController struct {
	Store *repository.Store
}

func NewNotesController(store *repository.Store) *NotesController {
	return &NotesController{Store: store}
}

type SaveNoteRequest struct {
	Content string `json:"content" validate:"max=20000" example:"Art. 5º, LXXIII: ação popular"`
}

func subjectParam(c *fiber.Ctx) (string, error) {
	subject, err := url.PathUnescape(c.Params("subject"))
	if err != nil || subject == "" {
		return "", utils.NewBadRequestError("invalid subject")
	}
	return subject, nil
}

// ListNotes godoc
// @Summary List notes
// @Tags notes
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /notes [get]
func (nc *NotesController) ListNotes(c *fiber.Ctx) error {
	notes, err := nc.Store.Notes.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, notes)
}

// GetNote godoc
// @Summary Get note for a subject
// @Description Subjects without a note yet return an empty one
// @Tags notes
// @Produce json
// @Param subject path string true "Subject"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /notes/{subject} [get]
func (nc *NotesController) GetNote(c *fiber.Ctx) error {
	subject, err := subjectParam(c)
	if err != nil {
		return err
	}

	userID := middleware.UserID(c)
	note, err := nc.Store.Notes.Get(c.UserContext(), userID, subject)
	if errors.Is(err, repository.ErrNotFound) {
		note = &models.Note{UserID: userID, Subject: subject}
	} else if err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, note)
}

// SaveNote godoc
// @Summary Save note for a subject
// @Tags notes
// @Accept json
// @Produce json
// @Param subject path string true "Subject"
// @Param input body SaveNoteRequest true "Note"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notes/{subject} [put]
func (nc *NotesController) SaveNote(c *fiber.Ctx) error {
	subject, err := subjectParam(c)
	if err != nil {
		return err
	}

	var input SaveNoteRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.NewBadRequestError("cannot parse JSON")
	}
	if err := utils.Validate(input); err != nil {
		return err
	}

	note := &models.Note{
		UserID:  middleware.UserID(c),
		Subject: subject,
		Content: input.Content,
	}
	if err := nc.Store.Notes.Upsert(c.UserContext(), note); err != nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, note)
}
