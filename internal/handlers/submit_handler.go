package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"hirelens/resume-analyzer/internal/models"
	"hirelens/resume-analyzer/internal/services"
)

type SubmitHandler struct {
	forms services.FormRegistry
}

func NewSubmitHandler(forms services.FormRegistry) *SubmitHandler {
	return &SubmitHandler{
		forms: forms,
	}
}

// HandleSubmit handles POST /forms/:id/submit
func (h *SubmitHandler) HandleSubmit(c *fiber.Ctx) error {
	id, controller, err := lookupForm(c, h.forms)
	if err != nil {
		return err
	}

	// The analysis outlives this request; its progress is read via GET /forms/:id.
	if err := controller.Start(context.Background()); err != nil {
		if errors.Is(err, services.ErrSubmissionInFlight) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An analysis is already running for this form",
				"state": controller.State(),
			})
		}

		var serr *models.SubmissionError
		if errors.As(err, &serr) {
			return c.Status(statusForKind(serr.Kind)).JSON(fiber.Map{
				"error": serr.Message,
				"kind":  serr.Kind,
			})
		}
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(formResponse(id, controller))
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrorKindValidation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadGateway
	}
}
