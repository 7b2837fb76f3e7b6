package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hirelens/resume-analyzer/internal/models"
	"hirelens/resume-analyzer/internal/services"
)

type FormHandler struct {
	forms       services.FormRegistry
	storage     services.ResumeStorage
	inspector   services.PDFInspector
	jobPostings services.JobPostingFetcher
	maxFileSize int64
}

func NewFormHandler(
	forms services.FormRegistry,
	storage services.ResumeStorage,
	inspector services.PDFInspector,
	jobPostings services.JobPostingFetcher,
	maxFileSize int64,
) *FormHandler {
	return &FormHandler{
		forms:       forms,
		storage:     storage,
		inspector:   inspector,
		jobPostings: jobPostings,
		maxFileSize: maxFileSize,
	}
}

// HandleOpen handles POST /forms
func (h *FormHandler) HandleOpen(c *fiber.Ctx) error {
	id, controller := h.forms.Open()
	return c.Status(fiber.StatusCreated).JSON(formResponse(id, controller))
}

// HandleGet handles GET /forms/:id
func (h *FormHandler) HandleGet(c *fiber.Ctx) error {
	id, controller, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(formResponse(id, controller))
}

// HandleClose handles DELETE /forms/:id
func (h *FormHandler) HandleClose(c *fiber.Ctx) error {
	id, _, err := h.lookup(c)
	if err != nil {
		return err
	}
	if err := h.forms.Close(id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Form not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadResume handles POST /forms/:id/resume
func (h *FormHandler) HandleUploadResume(c *fiber.Ctx) error {
	id, controller, err := h.lookup(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume uploaded. Please upload 'resume' as a PDF file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	path, err := h.storage.SaveResume(file)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedResumeType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Resume must be a PDF file",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	resume, err := h.inspector.Inspect(path, file.Filename)
	if err != nil {
		// Cleanup the stored copy if it is not a usable PDF
		_ = h.storage.DeleteResume(path)
		log.Printf("⚠️  Rejected resume %q for form %s: %v\n", file.Filename, id, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume could not be read as a PDF",
		})
	}

	previous := controller.Draft().ResumeFile
	controller.SetResumeFile(resume)
	if previous != nil {
		h.discardResume(controller, previous)
	}

	return c.Status(fiber.StatusCreated).JSON(formResponse(id, controller))
}

// HandleSetRole handles PUT /forms/:id/role
func (h *FormHandler) HandleSetRole(c *fiber.Ctx) error {
	id, controller, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req models.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := controller.SetTargetRole(req.Role); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unknown role: %q", req.Role),
			"roles": models.RoleCatalog,
		})
	}
	return c.JSON(formResponse(id, controller))
}

// HandleSetJobDescription handles PUT /forms/:id/job-description
func (h *FormHandler) HandleSetJobDescription(c *fiber.Ctx) error {
	id, controller, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req models.JobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	controller.SetJobDescription(req.JobDescription)
	return c.JSON(formResponse(id, controller))
}

// HandleFetchJobDescription handles POST /forms/:id/job-description/fetch
func (h *FormHandler) HandleFetchJobDescription(c *fiber.Ctx) error {
	id, controller, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req models.JobPostingRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url is required",
		})
	}

	text, err := h.jobPostings.FetchDescription(c.UserContext(), req.URL)
	if err != nil {
		log.Printf("⚠️  Failed to fetch job posting %s: %v\n", req.URL, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not read a job description from that URL",
		})
	}

	controller.SetJobDescription(text)
	return c.JSON(formResponse(id, controller))
}

// HandleReset handles DELETE /forms/:id/draft
func (h *FormHandler) HandleReset(c *fiber.Ctx) error {
	id, controller, err := h.lookup(c)
	if err != nil {
		return err
	}

	previous := controller.Draft().ResumeFile
	controller.Reset()
	if previous != nil {
		h.discardResume(controller, previous)
	}
	return c.JSON(formResponse(id, controller))
}

// discardResume removes a replaced resume once no submission can still be
// reading it.
func (h *FormHandler) discardResume(controller services.SubmissionController, file *models.ResumeFile) {
	go func() {
		controller.Wait()
		if err := h.storage.DeleteResume(file.Path); err != nil {
			log.Printf("⚠️  Failed to remove replaced resume: %v\n", err)
		}
	}()
}

func (h *FormHandler) lookup(c *fiber.Ctx) (uuid.UUID, services.SubmissionController, error) {
	return lookupForm(c, h.forms)
}

func lookupForm(c *fiber.Ctx, forms services.FormRegistry) (uuid.UUID, services.SubmissionController, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid form ID format")
	}

	controller, err := forms.Get(id)
	if err != nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusNotFound, "Form not found")
	}
	return id, controller, nil
}

func formResponse(id uuid.UUID, controller services.SubmissionController) models.FormResponse {
	return models.FormResponse{
		ID:     id.String(),
		State:  controller.State(),
		Draft:  controller.Draft(),
		Error:  controller.LastError(),
		Policy: controller.Policy(),
	}
}
