package handlers

import (
	"bytes"
	"log"

	"github.com/gofiber/fiber/v2"

	"hirelens/resume-analyzer/internal/models"
	"hirelens/resume-analyzer/internal/report"
	"hirelens/resume-analyzer/internal/services"
)

type ViewHandler struct {
	store services.ViewStore
}

func NewViewHandler(store services.ViewStore) *ViewHandler {
	return &ViewHandler{
		store: store,
	}
}

// HandleGetView handles GET /view
func (h *ViewHandler) HandleGetView(c *fiber.Ctx) error {
	return c.JSON(models.ViewResponse{
		Demo: h.store.IsDemo(),
		View: h.store.Current(),
	})
}

// HandleGetChart handles GET /view/chart.png
func (h *ViewHandler) HandleGetChart(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := report.RenderChart(&buf, h.store.Current().ChartSeries); err != nil {
		log.Printf("❌ Failed to render score chart: %v\n", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render score chart")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}

// HandleGetRoles handles GET /roles
func (h *ViewHandler) HandleGetRoles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"roles": models.RoleCatalog,
	})
}
