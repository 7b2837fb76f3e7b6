package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the form, submission and view endpoints on api.
func RegisterRoutes(api fiber.Router, forms *FormHandler, submit *SubmitHandler, view *ViewHandler) {
	api.Get("/roles", view.HandleGetRoles)
	api.Get("/view", view.HandleGetView)
	api.Get("/view/chart.png", view.HandleGetChart)

	api.Post("/forms", forms.HandleOpen)
	api.Get("/forms/:id", forms.HandleGet)
	api.Delete("/forms/:id", forms.HandleClose)
	api.Post("/forms/:id/resume", forms.HandleUploadResume)
	api.Put("/forms/:id/role", forms.HandleSetRole)
	api.Put("/forms/:id/job-description", forms.HandleSetJobDescription)
	api.Post("/forms/:id/job-description/fetch", forms.HandleFetchJobDescription)
	api.Delete("/forms/:id/draft", forms.HandleReset)
	api.Post("/forms/:id/submit", submit.HandleSubmit)
}
