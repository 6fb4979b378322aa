package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerAPIRoutes(app, handler)
	registerPageRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")
	api.Post("/forms/:variant", handler.SubmitFormAPI)
	api.Get("/height", handler.ConvertHeight)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/", handler.ShowLanding)

	form := app.Group("/:variant", handler.VariantRequired)
	form.Get("", handler.ShowForm)
	form.Post("/fields/:field", handler.ChangeField)
	form.Post("/fields/:field/blur", handler.BlurField)
	form.Post("/submit", handler.SubmitForm)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
