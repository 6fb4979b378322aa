package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitform/internal/models"
)

func (handler *Handler) ShowLanding(c *fiber.Ctx) error {
	return handler.render(c, "landing", fiber.Map{
		"Variants": models.Variants,
	})
}
