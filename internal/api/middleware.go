package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitform/internal/models"
)

const (
	languageCookieName  = "fitform_lang"
	formStateCookieName = "fitform_form"
	contextLanguageKey  = "current_language"
	contextMessagesKey  = "current_messages"
	contextVariantKey   = "current_variant"
)

func currentVariant(c *fiber.Ctx) (models.Variant, bool) {
	variant, ok := c.Locals(contextVariantKey).(models.Variant)
	return variant, ok
}
