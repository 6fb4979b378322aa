package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitform/internal/models"
)

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	cookieLanguage := c.Cookies(languageCookieName)
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}

	handler.setRequestLanguage(c, language)
	return c.Next()
}

// VariantRequired resolves the :variant route segment. The variant's language wins over any
// cookie or header preference and is remembered for the landing page.
func (handler *Handler) VariantRequired(c *fiber.Ctx) error {
	variant, ok := models.LookupVariant(c.Params("variant"))
	if !ok {
		return handler.NotFound(c)
	}

	c.Locals(contextVariantKey, variant)
	handler.setRequestLanguage(c, variant.Language)
	if c.Cookies(languageCookieName) != variant.Language {
		handler.setLanguageCookie(c, variant.Language)
	}
	return c.Next()
}

func (handler *Handler) setRequestLanguage(c *fiber.Ctx, language string) {
	language = handler.i18n.NormalizeLanguage(language)
	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().AddDate(1, 0, 0),
	})
}
