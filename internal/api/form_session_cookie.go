package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitform/internal/services"
)

const (
	formStateCookiePurpose = "form_state"
	formStateCookieMaxAge  = 24 * time.Hour
)

// Browsers drop cookies over 4096 bytes of name, value and attributes.
const formStateCookieMaxValueBytes = 3800

var errFormStateTooLarge = errors.New("form state exceeds cookie size")

// loadFormController restores the page session from its cookie. A missing, expired or tampered
// cookie starts a fresh session.
func (handler *Handler) loadFormController(c *fiber.Ctx) *services.FormController {
	raw := c.Cookies(formStateCookieName)
	if raw == "" {
		return services.NewFormController()
	}

	plaintext, err := handler.cookies.open(formStateCookiePurpose, raw)
	if err != nil {
		handler.logger.Debugw("discarding form state cookie", "error", err)
		return services.NewFormController()
	}

	var state services.FormState
	if err := json.Unmarshal(plaintext, &state); err != nil {
		handler.logger.Debugw("discarding undecodable form state", "error", err)
		return services.NewFormController()
	}
	return services.RestoreFormController(state)
}

func (handler *Handler) saveFormController(c *fiber.Ctx, controller *services.FormController) error {
	payload, err := json.Marshal(controller.State())
	if err != nil {
		return fmt.Errorf("encode form state: %w", err)
	}
	sealed, err := handler.cookies.seal(formStateCookiePurpose, payload)
	if err != nil {
		return err
	}
	if len(sealed) > formStateCookieMaxValueBytes {
		return errFormStateTooLarge
	}

	c.Cookie(&fiber.Cookie{
		Name:     formStateCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(formStateCookieMaxAge),
	})
	return nil
}

// storeFormState saves the session for responses that carry the rendered state themselves. A state
// too large for a cookie leaves the previous cookie in place.
func (handler *Handler) storeFormState(c *fiber.Ctx, controller *services.FormController) error {
	err := handler.saveFormController(c, controller)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errFormStateTooLarge):
		handler.logger.Warnw("form state not persisted", "session", controller.SessionID(), "error", err)
		return nil
	default:
		handler.logger.Errorw("save form state failed", "error", err)
		return err
	}
}
