package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitform/internal/models"
	"github.com/terraincognita07/fitform/internal/services"
)

type heightConversionResponse struct {
	services.HeightReading
	Hint string `json:"hint"`
}

// SubmitFormAPI validates and submits a complete record in one call. No session state is kept.
func (handler *Handler) SubmitFormAPI(c *fiber.Ctx) error {
	variant, ok := models.LookupVariant(c.Params("variant"))
	if !ok {
		return handler.NotFound(c)
	}

	record := models.FormRecord{}
	if err := c.BodyParser(&record); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if !handler.submitLimiter.allow(requestLimiterKey(c), time.Now()) {
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}

	controller := services.NewFormController()
	controller.Fill(record)
	messages := handler.i18n.Messages(variant.Language)
	noDisordersLabel := translateMessage(messages, "form.disorders.none")

	outcome, err := controller.Submit(c.UserContext(), handler.submitter, variant, noDisordersLabel)
	switch {
	case errors.Is(err, services.ErrFormInvalid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(formStateResponse{
			OK:     false,
			Errors: localizedFieldErrors(messages, outcome.Errors),
			Focus:  string(outcome.FocusField),
		})
	case err != nil:
		handler.logger.Warnw("api form submission failed", "session", controller.SessionID(), "variant", variant.Slug, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(formStateResponse{
			OK:      false,
			Status:  string(services.StatusFailure),
			Message: translateMessage(messages, services.MessageSubmissionFailure),
		})
	}

	handler.logger.Infow("api form submitted", "session", controller.SessionID(), "variant", variant.Slug)
	return c.JSON(formStateResponse{
		OK:      true,
		Status:  string(services.StatusSuccess),
		Message: translateMessage(messages, services.MessageSubmissionSuccess),
	})
}

// ConvertHeight reconciles a height given either as ?cm= or as ?feet=&inches=.
func (handler *Handler) ConvertHeight(c *fiber.Ctx) error {
	cm := strings.TrimSpace(c.Query("cm"))
	feet := strings.TrimSpace(c.Query("feet"))
	inches := strings.TrimSpace(c.Query("inches"))

	var reading services.HeightReading
	switch {
	case cm != "":
		reading = services.ReconcileHeight(models.FieldHeightCm, services.HeightReading{Centimeters: cm})
		if reading.Inches == "" {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
	case feet != "":
		if inches == "" {
			inches = "0"
		}
		reading = services.ReconcileHeight(models.FieldHeightFeet, services.HeightReading{Feet: feet, Inches: inches})
		if reading.Centimeters == "" {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
	default:
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	return c.JSON(heightConversionResponse{
		HeightReading: reading,
		Hint:          heightHint(currentMessages(c), reading.Centimeters),
	})
}
