package api

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitform/internal/models"
	"github.com/terraincognita07/fitform/internal/services"
)

const (
	noticeTooManyKey = "form.status.too_many"
	noticeBusyKey    = "form.status.busy"
)

func (handler *Handler) ShowForm(c *fiber.Ctx) error {
	variant, ok := currentVariant(c)
	if !ok {
		return handler.NotFound(c)
	}
	controller := handler.loadFormController(c)
	return handler.respondWithForm(c, variant, controller, formRender{status: fiber.StatusOK})
}

func (handler *Handler) ChangeField(c *fiber.Ctx) error {
	variant, ok := currentVariant(c)
	if !ok {
		return handler.NotFound(c)
	}
	field := models.Field(c.Params("field"))
	if !models.IsRecordField(field) {
		return apiError(c, fiber.StatusBadRequest, "unknown field")
	}

	controller := handler.loadFormController(c)
	posted, err := postedFieldValues(c, field)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	applyPostedValues(controller, posted, field)
	if value, present := posted[field]; present {
		if err := controller.OnChange(field, value); err != nil {
			return apiError(c, fiber.StatusBadRequest, "unknown field")
		}
	}
	return handler.respondFieldUpdate(c, variant, controller)
}

// BlurField validates one field. The posted value is applied first so a blur that races the
// preceding change still validates what the user typed.
func (handler *Handler) BlurField(c *fiber.Ctx) error {
	variant, ok := currentVariant(c)
	if !ok {
		return handler.NotFound(c)
	}
	field := models.Field(c.Params("field"))
	if !models.IsRecordField(field) {
		return apiError(c, fiber.StatusBadRequest, "unknown field")
	}

	controller := handler.loadFormController(c)
	posted, err := postedFieldValues(c, field)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	applyPostedValues(controller, posted, field)
	if value, present := posted[field]; present && value != controller.State().Values.Value(field) {
		if err := controller.OnChange(field, value); err != nil {
			return apiError(c, fiber.StatusBadRequest, "unknown field")
		}
	}
	if _, err := controller.OnBlur(field); err != nil {
		return apiError(c, fiber.StatusBadRequest, "unknown field")
	}
	return handler.respondFieldUpdate(c, variant, controller)
}

func (handler *Handler) SubmitForm(c *fiber.Ctx) error {
	variant, ok := currentVariant(c)
	if !ok {
		return handler.NotFound(c)
	}

	record := models.FormRecord{}
	if err := c.BodyParser(&record); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	controller := handler.loadFormController(c)
	controller.Fill(record)
	return handler.submit(c, variant, controller)
}

func (handler *Handler) submit(c *fiber.Ctx, variant models.Variant, controller *services.FormController) error {
	if !handler.submitLimiter.allow(requestLimiterKey(c), time.Now()) {
		return handler.respondSubmitRefused(c, variant, controller, fiber.StatusTooManyRequests, noticeTooManyKey)
	}

	sessionID := controller.SessionID()
	if !handler.inFlight.acquire(sessionID) {
		return handler.respondSubmitRefused(c, variant, controller, fiber.StatusConflict, noticeBusyKey)
	}
	defer handler.inFlight.release(sessionID)

	noDisordersLabel := handler.i18n.Translate(variant.Language, "form.disorders.none")
	outcome, err := controller.Submit(c.UserContext(), handler.submitter, variant, noDisordersLabel)
	switch {
	case errors.Is(err, services.ErrFormInvalid):
		render := formRender{status: fiber.StatusUnprocessableEntity, focus: string(outcome.FocusField)}
		if acceptsJSON(c) && !isHTMX(c) {
			return handler.respondFormJSON(c, controller, render)
		}
		return handler.respondWithForm(c, variant, controller, render)
	case errors.Is(err, services.ErrSubmissionInFlight):
		return handler.respondSubmitRefused(c, variant, controller, fiber.StatusConflict, noticeBusyKey)
	case err != nil:
		handler.logger.Warnw("form submission failed", "session", sessionID, "variant", variant.Slug, "error", err)
	default:
		handler.logger.Infow("form submitted", "session", sessionID, "variant", variant.Slug)
	}

	status := fiber.StatusOK
	if err != nil {
		status = fiber.StatusBadGateway
	}
	if acceptsJSON(c) && !isHTMX(c) {
		return handler.respondFormJSON(c, controller, formRender{status: status})
	}
	if isHTMX(c) {
		return handler.respondWithForm(c, variant, controller, formRender{status: status})
	}
	return handler.redirectToForm(c, variant, controller, formRender{status: status})
}

func (handler *Handler) respondSubmitRefused(c *fiber.Ctx, variant models.Variant, controller *services.FormController, status int, noticeKey string) error {
	if acceptsJSON(c) && !isHTMX(c) {
		message := "submission pending"
		if status == fiber.StatusTooManyRequests {
			message = "too many requests"
		}
		return apiError(c, status, message)
	}
	return handler.respondWithForm(c, variant, controller, formRender{status: status, noticeKey: noticeKey})
}

func (handler *Handler) respondFieldUpdate(c *fiber.Ctx, variant models.Variant, controller *services.FormController) error {
	if acceptsJSON(c) && !isHTMX(c) {
		return handler.respondFormJSON(c, controller, formRender{status: fiber.StatusOK})
	}
	if isHTMX(c) {
		return handler.respondWithForm(c, variant, controller, formRender{status: fiber.StatusOK})
	}
	return handler.redirectToForm(c, variant, controller, formRender{status: fiber.StatusOK})
}

// respondWithForm renders the session state, then retires a shown success or failure notice.
func (handler *Handler) respondWithForm(c *fiber.Ctx, variant models.Variant, controller *services.FormController, render formRender) error {
	messages := currentMessages(c)
	data := buildFormViewData(messages, variant, controller.State(), render)
	controller.AcknowledgeStatus()
	if err := handler.storeFormState(c, controller); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save form state")
	}

	if isHTMX(c) {
		// htmx only swaps successful responses.
		c.Status(fiber.StatusOK)
		return handler.renderPartial(c, "intake_form_partial", data)
	}
	c.Status(render.status)
	return handler.render(c, "intake", data)
}

func (handler *Handler) respondFormJSON(c *fiber.Ctx, controller *services.FormController, render formRender) error {
	messages := currentMessages(c)
	state := controller.State()
	response := formStateResponse{
		OK:     len(state.Errors) == 0 && state.Status != services.StatusFailure,
		Values: state.Values,
		Errors: localizedFieldErrors(messages, state.Errors),
		Focus:  render.focus,
		Status: string(state.Status),
	}
	switch state.Status {
	case services.StatusSuccess:
		response.Message = translateMessage(messages, services.MessageSubmissionSuccess)
	case services.StatusFailure:
		response.Message = translateMessage(messages, state.FailureReason)
	}

	controller.AcknowledgeStatus()
	if err := handler.storeFormState(c, controller); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save form state")
	}
	return c.Status(render.status).JSON(response)
}

// redirectToForm completes a plain form post with a 303 to the form page. When the session no
// longer fits in its cookie the form is rendered in place so the typed values are not lost.
func (handler *Handler) redirectToForm(c *fiber.Ctx, variant models.Variant, controller *services.FormController, render formRender) error {
	err := handler.saveFormController(c, controller)
	switch {
	case errors.Is(err, errFormStateTooLarge):
		return handler.respondWithForm(c, variant, controller, render)
	case err != nil:
		handler.logger.Errorw("save form state failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save form state")
	}
	return c.Redirect("/"+variant.Slug, fiber.StatusSeeOther)
}

// postedFieldValues reads the request body. JSON clients send {"value": ...} for the target
// field; htmx posts the enclosing form, so every field arrives under its own name.
func postedFieldValues(c *fiber.Ctx, target models.Field) (map[models.Field]string, error) {
	posted := map[models.Field]string{}
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		payload := map[string]string{}
		if len(c.Body()) > 0 {
			if err := json.Unmarshal(c.Body(), &payload); err != nil {
				return nil, err
			}
		}
		if value, ok := payload["value"]; ok {
			posted[target] = value
		} else if value, ok := payload[string(target)]; ok {
			posted[target] = value
		}
		return posted, nil
	}

	args := c.Request().PostArgs()
	for _, field := range models.FieldOrder {
		if args.Has(string(field)) {
			posted[field] = string(args.Peek(string(field)))
		}
	}
	if args.Has("value") {
		posted[target] = string(args.Peek("value"))
	}
	return posted, nil
}

// applyPostedValues stores edits made to other fields since the last round trip. Height siblings
// of the target are derived server-side and are not taken from the post.
func applyPostedValues(controller *services.FormController, posted map[models.Field]string, target models.Field) {
	values := controller.State().Values
	for _, field := range models.FieldOrder {
		if field == target || models.IsHeightField(field) {
			continue
		}
		value, present := posted[field]
		if !present || value == values.Value(field) {
			continue
		}
		_ = controller.OnChange(field, value)
	}
}
