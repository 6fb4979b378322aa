package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitform/internal/models"
	"github.com/terraincognita07/fitform/internal/services"
)

var goalTranslationKeys = map[string]string{
	models.GoalWeightLoss:     "form.goal.weight_loss",
	models.GoalWeightGain:     "form.goal.weight_gain",
	models.GoalWeightMaintain: "form.goal.weight_maintain",
}

func buildFormViewData(messages map[string]string, variant models.Variant, state services.FormState, render formRender) fiber.Map {
	fields := make(map[string]formFieldView, len(models.FieldOrder))
	for _, field := range models.FieldOrder {
		name := string(field)
		fields[name] = formFieldView{
			Name:        name,
			Value:       state.Values.Value(field),
			Error:       translateMessage(messages, state.Errors[field]),
			Placeholder: translateMessage(messages, "form.placeholder."+name),
			Focus:       render.focus == name,
		}
	}

	return fiber.Map{
		"Variant":     variant,
		"Fields":      fields,
		"Goals":       goalOptions(messages, state.Values.Goal),
		"HeightHint":  heightHint(messages, state.Values.HeightCm),
		"HeightError": translateMessage(messages, state.Errors[models.HeightGroup]),
		"Submitting":  state.Status == services.StatusSubmitting,
		"Notice":      formStatusNotice(messages, state, render.noticeKey),
	}
}

func goalOptions(messages map[string]string, selected string) []goalOptionView {
	options := make([]goalOptionView, 0, len(models.Goals))
	for _, goal := range models.Goals {
		options = append(options, goalOptionView{
			Value:    goal,
			Label:    translateMessage(messages, goalTranslationKeys[goal]),
			Selected: goal == selected,
		})
	}
	return options
}

func heightHint(messages map[string]string, centimeters string) string {
	if strings.TrimSpace(centimeters) == "" {
		return translateMessage(messages, "form.height.hint")
	}
	return strings.Replace(translateMessage(messages, "form.height.known"), "%s", centimeters, 1)
}

// formStatusNotice prefers a terminal submission status over a per-response notice.
func formStatusNotice(messages map[string]string, state services.FormState, noticeKey string) *formNotice {
	switch state.Status {
	case services.StatusSuccess:
		return &formNotice{Class: "status-success", Message: translateMessage(messages, services.MessageSubmissionSuccess)}
	case services.StatusFailure:
		reason := state.FailureReason
		if reason == "" {
			reason = services.MessageSubmissionFailure
		}
		return &formNotice{Class: "status-error", Message: translateMessage(messages, reason)}
	}
	if noticeKey == "" {
		return nil
	}
	return &formNotice{Class: "status-error", Message: translateMessage(messages, noticeKey)}
}

func localizedFieldErrors(messages map[string]string, errors map[models.Field]string) map[string]string {
	if len(errors) == 0 {
		return nil
	}
	result := make(map[string]string, len(errors))
	for field, key := range errors {
		result[string(field)] = translateMessage(messages, key)
	}
	return result
}
