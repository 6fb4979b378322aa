package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/terraincognita07/fitform/internal/models"
)

type SubmissionStatus string

const (
	StatusIdle       SubmissionStatus = "idle"
	StatusSubmitting SubmissionStatus = "submitting"
	StatusSuccess    SubmissionStatus = "success"
	StatusFailure    SubmissionStatus = "failure"
)

const (
	MessageSubmissionSuccess = "form.status.success"
	MessageSubmissionFailure = "form.status.failure"
)

var (
	ErrUnknownField       = errors.New("unknown form field")
	ErrFormInvalid        = errors.New("form has validation errors")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrSubmitterRequired  = errors.New("form submitter is required")
)

type FormSubmitter interface {
	Submit(ctx context.Context, submission models.Submission) error
}

// FormState is everything a page session owns. The presentation layer renders it and never mutates it.
type FormState struct {
	SessionID     string                  `json:"sid"`
	Values        models.FormRecord       `json:"values"`
	Errors        map[models.Field]string `json:"errors,omitempty"`
	Status        SubmissionStatus        `json:"status"`
	FailureReason string                  `json:"failure,omitempty"`
}

type SubmitOutcome struct {
	Errors     map[models.Field]string
	FocusField models.Field
}

type FormController struct {
	state FormState
}

func NewFormController() *FormController {
	return &FormController{state: FormState{
		SessionID: uuid.NewString(),
		Errors:    map[models.Field]string{},
		Status:    StatusIdle,
	}}
}

func RestoreFormController(state FormState) *FormController {
	if _, err := uuid.Parse(state.SessionID); err != nil {
		state.SessionID = uuid.NewString()
	}
	state.Errors = copyFieldErrors(state.Errors)
	// A restored session can never still be submitting; the call that set it has returned.
	if state.Status != StatusSuccess && state.Status != StatusFailure {
		state.Status = StatusIdle
	}
	return &FormController{state: state}
}

func (controller *FormController) State() FormState {
	snapshot := controller.state
	snapshot.Errors = copyFieldErrors(controller.state.Errors)
	return snapshot
}

func (controller *FormController) SessionID() string {
	return controller.state.SessionID
}

func (controller *FormController) Submitting() bool {
	return controller.state.Status == StatusSubmitting
}

// OnChange stores value and keeps the height representations in step. Edits are accepted while a
// submission is in flight.
func (controller *FormController) OnChange(field models.Field, value string) error {
	if !models.IsRecordField(field) {
		return ErrUnknownField
	}

	delete(controller.state.Errors, field)
	controller.state.Values.SetValue(field, value)
	if !models.IsHeightField(field) {
		return nil
	}

	before := HeightReadingOf(controller.state.Values)
	after := ReconcileHeight(field, before)
	after.ApplyTo(&controller.state.Values)
	controller.clearChangedHeightErrors(before, after)
	if controller.state.Values.HeightFeet != "" || controller.state.Values.HeightCm != "" {
		delete(controller.state.Errors, models.HeightGroup)
	}
	return nil
}

// OnBlur validates the current value of field. A valid value does not clear an error.
func (controller *FormController) OnBlur(field models.Field) (string, error) {
	if !models.IsRecordField(field) {
		return "", ErrUnknownField
	}

	message := ValidateField(field, controller.state.Values.Value(field))
	if message != "" {
		controller.state.Errors[field] = message
	}
	return message, nil
}

// Fill applies a whole record at once, as a plain form post delivers it. The height side that
// differs from the stored session drives the other; feet and inches win when both sides moved.
func (controller *FormController) Fill(record models.FormRecord) {
	stored := HeightReadingOf(controller.state.Values)
	posted := HeightReadingOf(record)

	for _, field := range models.FieldOrder {
		value := record.Value(field)
		if controller.state.Values.Value(field) != value {
			delete(controller.state.Errors, field)
		}
		controller.state.Values.SetValue(field, value)
	}

	reading := posted
	switch {
	case posted.Feet != stored.Feet || posted.Inches != stored.Inches:
		reading = ReconcileHeight(models.FieldHeightFeet, reading)
	case posted.Centimeters != stored.Centimeters:
		reading = ReconcileHeight(models.FieldHeightCm, reading)
	}
	reading.ApplyTo(&controller.state.Values)
	controller.clearChangedHeightErrors(posted, reading)
	if reading.Feet != "" || reading.Centimeters != "" {
		delete(controller.state.Errors, models.HeightGroup)
	}
}

func (controller *FormController) Submit(ctx context.Context, submitter FormSubmitter, variant models.Variant, noDisordersLabel string) (SubmitOutcome, error) {
	if submitter == nil {
		return SubmitOutcome{}, ErrSubmitterRequired
	}
	if controller.state.Status == StatusSubmitting {
		return SubmitOutcome{}, ErrSubmissionInFlight
	}

	validationErrors := ValidateForm(controller.state.Values)
	if len(validationErrors) > 0 {
		controller.state.Errors = validationErrors
		controller.state.Status = StatusIdle
		controller.state.FailureReason = ""
		focus, _ := FirstInvalidField(validationErrors)
		return SubmitOutcome{Errors: copyFieldErrors(validationErrors), FocusField: focus}, ErrFormInvalid
	}

	controller.state.Errors = map[models.Field]string{}
	controller.state.Status = StatusSubmitting
	controller.state.FailureReason = ""

	submission := models.Submission{
		SessionID:        controller.state.SessionID,
		Record:           controller.state.Values,
		Variant:          variant,
		NoDisordersLabel: noDisordersLabel,
	}
	if err := submitter.Submit(ctx, submission); err != nil {
		controller.state.Status = StatusFailure
		controller.state.FailureReason = MessageSubmissionFailure
		return SubmitOutcome{}, fmt.Errorf("submit form: %w", err)
	}

	controller.state.Values = models.FormRecord{}
	controller.state.Errors = map[models.Field]string{}
	controller.state.Status = StatusSuccess
	return SubmitOutcome{}, nil
}

// AcknowledgeStatus returns a finished submission to idle once its notice has been shown.
func (controller *FormController) AcknowledgeStatus() SubmissionStatus {
	previous := controller.state.Status
	if previous == StatusSuccess || previous == StatusFailure {
		controller.state.Status = StatusIdle
		controller.state.FailureReason = ""
	}
	return previous
}

func (controller *FormController) clearChangedHeightErrors(before HeightReading, after HeightReading) {
	if before.Feet != after.Feet {
		delete(controller.state.Errors, models.FieldHeightFeet)
	}
	if before.Inches != after.Inches {
		delete(controller.state.Errors, models.FieldHeightInches)
	}
	if before.Centimeters != after.Centimeters {
		delete(controller.state.Errors, models.FieldHeightCm)
	}
}

func copyFieldErrors(source map[models.Field]string) map[models.Field]string {
	result := make(map[models.Field]string, len(source))
	for field, message := range source {
		if message != "" {
			result[field] = message
		}
	}
	return result
}
