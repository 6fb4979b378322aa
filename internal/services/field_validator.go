package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/fitform/internal/models"
)

const (
	minNameLength    = 2
	minWeightKg      = 20
	maxWeightKg      = 300
	minHeightFeet    = 2
	maxHeightFeet    = 8
	minHeightInches  = 0
	maxHeightInches  = 11.9
	minHeightCm      = 50
	maxHeightCm      = 250
	minAge           = 12
	maxAge           = 100
	whatsAppDigitLen = 10
)

const (
	MessageNameRequired     = "form.error.name_required"
	MessageNameTooShort     = "form.error.name_too_short"
	MessageGoalRequired     = "form.error.goal_required"
	MessageGoalInvalid      = "form.error.goal_invalid"
	MessageWeightRequired   = "form.error.weight_required"
	MessageWeightRange      = "form.error.weight_range"
	MessageFeetRange        = "form.error.feet_range"
	MessageInchesRange      = "form.error.inches_range"
	MessageCmRange          = "form.error.cm_range"
	MessageAgeRequired      = "form.error.age_required"
	MessageAgeRange         = "form.error.age_range"
	MessageWhatsAppRequired = "form.error.whatsapp_required"
	MessageWhatsAppInvalid  = "form.error.whatsapp_invalid"
	MessageEmailRequired    = "form.error.email_required"
	MessageEmailInvalid     = "form.error.email_invalid"
	MessageVillageRequired  = "form.error.village_required"
	MessageTalukaRequired   = "form.error.taluka_required"
	MessageDistrictRequired = "form.error.district_required"
	MessageHeightRequired   = "form.error.height_required"
	MessageTooLong          = "form.error.too_long"
)

// maxFieldRunes caps every input so a session still fits in its cookie.
var maxFieldRunes = map[models.Field]int{
	models.FieldName:         60,
	models.FieldGoal:         32,
	models.FieldDisorders:    200,
	models.FieldWeight:       8,
	models.FieldHeightFeet:   8,
	models.FieldHeightInches: 8,
	models.FieldHeightCm:     8,
	models.FieldAge:          8,
	models.FieldWhatsApp:     20,
	models.FieldEmail:        254,
	models.FieldVillage:      40,
	models.FieldTaluka:       40,
	models.FieldDistrict:     40,
}

var emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateField returns the message key describing what is wrong with raw, or "".
func ValidateField(field models.Field, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if limit, ok := maxFieldRunes[field]; ok && utf8.RuneCountInString(raw) > limit {
		return MessageTooLong
	}

	switch field {
	case models.FieldName:
		if trimmed == "" {
			return MessageNameRequired
		}
		if utf8.RuneCountInString(trimmed) < minNameLength {
			return MessageNameTooShort
		}
	case models.FieldGoal:
		if raw == "" {
			return MessageGoalRequired
		}
		if !models.IsValidGoal(raw) {
			return MessageGoalInvalid
		}
	case models.FieldWeight:
		if raw == "" {
			return MessageWeightRequired
		}
		if !decimalWithin(raw, minWeightKg, maxWeightKg) {
			return MessageWeightRange
		}
	case models.FieldHeightFeet:
		if raw != "" && !decimalWithin(raw, minHeightFeet, maxHeightFeet) {
			return MessageFeetRange
		}
	case models.FieldHeightInches:
		if raw != "" && !decimalWithin(raw, minHeightInches, maxHeightInches) {
			return MessageInchesRange
		}
	case models.FieldHeightCm:
		if raw != "" && !decimalWithin(raw, minHeightCm, maxHeightCm) {
			return MessageCmRange
		}
	case models.FieldAge:
		if raw == "" {
			return MessageAgeRequired
		}
		age, ok := parseWholeNumber(raw)
		if !ok || age < minAge || age > maxAge {
			return MessageAgeRange
		}
	case models.FieldWhatsApp:
		if raw == "" {
			return MessageWhatsAppRequired
		}
		if len(StripNonDigits(raw)) != whatsAppDigitLen {
			return MessageWhatsAppInvalid
		}
	case models.FieldEmail:
		if raw == "" {
			return MessageEmailRequired
		}
		if !emailShapeRegex.MatchString(raw) {
			return MessageEmailInvalid
		}
	case models.FieldVillage:
		if trimmed == "" {
			return MessageVillageRequired
		}
	case models.FieldTaluka:
		if trimmed == "" {
			return MessageTalukaRequired
		}
	case models.FieldDistrict:
		if trimmed == "" {
			return MessageDistrictRequired
		}
	}
	return ""
}

// ValidateForm checks every field plus the height invariant. An empty map means the record is valid.
func ValidateForm(record models.FormRecord) map[models.Field]string {
	errors := map[models.Field]string{}
	for _, field := range models.FieldOrder {
		if message := ValidateField(field, record.Value(field)); message != "" {
			errors[field] = message
		}
	}
	if record.HeightFeet == "" && record.HeightCm == "" {
		errors[models.HeightGroup] = MessageHeightRequired
	}
	return errors
}

// FirstInvalidField picks the field to focus after a rejected submit, in declaration order.
// The height group resolves to the feet input.
func FirstInvalidField(errors map[models.Field]string) (models.Field, bool) {
	for _, field := range models.FieldOrder {
		if errors[field] != "" {
			return field, true
		}
		if field == models.FieldHeightFeet && errors[models.HeightGroup] != "" {
			return models.FieldHeightFeet, true
		}
	}
	return "", false
}

func StripNonDigits(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))
	for _, char := range raw {
		if char >= '0' && char <= '9' {
			builder.WriteRune(char)
		}
	}
	return builder.String()
}

func decimalWithin(raw string, lower float64, upper float64) bool {
	value, ok := parseDecimal(raw)
	if !ok {
		return false
	}
	return value >= lower && value <= upper
}

func parseDecimal(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// parseWholeNumber keeps the integer part, so "25.7" reads as 25.
func parseWholeNumber(raw string) (int, bool) {
	value, ok := parseDecimal(raw)
	if !ok {
		return 0, false
	}
	return int(math.Trunc(value)), true
}
