package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/terraincognita07/fitform/internal/models"
)

const (
	centimetersPerInch = 2.54
	inchesPerFoot      = 12
)

// HeightReading is the three coupled height inputs as typed.
type HeightReading struct {
	Feet        string `json:"heightFeet"`
	Inches      string `json:"heightInches"`
	Centimeters string `json:"heightCm"`
}

func HeightReadingOf(record models.FormRecord) HeightReading {
	return HeightReading{
		Feet:        record.HeightFeet,
		Inches:      record.HeightInches,
		Centimeters: record.HeightCm,
	}
}

func (reading HeightReading) ApplyTo(record *models.FormRecord) {
	record.HeightFeet = reading.Feet
	record.HeightInches = reading.Inches
	record.HeightCm = reading.Centimeters
}

func FeetInchesToCentimeters(feet float64, inches float64) float64 {
	return RoundToTenth((feet*inchesPerFoot + inches) * centimetersPerInch)
}

// CentimetersToFeetInches splits cm into whole feet and inches rounded to a tenth.
// An inch value that rounds up to 12.0 is carried into the feet.
func CentimetersToFeetInches(cm float64) (int, float64) {
	totalInches := cm / centimetersPerInch
	feet := math.Floor(totalInches / inchesPerFoot)
	inches := RoundToTenth(math.Mod(totalInches, inchesPerFoot))
	if inches >= inchesPerFoot {
		feet++
		inches = 0
	}
	return int(feet), inches
}

// ReconcileHeight recomputes the representation that was not edited. Validation is not consulted:
// out-of-range inputs still convert.
func ReconcileHeight(edited models.Field, reading HeightReading) HeightReading {
	switch edited {
	case models.FieldHeightFeet, models.FieldHeightInches:
		feet, feetOK := parseDecimal(reading.Feet)
		inches, inchesOK := parseDecimal(reading.Inches)
		if !feetOK || !inchesOK {
			return reading
		}
		reading.Centimeters = FormatTenth(FeetInchesToCentimeters(feet, inches))
	case models.FieldHeightCm:
		if strings.TrimSpace(reading.Centimeters) == "" {
			return reading
		}
		cm, ok := parseDecimal(reading.Centimeters)
		if !ok {
			return reading
		}
		feet, inches := CentimetersToFeetInches(cm)
		reading.Feet = ""
		if feet != 0 {
			reading.Feet = strconv.Itoa(feet)
		}
		reading.Inches = FormatTenth(inches)
	}
	return reading
}

// RoundToTenth rounds half away from zero.
func RoundToTenth(value float64) float64 {
	rounded := math.Round(value*10) / 10
	if rounded == 0 {
		return 0
	}
	return rounded
}

func FormatTenth(value float64) string {
	return strconv.FormatFloat(RoundToTenth(value), 'f', 1, 64)
}
