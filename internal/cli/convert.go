package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitform/internal/models"
	"github.com/terraincognita07/fitform/internal/services"
)

type convertOptions struct {
	feet     string
	inches   string
	cm       string
	language string
}

func newConvertCommand(options *rootOptions) *cobra.Command {
	convert := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a height between feet/inches and centimeters",
		Example: `  fitform convert --feet 5 --inches 7
  fitform convert --cm 182.8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(options, convert)
		},
	}
	cmd.Flags().StringVar(&convert.feet, "feet", "", "height in feet")
	cmd.Flags().StringVar(&convert.inches, "inches", "", "additional inches (defaults to 0 when --feet is set)")
	cmd.Flags().StringVar(&convert.cm, "cm", "", "height in centimeters")
	cmd.Flags().StringVar(&convert.language, "lang", "en", "language of range warnings (en, hi, mr)")
	cmd.MarkFlagsMutuallyExclusive("cm", "feet")
	cmd.MarkFlagsMutuallyExclusive("cm", "inches")
	return cmd
}

func runConvert(options *rootOptions, convert *convertOptions) error {
	manager, language, err := newMessages(convert.language)
	if err != nil {
		return err
	}

	var (
		reading services.HeightReading
		checked []models.Field
	)
	switch {
	case strings.TrimSpace(convert.cm) != "":
		reading = services.ReconcileHeight(models.FieldHeightCm, services.HeightReading{Centimeters: strings.TrimSpace(convert.cm)})
		if reading.Inches == "" {
			return fmt.Errorf("invalid --cm value %q", convert.cm)
		}
		checked = []models.Field{models.FieldHeightCm}
	case strings.TrimSpace(convert.feet) != "" || strings.TrimSpace(convert.inches) != "":
		feet := firstNonBlank(convert.feet, "0")
		inches := firstNonBlank(convert.inches, "0")
		reading = services.ReconcileHeight(models.FieldHeightFeet, services.HeightReading{Feet: feet, Inches: inches})
		if reading.Centimeters == "" {
			return fmt.Errorf("invalid --feet/--inches values %q/%q", convert.feet, convert.inches)
		}
		checked = []models.Field{models.FieldHeightFeet, models.FieldHeightInches}
	default:
		return errors.New("either --cm or --feet/--inches is required")
	}

	record := models.FormRecord{}
	reading.ApplyTo(&record)
	for _, field := range checked {
		if message := services.ValidateField(field, record.Value(field)); message != "" {
			fmt.Fprintln(options.stderr, yellow("Warning:"), manager.Translate(language, message))
		}
	}

	fmt.Fprintf(options.stdout, "%s ft %s in = %s cm\n",
		green(firstNonBlank(reading.Feet, "0")), green(reading.Inches), green(reading.Centimeters))
	return nil
}

func firstNonBlank(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
