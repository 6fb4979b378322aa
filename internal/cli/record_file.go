package cli

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/terraincognita07/fitform/internal/i18n"
	"github.com/terraincognita07/fitform/internal/models"
	"github.com/terraincognita07/fitform/internal/services"
)

// loadRecordFile reads one form record from a YAML, JSON or TOML file.
func loadRecordFile(path string) (models.FormRecord, error) {
	reader := viper.New()
	reader.SetConfigFile(path)
	if err := reader.ReadInConfig(); err != nil {
		return models.FormRecord{}, fmt.Errorf("read record %s: %w", path, err)
	}

	record := models.FormRecord{}
	if err := reader.Unmarshal(&record); err != nil {
		return models.FormRecord{}, fmt.Errorf("decode record %s: %w", path, err)
	}
	return record, nil
}

// printFieldErrors lists errors in declaration order, the height group where feet would be.
func printFieldErrors(out io.Writer, manager *i18n.Manager, language string, fieldErrors map[models.Field]string) {
	for _, field := range models.FieldOrder {
		if field == models.FieldHeightFeet {
			if message, ok := fieldErrors[models.HeightGroup]; ok {
				fmt.Fprintf(out, "%s %s\n", red(string(models.HeightGroup)+":"), manager.Translate(language, message))
			}
		}
		if message, ok := fieldErrors[field]; ok {
			fmt.Fprintf(out, "%s %s\n", red(string(field)+":"), manager.Translate(language, message))
		}
	}
}

func filledController(record models.FormRecord) *services.FormController {
	controller := services.NewFormController()
	controller.Fill(record)
	return controller
}
