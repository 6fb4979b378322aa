package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitform/internal/services"
)

func newValidateCommand(options *rootOptions) *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a form record file without submitting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(options, args[0], language)
		},
	}
	cmd.Flags().StringVar(&language, "lang", "en", "language of error messages (en, hi, mr)")
	return cmd
}

func runValidate(options *rootOptions, path string, language string) error {
	manager, language, err := newMessages(language)
	if err != nil {
		return err
	}
	record, err := loadRecordFile(path)
	if err != nil {
		return err
	}

	values := filledController(record).State().Values
	fieldErrors := services.ValidateForm(values)
	if len(fieldErrors) > 0 {
		printFieldErrors(options.stderr, manager, language, fieldErrors)
		return errReported
	}

	fmt.Fprintf(options.stdout, "%s %s (%s cm)\n", green("valid:"), values.Name, values.HeightCm)
	return nil
}
