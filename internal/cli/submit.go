package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitform/internal/models"
	"github.com/terraincognita07/fitform/internal/services"
	"github.com/terraincognita07/fitform/internal/web3forms"
)

func newSubmitCommand(options *rootOptions) *cobra.Command {
	var variantName string
	cmd := &cobra.Command{
		Use:   "submit FILE",
		Short: "Validate a form record file and submit it to web3forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, ok := models.LookupVariant(variantName)
			if !ok {
				return fmt.Errorf("unknown variant %q (english, hindi or marathi)", variantName)
			}
			return runSubmit(cmd, options, args[0], variant)
		},
	}
	cmd.Flags().StringVar(&variantName, "variant", models.VariantEnglish.Slug, "form variant the record was filled in (english, hindi, marathi)")
	return cmd
}

func runSubmit(cmd *cobra.Command, options *rootOptions, path string, variant models.Variant) error {
	cfg, err := options.loadConfig()
	if err != nil {
		return err
	}
	log, err := options.newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	manager, language, err := newMessages(variant.Language)
	if err != nil {
		return err
	}
	record, err := loadRecordFile(path)
	if err != nil {
		return err
	}

	accessKey := strings.TrimSpace(cfg.Web3Forms.AccessKey)
	if accessKey == "" {
		if accessKey, err = options.promptAccessKey(); err != nil {
			return err
		}
	}
	client, err := web3forms.NewClient(web3FormsConfig(cfg, accessKey), nil)
	if err != nil {
		return err
	}

	controller := filledController(record)
	noDisordersLabel := manager.Translate(language, "form.disorders.none")
	outcome, err := controller.Submit(cmd.Context(), client, variant, noDisordersLabel)
	switch {
	case errors.Is(err, services.ErrFormInvalid):
		printFieldErrors(options.stderr, manager, language, outcome.Errors)
		return errReported
	case err != nil:
		log.Warnw("form submission failed", "session", controller.SessionID(), "variant", variant.Slug, "error", err)
		fmt.Fprintln(options.stderr, red(manager.Translate(language, services.MessageSubmissionFailure)))
		return errReported
	}

	log.Infow("form submitted", "session", controller.SessionID(), "variant", variant.Slug)
	fmt.Fprintln(options.stdout, green(manager.Translate(language, services.MessageSubmissionSuccess)))
	return nil
}
