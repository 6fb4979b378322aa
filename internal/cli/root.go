package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitform/internal/config"
	"github.com/terraincognita07/fitform/internal/i18n"
	"github.com/terraincognita07/fitform/internal/logging"
	"go.uber.org/zap"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
)

// errReported marks a failure whose details were already written to the user.
var errReported = errors.New("reported")

type rootOptions struct {
	configFile string
	envFile    string
	dev        bool

	stdin  *os.File
	stdout io.Writer
	stderr io.Writer

	// readSecret prompts for a secret without echo; tests replace it.
	readSecret func() ([]byte, error)
}

// Execute runs the fitform command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin *os.File, stdout io.Writer, stderr io.Writer) int {
	options := &rootOptions{stdin: stdin, stdout: stdout, stderr: stderr}
	options.readSecret = func() ([]byte, error) {
		return readSecretNoEcho(options.stdin)
	}

	cmd := newRootCommand(options)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, red("Error:"), err)
		}
		return 1
	}
	return 0
}

func newRootCommand(options *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fitform",
		Short: "fitform serves the multi-language fitness intake form and forwards entries to web3forms",
		Long: `fitform serves the fitness center intake form in English, Hindi and Marathi.

Completed forms are validated, their height reconciled between feet/inches and
centimeters, and forwarded to web3forms as one email per registration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(options.stdout)
	cmd.SetErr(options.stderr)
	if options.stdin != nil {
		cmd.SetIn(options.stdin)
	}

	cmd.PersistentFlags().StringVar(&options.configFile, "config", "", "config file (yaml, json or toml); environment variables override it")
	cmd.PersistentFlags().StringVar(&options.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before the environment is read")
	cmd.PersistentFlags().BoolVarP(&options.dev, "dev", "", false, "run in development mode (colored human readable logs)")

	cmd.AddCommand(
		newServeCommand(options),
		newConvertCommand(options),
		newValidateCommand(options),
		newSubmitCommand(options),
	)
	return cmd
}

func (options *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: options.configFile, EnvFile: options.envFile})
	if err != nil {
		return config.Config{}, err
	}
	if options.dev {
		cfg.Log.Development = true
		if cfg.Log.Level == "info" {
			cfg.Log.Level = "debug"
		}
	}
	return cfg, nil
}

func (options *rootOptions) newLogger(cfg config.Config) (*zap.SugaredLogger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Development)
}

func newMessages(language string) (*i18n.Manager, string, error) {
	manager, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		return nil, "", fmt.Errorf("i18n init failed: %w", err)
	}
	return manager, manager.NormalizeLanguage(language), nil
}
