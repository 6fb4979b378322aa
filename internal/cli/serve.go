package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitform/internal/api"
	"github.com/terraincognita07/fitform/internal/config"
	"github.com/terraincognita07/fitform/internal/i18n"
	"github.com/terraincognita07/fitform/internal/web3forms"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the intake form web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), options)
		},
	}
}

func runServe(ctx context.Context, options *rootOptions) error {
	cfg, err := options.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	log, err := options.newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	shutdownTracing, err := setupTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warnw("flush traces failed", "error", err)
		}
	}()

	app, err := newServerApp(cfg, log)
	if err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorw("graceful shutdown failed", "error", err)
		}
	}()

	log.Infow("starting fitform", "address", cfg.Address(), "endpoint", cfg.Web3Forms.Endpoint)
	if err := app.Listen(cfg.Address()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func newServerApp(cfg config.Config, log *zap.SugaredLogger) (*fiber.App, error) {
	i18nManager, err := i18n.NewManager(cfg.Server.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	client, err := web3forms.NewClient(web3FormsConfig(cfg, cfg.Web3Forms.AccessKey), nil)
	if err != nil {
		return nil, fmt.Errorf("web3forms client init failed: %w", err)
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		SecretKey:    cfg.Server.SecretKey,
		CookieSecure: cfg.Server.CookieSecure,
		I18n:         i18nManager,
		Submitter:    client,
		Logger:       log,
		SubmitRate:   cfg.Server.SubmitRate,
		SubmitBurst:  cfg.Server.SubmitBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "fitform",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.Server.CookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, nil
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "fitform_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		// The JSON API is stateless and carries no cookies worth forging.
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}
}

func web3FormsConfig(cfg config.Config, accessKey string) web3forms.Config {
	return web3forms.Config{
		Endpoint:      cfg.Web3Forms.Endpoint,
		AccessKey:     accessKey,
		FromName:      cfg.Web3Forms.FromName,
		SubjectPrefix: cfg.Web3Forms.SubjectPrefix,
		Timeout:       cfg.Web3Forms.Timeout,
	}
}
