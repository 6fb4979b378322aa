package api

import (
	"errors"
	"io/fs"

	"github.com/terraincognita07/fitform/internal/i18n"
	"github.com/terraincognita07/fitform/internal/services"
	"github.com/terraincognita07/fitform/internal/templates"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultSubmitRate  = 0.2
	defaultSubmitBurst = 3
)

type HandlerConfig struct {
	SecretKey    string
	CookieSecure bool
	I18n         *i18n.Manager
	Submitter    services.FormSubmitter
	Logger       *zap.SugaredLogger
	// Templates defaults to the templates compiled into the binary.
	Templates   fs.FS
	SubmitRate  float64
	SubmitBurst int
}

func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if cfg.Submitter == nil {
		return nil, errors.New("form submitter is required")
	}

	codec, err := newSecureCookieCodec([]byte(cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	templateFS := cfg.Templates
	if templateFS == nil {
		templateFS = templates.FS
	}
	funcMap := newTemplateFuncMap()
	pages, err := parsePageTemplates(templateFS, funcMap, pageTemplates, partialTemplateFiles)
	if err != nil {
		return nil, err
	}
	partials, err := parsePartialTemplates(templateFS, funcMap, partialTemplateFiles)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	submitRate := cfg.SubmitRate
	if submitRate <= 0 {
		submitRate = defaultSubmitRate
	}
	submitBurst := cfg.SubmitBurst
	if submitBurst <= 0 {
		submitBurst = defaultSubmitBurst
	}

	return &Handler{
		cookieSecure:  cfg.CookieSecure,
		i18n:          cfg.I18n,
		templates:     pages,
		partials:      partials,
		cookies:       codec,
		submitter:     cfg.Submitter,
		submitLimiter: newSubmitLimiter(rate.Limit(submitRate), submitBurst),
		inFlight:      newSubmissionGate(),
		logger:        logger,
	}, nil
}
