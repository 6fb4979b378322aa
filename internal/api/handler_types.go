package api

import (
	"html/template"

	"github.com/terraincognita07/fitform/internal/i18n"
	"github.com/terraincognita07/fitform/internal/services"
	"go.uber.org/zap"
)

type Handler struct {
	cookieSecure  bool
	i18n          *i18n.Manager
	templates     map[string]*template.Template
	partials      map[string]*template.Template
	cookies       *secureCookieCodec
	submitter     services.FormSubmitter
	submitLimiter *submitLimiter
	inFlight      *submissionGate
	logger        *zap.SugaredLogger
}

type formFieldView struct {
	Name        string
	Value       string
	Error       string
	Placeholder string
	Focus       bool
}

type goalOptionView struct {
	Value    string
	Label    string
	Selected bool
}

type formNotice struct {
	Class   string
	Message string
}

// formRender carries per-response details that are not part of the session state.
type formRender struct {
	status    int
	focus     string
	noticeKey string
}

type formStateResponse struct {
	OK      bool              `json:"ok"`
	Values  any               `json:"values,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Focus   string            `json:"focus,omitempty"`
	Status  string            `json:"status,omitempty"`
	Message string            `json:"message,omitempty"`
}
