package web3forms

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.GetTracerProvider().Tracer("github.com/terraincognita07/fitform/internal/web3forms")
