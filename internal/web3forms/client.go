package web3forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/terraincognita07/fitform/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultEndpoint      = "https://api.web3forms.com/submit"
	DefaultFromName      = "Fitness Form"
	DefaultSubjectPrefix = "New Customer Registration"

	maxResponseBytes = 64 << 10
)

var (
	ErrAccessKeyRequired = errors.New("web3forms access key is required")
	ErrTransport         = errors.New("web3forms transport failure")
	ErrRejected          = errors.New("web3forms rejected submission")
)

type Config struct {
	Endpoint      string
	AccessKey     string
	FromName      string
	SubjectPrefix string
	// Timeout bounds a whole call. Zero leaves the call bounded only by its context.
	Timeout time.Duration
}

type Client struct {
	endpoint      string
	accessKey     string
	fromName      string
	subjectPrefix string
	httpClient    *http.Client
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	accessKey := strings.TrimSpace(cfg.AccessKey)
	if accessKey == "" {
		return nil, ErrAccessKeyRequired
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Timeout > 0 {
		bounded := *httpClient
		bounded.Timeout = cfg.Timeout
		httpClient = &bounded
	}

	return &Client{
		endpoint:      firstNonEmpty(cfg.Endpoint, DefaultEndpoint),
		accessKey:     accessKey,
		fromName:      firstNonEmpty(cfg.FromName, DefaultFromName),
		subjectPrefix: firstNonEmpty(cfg.SubjectPrefix, DefaultSubjectPrefix),
		httpClient:    httpClient,
	}, nil
}

// Submit posts one completed form. It makes exactly one attempt.
func (client *Client) Submit(ctx context.Context, submission models.Submission) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "web3forms.submit", trace.WithAttributes(
		attribute.String("form.variant", submission.Variant.Slug),
		attribute.String("form.session_id", submission.SessionID),
	))
	defer span.End()

	body, err := json.Marshal(client.BuildPayload(submission))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode payload")
		return fmt.Errorf("encode web3forms payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send request")
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer response.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", response.StatusCode))

	result := submitResponse{}
	if err := json.NewDecoder(io.LimitReader(response.Body, maxResponseBytes)).Decode(&result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode response")
		return fmt.Errorf("%w: decode response (status %d): %w", ErrTransport, response.StatusCode, err)
	}

	if !result.Success || response.StatusCode < 200 || response.StatusCode > 299 {
		err := fmt.Errorf("%w: status %d: %s", ErrRejected, response.StatusCode, strings.TrimSpace(result.Message))
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected")
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func (client *Client) Endpoint() string {
	return client.endpoint
}

func firstNonEmpty(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
