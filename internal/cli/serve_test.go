package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/terraincognita07/fitform/internal/config"
	"github.com/terraincognita07/fitform/internal/logging"
)

func testServeConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			SecretKey:       "0123456789abcdef0123456789abcdef",
			DefaultLanguage: "en",
			SubmitRate:      1,
			SubmitBurst:     3,
		},
		Web3Forms: config.Web3FormsConfig{
			Endpoint:      "http://127.0.0.1:1/submit",
			AccessKey:     "test-access-key",
			FromName:      "Fitness Form",
			SubjectPrefix: "New Customer Registration",
		},
		Log: config.LogConfig{Level: "info"},
	}
}

func TestCSRFMiddlewareConfigUsesCookieSecureFlag(t *testing.T) {
	secureConfig := csrfMiddlewareConfig(true)
	if !secureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be enabled")
	}
	if !secureConfig.CookieHTTPOnly {
		t.Fatal("expected csrf cookie to be httpOnly")
	}
	if secureConfig.CookieName != "fitform_csrf" {
		t.Fatalf("expected csrf cookie name fitform_csrf, got %q", secureConfig.CookieName)
	}
	if secureConfig.KeyLookup != "form:csrf_token" {
		t.Fatalf("expected csrf key lookup form:csrf_token, got %q", secureConfig.KeyLookup)
	}

	if csrfMiddlewareConfig(false).CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be disabled")
	}
}

func TestServerAppServesFormWithCSRFToken(t *testing.T) {
	app, err := newServerApp(testServeConfig(), logging.Nop())
	if err != nil {
		t.Fatalf("build server app: %v", err)
	}

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/english", nil), -1)
	if err != nil {
		t.Fatalf("form request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	found := false
	for _, cookie := range response.Cookies() {
		if cookie.Name == "fitform_csrf" && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected csrf cookie on form page")
	}
}

func TestServerAppRejectsFormPostWithoutCSRFToken(t *testing.T) {
	app, err := newServerApp(testServeConfig(), logging.Nop())
	if err != nil {
		t.Fatalf("build server app: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/english/submit", strings.NewReader("name=Asha"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("submit request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", response.StatusCode)
	}
}

func TestServerAppSkipsCSRFForJSONAPI(t *testing.T) {
	app, err := newServerApp(testServeConfig(), logging.Nop())
	if err != nil {
		t.Fatalf("build server app: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/forms/english", strings.NewReader(`{"name":""}`))
	request.Header.Set("Content-Type", "application/json")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("api request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}
}

func TestServeRefusesInsecureSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "change_me_in_production")
	t.Setenv("WEB3FORMS_ACCESS_KEY", "test-access-key")

	result := runCLI(t, nil, "serve")
	if result.code != 1 || !strings.Contains(result.stderr, "SECRET_KEY") {
		t.Fatalf("expected secret key error, got %d %q", result.code, result.stderr)
	}
}

func TestSetupTracingWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := setupTracing(context.Background(), config.TracingConfig{ServiceName: "fitform"})
	if err != nil {
		t.Fatalf("setup tracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
