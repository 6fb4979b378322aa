package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitform/internal/i18n"
	"github.com/terraincognita07/fitform/internal/models"
)

const testSecretKey = "test-secret-key-that-is-long-enough-1234"

type recordingSubmitter struct {
	mu          sync.Mutex
	err         error
	submissions []models.Submission
}

func (submitter *recordingSubmitter) Submit(_ context.Context, submission models.Submission) error {
	submitter.mu.Lock()
	defer submitter.mu.Unlock()
	submitter.submissions = append(submitter.submissions, submission)
	return submitter.err
}

func (submitter *recordingSubmitter) count() int {
	submitter.mu.Lock()
	defer submitter.mu.Unlock()
	return len(submitter.submissions)
}

func (submitter *recordingSubmitter) last(t *testing.T) models.Submission {
	t.Helper()
	submitter.mu.Lock()
	defer submitter.mu.Unlock()
	if len(submitter.submissions) == 0 {
		t.Fatal("expected at least one submission")
	}
	return submitter.submissions[len(submitter.submissions)-1]
}

func newFormTestApp(t *testing.T, submitter *recordingSubmitter) *fiber.App {
	t.Helper()
	return newFormTestAppWithConfig(t, HandlerConfig{Submitter: submitter})
}

func newFormTestAppWithConfig(t *testing.T, cfg HandlerConfig) *fiber.App {
	t.Helper()

	i18nManager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}
	cfg.I18n = i18nManager
	if cfg.SecretKey == "" {
		cfg.SecretKey = testSecretKey
	}

	handler, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func validFormValues() url.Values {
	return url.Values{
		"name":         {"Asha Patil"},
		"goal":         {models.GoalWeightLoss},
		"disorders":    {""},
		"weight":       {"68"},
		"heightFeet":   {"5"},
		"heightInches": {"7"},
		"heightCm":     {""},
		"age":          {"31"},
		"whatsapp":     {"98765 43210"},
		"email":        {"asha@example.in"},
		"village":      {"Wagholi"},
		"taluka":       {"Haveli"},
		"district":     {"Pune"},
	}
}

func formRequest(method string, target string, values url.Values) *http.Request {
	request, _ := http.NewRequest(method, target, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func jsonRequest(method string, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	request, _ := http.NewRequest(method, target, strings.NewReader(string(body)))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	return request
}

func withCookie(request *http.Request, cookie *http.Cookie) *http.Request {
	if cookie != nil {
		request.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return request
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, string) {
	t.Helper()
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response, string(body)
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func decodeFormState(t *testing.T, body string) formStateJSON {
	t.Helper()
	payload := formStateJSON{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode response body %q: %v", body, err)
	}
	return payload
}

type formStateJSON struct {
	OK      bool              `json:"ok"`
	Values  map[string]string `json:"values"`
	Errors  map[string]string `json:"errors"`
	Focus   string            `json:"focus"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
}
