package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestLandingPageListsEveryVariant(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	response, body := doRequest(t, app, mustRequest(http.MethodGet, "/"))

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	for _, link := range []string{`href="/english"`, `href="/hindi"`, `href="/marathi"`} {
		if !strings.Contains(body, link) {
			t.Fatalf("expected landing page to contain %s", link)
		}
	}
	if !strings.Contains(body, "<title>Mauli Fitness Center</title>") {
		t.Fatal("expected localized page title")
	}
}

func TestFormPageRendersInVariantLanguage(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	cases := map[string]string{
		"/english": `lang="en"`,
		"/hindi":   `lang="hi"`,
		"/marathi": `lang="mr"`,
	}
	for path, marker := range cases {
		response, body := doRequest(t, app, mustRequest(http.MethodGet, path))
		if response.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, response.StatusCode)
		}
		if !strings.Contains(body, marker) {
			t.Fatalf("%s: expected %s in page", path, marker)
		}
		if !strings.Contains(body, `id="intake-form"`) {
			t.Fatalf("%s: expected intake form", path)
		}
		if responseCookie(response.Cookies(), formStateCookieName) == nil {
			t.Fatalf("%s: expected form state cookie", path)
		}
	}
}

func TestHindiFormUsesHindiLabels(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	_, body := doRequest(t, app, mustRequest(http.MethodGet, "/hindi"))
	if !strings.Contains(body, "वजन कम करना") {
		t.Fatal("expected hindi goal label")
	}
	if strings.Contains(body, ">Weight Loss<") {
		t.Fatal("expected goal option labels to be localized")
	}
}

func TestUnknownVariantRendersLocalizedNotFound(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	response, body := doRequest(t, app, mustRequest(http.MethodGet, "/klingon"))

	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
	if !strings.Contains(body, "Page not found") {
		t.Fatalf("expected not found page, got %q", body)
	}
}

func TestUnknownAPIRouteAnswersJSON(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	response, body := doRequest(t, app, mustRequest(http.MethodGet, "/api/unknown"))
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
	if !strings.Contains(body, `"error":"not found"`) {
		t.Fatalf("expected json error, got %q", body)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	response, body := doRequest(t, app, mustRequest(http.MethodGet, "/healthz"))
	if response.StatusCode != http.StatusOK || !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("unexpected health response %d %q", response.StatusCode, body)
	}
}

func mustRequest(method string, target string) *http.Request {
	request, _ := http.NewRequest(method, target, nil)
	return request
}
