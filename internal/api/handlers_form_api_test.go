package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func validRecordPayload() map[string]string {
	payload := map[string]string{}
	for key, values := range validFormValues() {
		payload[key] = values[0]
	}
	return payload
}

func TestSubmitFormAPIReturnsLocalizedErrorsAndFocus(t *testing.T) {
	t.Parallel()

	submitter := &recordingSubmitter{}
	app := newFormTestApp(t, submitter)
	payload := validRecordPayload()
	payload["name"] = ""
	payload["heightFeet"] = ""
	payload["heightInches"] = ""

	response, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/forms/hindi", payload))
	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}
	state := decodeFormState(t, body)
	if state.Errors["name"] != "नाम आवश्यक है" {
		t.Fatalf("expected hindi name error, got %#v", state.Errors)
	}
	if _, ok := state.Errors["height"]; !ok {
		t.Fatalf("expected height group error, got %#v", state.Errors)
	}
	if state.Focus != "name" {
		t.Fatalf("expected focus on name, got %q", state.Focus)
	}
	if submitter.count() != 0 {
		t.Fatal("expected no outbound submission")
	}
}

func TestSubmitFormAPISubmitsWithVariantLabel(t *testing.T) {
	t.Parallel()

	submitter := &recordingSubmitter{}
	app := newFormTestApp(t, submitter)

	response, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/forms/hindi", validRecordPayload()))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", response.StatusCode, body)
	}
	state := decodeFormState(t, body)
	if !state.OK || state.Status != "success" {
		t.Fatalf("expected success, got %#v", state)
	}

	submission := submitter.last(t)
	if submission.NoDisordersLabel != "कोई नहीं" {
		t.Fatalf("expected hindi no-disorders label, got %q", submission.NoDisordersLabel)
	}
	if submission.Variant.Slug != "hindi" {
		t.Fatalf("expected hindi variant, got %q", submission.Variant.Slug)
	}
}

func TestSubmitFormAPIDerivesCentimetersFromFeetAndInches(t *testing.T) {
	t.Parallel()

	submitter := &recordingSubmitter{}
	app := newFormTestApp(t, submitter)
	payload := validRecordPayload()
	payload["heightCm"] = "100"

	response, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/forms/english", payload))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", response.StatusCode, body)
	}
	record := submitter.last(t).Record
	if record.HeightCm != "170.2" {
		t.Fatalf("expected centimeters derived from 5 ft 7 in, got %q", record.HeightCm)
	}
}

func TestSubmitFormAPIReportsUpstreamFailure(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{err: errors.New("rejected")})
	response, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/forms/english", validRecordPayload()))
	if response.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", response.StatusCode)
	}
	if state := decodeFormState(t, body); state.Message != "Failed to submit form. Please try again." {
		t.Fatalf("unexpected failure message %q", state.Message)
	}
}

func TestSubmitFormAPIUnknownVariant(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	response, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/forms/klingon", validRecordPayload()))
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
}

func TestSubmitFormAPIIsRateLimited(t *testing.T) {
	t.Parallel()

	app := newFormTestAppWithConfig(t, HandlerConfig{Submitter: &recordingSubmitter{}, SubmitRate: 0.001, SubmitBurst: 1})
	first, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/forms/english", validRecordPayload()))
	if first.StatusCode != http.StatusOK {
		t.Fatalf("expected first submit to pass, got %d", first.StatusCode)
	}
	second, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/forms/english", validRecordPayload()))
	if second.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", second.StatusCode)
	}
	if state := decodeFormState(t, body); state.Error != "too many requests" {
		t.Fatalf("unexpected error %q", state.Error)
	}
}

func TestConvertHeightFromCentimetersCarriesIntoFeet(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	response, body := doRequest(t, app, mustRequest(http.MethodGet, "/api/height?cm=182.8"))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	conversion := decodeHeightConversion(t, body)
	if conversion["heightFeet"] != "6" || conversion["heightInches"] != "0.0" {
		t.Fatalf("expected 6 ft 0.0 in, got %#v", conversion)
	}
	if conversion["hint"] != "Height: 182.8 cm" {
		t.Fatalf("unexpected hint %q", conversion["hint"])
	}
}

func TestConvertHeightFromFeetAndInches(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	_, body := doRequest(t, app, mustRequest(http.MethodGet, "/api/height?feet=5&inches=7"))
	if conversion := decodeHeightConversion(t, body); conversion["heightCm"] != "170.2" {
		t.Fatalf("expected 170.2 cm, got %#v", conversion)
	}
}

func TestConvertHeightRequiresInput(t *testing.T) {
	t.Parallel()

	app := newFormTestApp(t, &recordingSubmitter{})
	for _, target := range []string{"/api/height", "/api/height?cm=tall", "/api/height?feet=five"} {
		response, _ := doRequest(t, app, mustRequest(http.MethodGet, target))
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, response.StatusCode)
		}
	}
}

func decodeHeightConversion(t *testing.T, body string) map[string]string {
	t.Helper()
	payload := map[string]string{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode height conversion %q: %v", body, err)
	}
	return payload
}
