package api

import (
	"strings"
	"testing"
)

func TestSecureCookieCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}

	sealed, err := codec.seal(formStateCookiePurpose, []byte(`{"sid":"abc"}`))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !strings.HasPrefix(sealed, secureCookieVersion+".") {
		t.Fatalf("expected versioned value, got %q", sealed)
	}
	if strings.Contains(sealed, "abc") {
		t.Fatal("expected sealed value to hide plaintext")
	}

	opened, err := codec.open(formStateCookiePurpose, sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(opened) != `{"sid":"abc"}` {
		t.Fatalf("unexpected plaintext %q", opened)
	}
}

func TestSecureCookieCodecBindsPurposeAndKey(t *testing.T) {
	t.Parallel()

	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}
	sealed, err := codec.seal(formStateCookiePurpose, []byte("payload"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if _, err := codec.open("other_purpose", sealed); err != errInvalidSecureCookieValue {
		t.Fatalf("expected purpose mismatch to fail, got %v", err)
	}

	otherCodec, err := newSecureCookieCodec([]byte("another-secret-key-that-is-long-enough"))
	if err != nil {
		t.Fatalf("init other codec: %v", err)
	}
	if _, err := otherCodec.open(formStateCookiePurpose, sealed); err != errInvalidSecureCookieValue {
		t.Fatalf("expected key mismatch to fail, got %v", err)
	}
}

func TestSecureCookieCodecRejectsMalformedValues(t *testing.T) {
	t.Parallel()

	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}
	for _, raw := range []string{"", "v1", "v2.AAAA", "v1.!!!", "v1.AAAA"} {
		if _, err := codec.open(formStateCookiePurpose, raw); err != errInvalidSecureCookieValue {
			t.Fatalf("%q: expected invalid value error, got %v", raw, err)
		}
	}

	if _, err := newSecureCookieCodec(nil); err == nil {
		t.Fatal("expected empty secret to be rejected")
	}
}
