package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/terraincognita07/fitform/internal/cli"
)

func TestExecuteConvertPrintsReconciledHeight(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli.Execute(context.Background(), []string{"convert", "--cm", "170.2"}, nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "170.2") || !strings.Contains(stdout.String(), "ft") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestExecuteUnknownCommandFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli.Execute(context.Background(), []string{"bogus"}, nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "unknown command") {
		t.Fatalf("expected unknown command error, got %q", stderr.String())
	}
}
