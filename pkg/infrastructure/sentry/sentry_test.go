package sentry

import (
	"testing"

	"github.com/getsentry/sentry-go"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("SENTRY_ENVIRONMENT", "")

	cfg := ConfigFromEnv("bodymap-api")
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.ServerName != "bodymap-api" {
		t.Errorf("ServerName = %q", cfg.ServerName)
	}

	t.Setenv("SENTRY_ENVIRONMENT", "prod")
	if got := ConfigFromEnv("x").Environment; got != "prod" {
		t.Errorf("Environment = %q, want prod", got)
	}
}

func TestInit_NoDSN(t *testing.T) {
	if err := Init(Config{}, nil); err != nil {
		t.Errorf("Init without DSN should be a no-op, got %v", err)
	}
}

func TestScrubRequest(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{Headers: map[string]string{
		"Authorization": "Bearer secret",
		"Cookie":        "session=1",
		"Accept":        "image/svg+xml",
	}}}

	got := scrubRequest(event, nil)

	if _, ok := got.Request.Headers["Authorization"]; ok {
		t.Error("Authorization header should be removed")
	}
	if _, ok := got.Request.Headers["Cookie"]; ok {
		t.Error("Cookie header should be removed")
	}
	if got.Request.Headers["Accept"] != "image/svg+xml" {
		t.Error("other headers should be kept")
	}
}
