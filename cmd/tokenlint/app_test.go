package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/kamishino/design-tokens-sub001/config"
	"github.com/kamishino/design-tokens-sub001/token"
)

func TestAppStartStop(t *testing.T) {
	cfg := config.DefaultConfig()

	app := NewApp(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}

	// Verify components are initialized
	if app.natsConn == nil {
		t.Error("NATS connection not initialized")
	}
	if app.js == nil {
		t.Error("JetStream not initialized")
	}
	if app.Store() == nil {
		t.Error("Store not initialized")
	}
	if app.embeddedServer == nil {
		t.Error("Embedded NATS server not started")
	}

	app.Stop()

	if app.embeddedServer.Running() {
		t.Error("Embedded server still running after stop")
	}
}

func TestAppStoreRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()

	app := NewApp(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Stop()

	tok := token.Token{
		Path:  "color.primary",
		Type:  token.TypeColor,
		Value: "#3b82f6",
		Scope: token.GlobalScope("acme"),
	}
	if err := app.Store().CreateToken(ctx, tok); err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	got, err := app.Store().GetToken(ctx, tok.Scope, tok.Path)
	if err != nil {
		t.Fatalf("failed to get token: %v", err)
	}
	if got.Value != tok.Value {
		t.Errorf("expected value %q, got %q", tok.Value, got.Value)
	}
}

func TestAppWithExternalNATS(t *testing.T) {
	// Skip if no external NATS is available
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		t.Skip("Skipping external NATS test: NATS_URL not set")
	}

	cfg := config.DefaultConfig()
	cfg.NATS.URL = natsURL
	cfg.NATS.Embedded = false

	app := NewApp(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Stop()

	if app.embeddedServer != nil {
		t.Error("embedded server should be nil when using external NATS")
	}
	if app.natsConn == nil {
		t.Error("NATS connection not initialized")
	}
}
