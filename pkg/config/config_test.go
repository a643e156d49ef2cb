package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Firestore.DialTimeout; got != 10*time.Second {
		t.Fatalf("expected firestore dial timeout 10s, got %v", got)
	}

	if cfg.Firestore.ProductsCollection != "products" {
		t.Fatalf("unexpected products collection %q", cfg.Firestore.ProductsCollection)
	}

	if cfg.Cart.PersistKey != "cart" {
		t.Fatalf("unexpected cart persist key %q", cfg.Cart.PersistKey)
	}

	if cfg.Checkout.MessageBaseURL != "https://api.whatsapp.com/send" {
		t.Fatalf("unexpected checkout base url %q", cfg.Checkout.MessageBaseURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestAppEnvHelpers(t *testing.T) {
	app := AppConfig{Env: "Production"}
	if !app.IsProd() {
		t.Fatal("expected IsProd for production env")
	}
	if app.IsDev() {
		t.Fatal("did not expect IsDev for production env")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvGCPProjectID, "project-123")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
}
