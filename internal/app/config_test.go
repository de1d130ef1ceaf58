package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL == "" {
		t.Error("expected a base URL")
	}
	if cfg.ProfilePath != "config.json" {
		t.Errorf("profile path = %q, want config.json", cfg.ProfilePath)
	}
	if cfg.HTTPTimeout <= 0 {
		t.Error("expected HTTPTimeout to be > 0")
	}
}

func TestReadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MANAPOOL_BASE_URL", "https://staging.example.com/api/v1")
	t.Setenv("MANAPOOL_EMAIL", "buyer@example.com")
	t.Setenv("MANAPOOL_API_TOKEN", "tok-123")
	t.Setenv("MANABUY_PROFILE", "/tmp/profile.json")
	t.Setenv("MANABUY_DB_DSN", "postgres://localhost/manabuy")
	t.Setenv("MANABUY_HTTP_TIMEOUT", "90s")

	cfg := ReadConfig()

	if cfg.BaseURL != "https://staging.example.com/api/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Email != "buyer@example.com" || cfg.Token != "tok-123" {
		t.Errorf("credentials not picked up: %q %q", cfg.Email, cfg.Token)
	}
	if cfg.ProfilePath != "/tmp/profile.json" {
		t.Errorf("ProfilePath = %q", cfg.ProfilePath)
	}
	if cfg.DBDSN != "postgres://localhost/manabuy" {
		t.Errorf("DBDSN = %q", cfg.DBDSN)
	}
	if cfg.HTTPTimeout != 90*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func writeProfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `{
		"api_email": "buyer@example.com",
		"shipping_address": {"name":"Buyer","line1":"1 Main St","city":"Springfield","state":"IL","postal_code":"62701","country":"US"},
		"card_preferences": {"conditions":["NM"],"finishes":["nonfoil","foil"]}
	}`)

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}

	if profile.Email != "buyer@example.com" {
		t.Errorf("email = %q", profile.Email)
	}
	// Биллинг по умолчанию совпадает с доставкой.
	if profile.BillingAddress.Line1 != "1 Main St" {
		t.Errorf("billing fallback: %+v", profile.BillingAddress)
	}

	prefs := profile.PreferenceSet()
	if len(prefs.Conditions) != 1 || prefs.Conditions[0] != domain.ConditionNearMint {
		t.Errorf("conditions = %v", prefs.Conditions)
	}
	if len(prefs.Finishes) != 2 {
		t.Errorf("finishes = %v", prefs.Finishes)
	}
	// Языки не заданы — берётся значение по умолчанию.
	if len(prefs.Languages) == 0 {
		t.Error("expected default languages")
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.json")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing file: got %v", err)
	}

	bad := writeProfile(t, "{not json")
	if _, err := LoadProfile(bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad json: got %v", err)
	}

	noShipping := writeProfile(t, `{"api_email":"b@example.com"}`)
	if _, err := LoadProfile(noShipping); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing shipping address: got %v", err)
	}
}
