package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
	"github.com/vladislavdragonenkov/manabuy/internal/resolver"
	"github.com/vladislavdragonenkov/manabuy/internal/service/checkout"
)

func testConfigWithServer(t *testing.T, requests *int64) Config {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Email = "buyer@example.com"
	cfg.Token = "tok"
	cfg.ProfilePath = writeProfile(t, `{
		"shipping_address": {"name":"Buyer","line1":"1 Main St","city":"Springfield","state":"IL","postal_code":"62701","country":"US"}
	}`)
	return cfg
}

func TestRun_MultipleInputModesFailBeforeAnyNetworkCall(t *testing.T) {
	var requests int64
	cfg := testConfigWithServer(t, &requests)

	in := resolver.Input{SKUList: "1,2", CardName: "Opt"}
	_, err := Run(context.Background(), cfg, in, checkout.Options{Buy: true})

	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if n := atomic.LoadInt64(&requests); n != 0 {
		t.Errorf("transport hit %d time(s) before input validation", n)
	}
}

func TestRun_MissingProfileFailsBeforeAnyNetworkCall(t *testing.T) {
	var requests int64
	cfg := testConfigWithServer(t, &requests)
	cfg.ProfilePath = "/nonexistent/config.json"

	_, err := Run(context.Background(), cfg, resolver.Input{CardName: "Opt"}, checkout.Options{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if n := atomic.LoadInt64(&requests); n != 0 {
		t.Errorf("transport hit %d time(s)", n)
	}
}

func TestRun_MissingCredentials(t *testing.T) {
	var requests int64
	cfg := testConfigWithServer(t, &requests)
	cfg.Email = ""
	cfg.Token = ""

	_, err := Run(context.Background(), cfg, resolver.Input{CardName: "Opt"}, checkout.Options{})
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("got %v, want ErrAuthentication", err)
	}
	if n := atomic.LoadInt64(&requests); n != 0 {
		t.Errorf("transport hit %d time(s)", n)
	}
}
