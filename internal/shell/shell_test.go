package shell

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testConfig() *Config {
	return &Config{Bind: "localhost", Port: 8080, Version: "0.1.0-test"}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		port int
		ok   bool
	}{
		{0, false},
		{-1, false},
		{1, true},
		{8080, true},
		{65535, true},
		{65536, false},
	}
	for _, tc := range cases {
		cfg := testConfig()
		cfg.Port = tc.port
		if err := cfg.Validate(); (err == nil) != tc.ok {
			t.Errorf("port %d: expected ok=%v, got %v", tc.port, tc.ok, err)
		}
	}
}

func TestConfigAddr(t *testing.T) {
	if got := testConfig().addr(); got != "localhost:8080" {
		t.Errorf("expected localhost:8080, got %q", got)
	}
}

func TestHealthCheck(t *testing.T) {
	mux := NewRouter(testConfig())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "ok\n" {
		t.Errorf("expected ok body, got %q", got)
	}
}

func TestVersionEndpoint(t *testing.T) {
	mux := NewRouter(testConfig())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "0.1.0-test") {
		t.Errorf("expected the version in the body, got %q", rec.Body.String())
	}
}

func TestRoomQRIsPNG(t *testing.T) {
	mux := NewRouter(testConfig())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/qr/4821", nil)
	req.Host = "play.example.com"
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("expected image/png, got %q", got)
	}
	body := rec.Body.Bytes()
	if len(body) < 8 || string(body[1:4]) != "PNG" {
		t.Error("expected a PNG payload")
	}
}
