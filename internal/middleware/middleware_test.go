package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func testAuthMiddleware(t *testing.T) *JWTAuthMiddleware {
	t.Helper()
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return NewJWTAuthMiddleware(&JWTAuthConfig{
		Enabled:           true,
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
		JWTSecret:         "test-secret",
		JWTExpiryHours:    1,
		SkipPaths:         []string{"/health", "/auth/login"},
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	m := testAuthMiddleware(t)

	token, err := m.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("username = %q", claims.Username)
	}
	if claims.Issuer != "stocksentry" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateCredentials(t *testing.T) {
	m := testAuthMiddleware(t)

	if !m.ValidateCredentials("admin", "secret") {
		t.Error("valid credentials rejected")
	}
	if m.ValidateCredentials("admin", "wrong") {
		t.Error("wrong password accepted")
	}
	if m.ValidateCredentials("other", "secret") {
		t.Error("wrong username accepted")
	}
}

func TestWrapRejectsMissingToken(t *testing.T) {
	m := testAuthMiddleware(t)
	handler := m.Wrap(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/alerts", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestWrapSkipPaths(t *testing.T) {
	m := testAuthMiddleware(t)
	handler := m.Wrap(okHandler())

	for _, path := range []string{"/health", "/auth/login"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestWrapAcceptsBearerToken(t *testing.T) {
	m := testAuthMiddleware(t)
	token, err := m.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	var gotUser string
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/alerts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotUser != "admin" {
		t.Errorf("context user = %q", gotUser)
	}
}

func TestWrapWebsocketQueryToken(t *testing.T) {
	m := testAuthMiddleware(t)
	token, err := m.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/ws/alerts?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	m.Wrap(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("request id missing from context")
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("request id header not set")
	}

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "client-id-1" {
		t.Errorf("request id = %q, want client-id-1", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := NewCORSMiddleware().Wrap(okHandler())

	req := httptest.NewRequest("OPTIONS", "/alerts", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("allow-origin = %q", got)
	}
}
