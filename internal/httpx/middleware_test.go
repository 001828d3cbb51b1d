package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware_AssignsID(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seen == "" {
		t.Error("Expected a generated request id in the context")
	}
	if got := w.Header().Get("X-Request-Id"); got != seen {
		t.Errorf("Expected response header %q, got %q", seen, got)
	}
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	handler := RequestIDMiddleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("X-Request-Id", "client-id-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "client-id-1" {
		t.Errorf("Expected client-supplied id to survive, got %q", got)
	}
}

func TestRequestSizeLimitMiddleware_OverLimit(t *testing.T) {
	handler := RequestSizeLimitMiddleware(1024)(okHandler())

	body := bytes.NewBuffer(make([]byte, 2048))
	req := httptest.NewRequest(http.MethodPost, "/books", body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for request over limit, got %d", w.Code)
	}
}

func TestRecoveryMiddleware_Panic(t *testing.T) {
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 after panic, got %d", w.Code)
	}

	var body Response
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Expected a JSON error body, got %v", err)
	}
	if body.Message == "" {
		t.Error("Expected a human-readable message in the error body")
	}
}

func TestRateLimitMiddleware_Blocks(t *testing.T) {
	rl := NewRateLimitMiddleware(1, 1)
	handler := rl.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 once the burst is spent, got %d", w.Code)
	}
}
