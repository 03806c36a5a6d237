package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouterExactMatch(t *testing.T) {
	r := NewRouter()
	called := false
	r.GET("/api/health", func(w http.ResponseWriter, req *http.Request) {
		called = true
		WriteJSON(w, http.StatusOK, nil)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if !called {
		t.Fatal("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestRouterPathParams(t *testing.T) {
	r := NewRouter()
	var gotID string
	r.GET("/api/sessions/{sessionID}/statistics", func(w http.ResponseWriter, req *http.Request) {
		gotID = PathParam(req, "sessionID")
		WriteJSON(w, http.StatusOK, nil)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/abc-123/statistics", nil))

	if gotID != "abc-123" {
		t.Errorf("expected path param abc-123, got %q", gotID)
	}
}

func TestRouterMethodMismatch(t *testing.T) {
	r := NewRouter()
	r.GET("/api/sessions", func(w http.ResponseWriter, req *http.Request) {
		WriteJSON(w, http.StatusOK, nil)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestRouterNotFoundIsJSON(t *testing.T) {
	r := NewRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a JSON body: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error == nil || resp.Error.Code != "not_found" {
		t.Errorf("expected error code not_found, got %+v", resp.Error)
	}
}

func TestRouterLengthMismatch(t *testing.T) {
	r := NewRouter()
	r.GET("/api/sessions/{sessionID}", func(w http.ResponseWriter, req *http.Request) {
		WriteJSON(w, http.StatusOK, nil)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/a/b", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestPathParamMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if got := PathParam(req, "sessionID"); got != "" {
		t.Errorf("expected empty param, got %q", got)
	}
}
