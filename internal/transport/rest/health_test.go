package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(_ context.Context) error {
	return m.err
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_DBUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{err: nil}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestReady_DBDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{err: errors.New("connection refused")}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestHealth_IncludesVersionAndComponents(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Version != "test-version" {
		t.Errorf("expected version 'test-version', got %q", resp.Version)
	}

	db, ok := resp.Components["database"]
	if !ok {
		t.Fatal("expected database component")
	}
	if db.Status != "ok" {
		t.Errorf("expected database status 'ok', got %q", db.Status)
	}
}
