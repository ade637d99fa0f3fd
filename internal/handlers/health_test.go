package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jwebster45206/quest-engine/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func TestHealthHandler_Healthy(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewHealthHandler(mockStorage, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "healthy" {
		t.Errorf("Expected healthy status, got %s", response.Status)
	}
	if response.Components["storage"] != "healthy" {
		t.Errorf("Expected healthy storage component, got %s", response.Components["storage"])
	}
}

func TestHealthHandler_Degraded(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	mockStorage.SetPingError(errors.New("connection refused"))
	handler := NewHealthHandler(mockStorage, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rr.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "degraded" {
		t.Errorf("Expected degraded status, got %s", response.Status)
	}
	if response.Components["storage"] != "unhealthy" {
		t.Errorf("Expected unhealthy storage component, got %s", response.Components["storage"])
	}
}
