package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwebster45206/quest-engine/internal/storage"
	"github.com/jwebster45206/quest-engine/pkg/item"
)

func seedItems(m *storage.MockStorage) {
	m.AddItems(
		&item.Item{ID: 1, Name: "healing_potion", MaxStack: 5, Usable: true, Consumable: true, Category: "potion", Power: 10},
		&item.Item{ID: 2, Name: "iron_sword", MaxStack: 1},
		&item.Item{ID: 3, Name: "gold_coin", MaxStack: 99},
	)
}

func TestItemsHandler_List(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	seedItems(mockStorage)
	handler := NewItemsHandler(testLogger(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/v1/items", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	var items []*item.Item
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(items))
	}
}

func TestItemsHandler_GetByID(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	seedItems(mockStorage)
	handler := NewItemsHandler(testLogger(), mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/v1/items/1", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	var it item.Item
	if err := json.NewDecoder(rr.Body).Decode(&it); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if it.Name != "healing_potion" {
		t.Errorf("Expected healing_potion, got %s", it.Name)
	}
}

func TestItemsHandler_Errors(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	seedItems(mockStorage)
	handler := NewItemsHandler(testLogger(), mockStorage)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"unknown item", http.MethodGet, "/v1/items/99", http.StatusNotFound},
		{"non-numeric id", http.MethodGet, "/v1/items/sword", http.StatusBadRequest},
		{"method not allowed", http.MethodPost, "/v1/items", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
		})
	}
}
