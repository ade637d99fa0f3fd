package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/pkg/event"
	"github.com/jwebster45206/quest-engine/pkg/inventory"
	"github.com/jwebster45206/quest-engine/pkg/item"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// decodeResponse reads the body and unmarshals into out, surfacing the
// API's error envelope when the status does not match.
func decodeResponse(resp *http.Response, wantStatus int, out interface{}) error {
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func listCreatures(client *http.Client, baseURL string) ([]string, error) {
	resp, err := client.Get(baseURL + "/v1/creatures")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var ids []string
	if err := decodeResponse(resp, http.StatusOK, &ids); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func createSession(client *http.Client, baseURL string, creatureID string) (*state.GameState, error) {
	jsonData, err := json.Marshal(map[string]string{"creature_id": creatureID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/sessions", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var gs state.GameState
	if err := decodeResponse(resp, http.StatusCreated, &gs); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &gs, nil
}

func getSession(client *http.Client, baseURL string, sessionID uuid.UUID) (*state.GameState, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/sessions/%s", baseURL, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var gs state.GameState
	if err := decodeResponse(resp, http.StatusOK, &gs); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &gs, nil
}

// EventsResponse mirrors the API's per-event report envelope.
type EventsResponse struct {
	SessionID uuid.UUID      `json:"session_id"`
	Reports   []event.Report `json:"reports"`
}

func sendEvents(client *http.Client, baseURL string, sessionID uuid.UUID, events []event.GameEvent) (*EventsResponse, error) {
	return postEvents(client, baseURL, sessionID, map[string]interface{}{"events": events})
}

func fireTriggerSet(client *http.Client, baseURL string, sessionID uuid.UUID, filename string) (*EventsResponse, error) {
	return postEvents(client, baseURL, sessionID, map[string]interface{}{"trigger_set": filename})
}

func postEvents(client *http.Client, baseURL string, sessionID uuid.UUID, reqBody map[string]interface{}) (*EventsResponse, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/sessions/%s/events", baseURL, sessionID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var eventsResp EventsResponse
	if err := decodeResponse(resp, http.StatusOK, &eventsResp); err != nil {
		return nil, fmt.Errorf("failed to process events: %w", err)
	}
	return &eventsResp, nil
}

// InventoryResponse mirrors the API's inventory action envelope.
type InventoryResponse struct {
	Action    string               `json:"action"`
	Requested int                  `json:"requested,omitempty"`
	Actual    int                  `json:"actual,omitempty"`
	Used      bool                 `json:"used,omitempty"`
	HP        int                  `json:"hp,omitempty"`
	Inventory *inventory.Inventory `json:"inventory"`
}

func getInventory(client *http.Client, baseURL string, sessionID uuid.UUID) (*inventory.Inventory, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/sessions/%s/inventory", baseURL, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var inv inventory.Inventory
	if err := decodeResponse(resp, http.StatusOK, &inv); err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return &inv, nil
}

func inventoryAction(client *http.Client, baseURL string, sessionID uuid.UUID, action string, itemID, count int) (*InventoryResponse, error) {
	jsonData, err := json.Marshal(map[string]interface{}{
		"action":  action,
		"item_id": itemID,
		"count":   count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/sessions/%s/inventory", baseURL, sessionID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var invResp InventoryResponse
	if err := decodeResponse(resp, http.StatusOK, &invResp); err != nil {
		return nil, fmt.Errorf("failed to run inventory action: %w", err)
	}
	return &invResp, nil
}

// NarrationResponse mirrors the API's narration drain envelope.
type NarrationResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Dialogues []string  `json:"dialogues"`
}

func drainNarration(client *http.Client, baseURL string, sessionID uuid.UUID) ([]string, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/sessions/%s/narration", baseURL, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var narrationResp NarrationResponse
	if err := decodeResponse(resp, http.StatusOK, &narrationResp); err != nil {
		return nil, fmt.Errorf("failed to drain narration: %w", err)
	}
	return narrationResp.Dialogues, nil
}

func listTriggerSets(client *http.Client, baseURL string) (map[string]string, error) {
	resp, err := client.Get(baseURL + "/v1/triggers")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var sets map[string]string
	if err := decodeResponse(resp, http.StatusOK, &sets); err != nil {
		return nil, fmt.Errorf("failed to list trigger sets: %w", err)
	}
	return sets, nil
}

func listItems(client *http.Client, baseURL string) ([]*item.Item, error) {
	resp, err := client.Get(baseURL + "/v1/items")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var items []*item.Item
	if err := decodeResponse(resp, http.StatusOK, &items); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
