package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func writeContentFile(t *testing.T, dataDir, subdir, name, content string) {
	t.Helper()
	dir := filepath.Join(dataDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func setupContentStorage(t *testing.T) (*RedisStorage, string) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	dataDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	rs := NewRedisStorage(mr.Addr(), dataDir, logger)
	t.Cleanup(func() { _ = rs.Close() })

	return rs, dataDir
}

func TestLoadCatalog(t *testing.T) {
	rs, dataDir := setupContentStorage(t)

	writeContentFile(t, dataDir, "items", "consumables.json", `[
		{"id": 1, "name": "healing_potion", "max_stack": 5, "usable": true, "consumable": true, "category": "potion", "power": 10},
		{"id": 3, "name": "gold_coin", "max_stack": 99}
	]`)
	writeContentFile(t, dataDir, "items", "weapons.json", `[
		{"id": 2, "name": "rusty_sword", "max_stack": 1}
	]`)

	catalog, err := rs.LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if got := len(catalog.ListItems()); got != 3 {
		t.Errorf("Catalog has %d items, want 3", got)
	}
	if it := catalog.GetItemByID(1); it == nil || it.Name != "healing_potion" {
		t.Errorf("GetItemByID(1) = %v, want healing_potion", it)
	}
	if it := catalog.GetItemByName("rusty_sword"); it == nil || it.ID != 2 {
		t.Errorf("GetItemByName(rusty_sword) = %v, want id 2", it)
	}
}

func TestLoadCatalog_SkipsMalformedFiles(t *testing.T) {
	rs, dataDir := setupContentStorage(t)

	writeContentFile(t, dataDir, "items", "good.json", `[{"id": 1, "name": "healing_potion", "max_stack": 5}]`)
	writeContentFile(t, dataDir, "items", "bad.json", `{not json`)

	catalog, err := rs.LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if got := len(catalog.ListItems()); got != 1 {
		t.Errorf("Catalog has %d items, want 1 (malformed file skipped)", got)
	}
}

func TestGetCreature(t *testing.T) {
	rs, dataDir := setupContentStorage(t)

	writeContentFile(t, dataDir, "creatures", "goblin_scout.json", `{
		"id": "goblin_scout",
		"name": "Goblin Scout",
		"level": 2,
		"max_hp": 12,
		"ac": 13,
		"inventory_size": 4
	}`)

	spec, err := rs.GetCreature(context.Background(), "goblin_scout")
	if err != nil {
		t.Fatalf("GetCreature failed: %v", err)
	}
	if spec.Name != "Goblin Scout" || spec.MaxHP != 12 {
		t.Errorf("Unexpected spec: %+v", spec)
	}

	if _, err := rs.GetCreature(context.Background(), "dragon"); err == nil {
		t.Error("Expected error for missing creature")
	}
}

func TestListCreatures(t *testing.T) {
	rs, dataDir := setupContentStorage(t)

	writeContentFile(t, dataDir, "creatures", "goblin_scout.json", `{"id": "goblin_scout"}`)
	writeContentFile(t, dataDir, "creatures", "town_guard.json", `{"id": "town_guard"}`)

	ids, err := rs.ListCreatures(context.Background())
	if err != nil {
		t.Fatalf("ListCreatures failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ListCreatures returned %d ids, want 2", len(ids))
	}
}

func TestGetTriggerSet(t *testing.T) {
	rs, dataDir := setupContentStorage(t)

	writeContentFile(t, dataDir, "triggers", "throne_room.json", `{
		"id": "throne_room_entry",
		"name": "Throne Room Entry",
		"events": [
			{"event_type": "update_tag", "param1": "met_king", "param2": "1"},
			{"event_type": "play_narration", "param1": "king_greeting",
			 "conditions": {"conditions": [{"type": "tag_check", "param": "met_king", "operator": "equal", "value": "0"}]}}
		]
	}`)

	ts, err := rs.GetTriggerSet(context.Background(), "throne_room.json")
	if err != nil {
		t.Fatalf("GetTriggerSet failed: %v", err)
	}
	if ts.ID != "throne_room_entry" || len(ts.Events) != 2 {
		t.Errorf("Unexpected trigger set: %+v", ts)
	}
	if len(ts.Events[1].Conditions.Conditions) != 1 {
		t.Error("Expected second event to carry its condition")
	}

	sets, err := rs.ListTriggerSets(context.Background())
	if err != nil {
		t.Fatalf("ListTriggerSets failed: %v", err)
	}
	if sets["throne_room_entry"] != "throne_room.json" {
		t.Errorf("ListTriggerSets = %v, want throne_room_entry -> throne_room.json", sets)
	}
}
