package event

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/jwebster45206/quest-engine/pkg/condition"
	"github.com/jwebster45206/quest-engine/pkg/inventory"
	"github.com/jwebster45206/quest-engine/pkg/item"
)

// recordingCollaborators captures calls for assertions
type recordingCollaborators struct {
	tags      map[string]int
	dialogs   []string
	clips     []string
	volumes   []float64
	scenes    []string
	loading   []bool
	dialogErr error
}

func newRecording() *recordingCollaborators {
	return &recordingCollaborators{tags: make(map[string]int)}
}

func (r *recordingCollaborators) SetTag(ctx context.Context, id string, value int) error {
	r.tags[id] = value
	return nil
}

func (r *recordingCollaborators) LoadDialog(ctx context.Context, id string) error {
	if r.dialogErr != nil {
		return r.dialogErr
	}
	r.dialogs = append(r.dialogs, id)
	return nil
}

func (r *recordingCollaborators) PlayClip(ctx context.Context, name string, volume float64) error {
	r.clips = append(r.clips, name)
	r.volumes = append(r.volumes, volume)
	return nil
}

func (r *recordingCollaborators) LoadScene(ctx context.Context, name string, showLoading bool) error {
	r.scenes = append(r.scenes, name)
	r.loading = append(r.loading, showLoading)
	return nil
}

// tagFacts reads tag values back out of the recording collaborators
type tagFacts struct {
	collab *recordingCollaborators
	level  int
}

func (f *tagFacts) GetTagValue(id string) int               { return f.collab.tags[id] }
func (f *tagFacts) HasItem(itemID int, count int) bool      { return false }
func (f *tagFacts) GetQuestStatus(id string) string         { return "" }
func (f *tagFacts) GetPlayerLevel() int                     { return f.level }

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

func testEngine(collab *recordingCollaborators, catalog item.Catalog) *Engine {
	return NewEngine(testLogger).
		WithCatalog(catalog).
		WithTagStore(collab).
		WithDialoguePlayer(collab).
		WithAudioPlayer(collab).
		WithSceneLoader(collab)
}

func testCatalog() *item.MapCatalog {
	return item.NewCatalog([]*item.Item{
		{ID: 5, Name: "healing_potion", MaxStack: 5, Usable: true, Consumable: true, Category: "potion", Power: 10},
	})
}

func TestProcessEvents_GiveItem(t *testing.T) {
	// Scenario B: give_item 5 x3 with catalog item present
	collab := newRecording()
	engine := testEngine(collab, testCatalog())
	inv := inventory.New("pc", 4)
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{Type: "give_item", Param1: "5", Param2: "3"},
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, inv)
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}
	if reports[0].Kind != ReportDispatched {
		t.Errorf("Kind = %s, want dispatched (detail: %s)", reports[0].Kind, reports[0].Detail)
	}
	if reports[0].Actual != 3 {
		t.Errorf("Actual = %d, want 3", reports[0].Actual)
	}
	if got := inv.GetItemCount(testCatalog().GetItemByID(5)); got != 3 {
		t.Errorf("Inventory count = %d, want 3", got)
	}
}

func TestProcessEvents_GiveItemPartial(t *testing.T) {
	collab := newRecording()
	catalog := testCatalog()
	engine := testEngine(collab, catalog)
	inv := inventory.New("pc", 1) // room for one stack of 5
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{Type: "give_item", Param1: "5", Param2: "8"},
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, inv)
	if reports[0].Kind != ReportPartial {
		t.Errorf("Kind = %s, want partial", reports[0].Kind)
	}
	if reports[0].Requested != 8 || reports[0].Actual != 5 {
		t.Errorf("Requested/Actual = %d/%d, want 8/5", reports[0].Requested, reports[0].Actual)
	}
}

func TestProcessEvents_TakeItemInsufficientStock(t *testing.T) {
	// Scenario C: take 10 when holding 4 leaves the inventory untouched
	collab := newRecording()
	catalog := testCatalog()
	engine := testEngine(collab, catalog)
	inv := inventory.New("pc", 4)
	potion := catalog.GetItemByID(5)
	inv.AddItem(potion, 4)
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{Type: "take_item", Param1: "5", Param2: "10"},
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, inv)
	if reports[0].Kind != ReportInsufficientStock {
		t.Errorf("Kind = %s, want insufficient_stock", reports[0].Kind)
	}
	if got := inv.GetItemCount(potion); got != 4 {
		t.Errorf("Inventory count = %d, want 4 (no mutation)", got)
	}
}

func TestProcessEvents_TakeItem(t *testing.T) {
	collab := newRecording()
	catalog := testCatalog()
	engine := testEngine(collab, catalog)
	inv := inventory.New("pc", 4)
	potion := catalog.GetItemByID(5)
	inv.AddItem(potion, 4)
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{Type: "take_item", Param1: "5", Param2: "3"},
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, inv)
	if reports[0].Kind != ReportDispatched {
		t.Errorf("Kind = %s, want dispatched", reports[0].Kind)
	}
	if got := inv.GetItemCount(potion); got != 1 {
		t.Errorf("Inventory count = %d, want 1", got)
	}
}

func TestProcessEvents_UnknownTypeContinuesBatch(t *testing.T) {
	// Scenario E: an unknown event type is reported and the batch continues
	collab := newRecording()
	engine := testEngine(collab, testCatalog())
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{Type: "teleport_player", Param1: "castle"},
		{Type: "update_tag", Param1: "met_king", Param2: "1"},
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, nil)
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if reports[0].Kind != ReportUnknownEventType {
		t.Errorf("Report 0 kind = %s, want unknown_event_type", reports[0].Kind)
	}
	if reports[1].Kind != ReportDispatched {
		t.Errorf("Report 1 kind = %s, want dispatched", reports[1].Kind)
	}
	if collab.tags["met_king"] != 1 {
		t.Error("Expected met_king tag set to 1")
	}
}

func TestProcessEvents_UpdateTag(t *testing.T) {
	collab := newRecording()
	engine := testEngine(collab, nil)
	facts := &tagFacts{collab: collab}

	tests := []struct {
		name string
		ev   GameEvent
		want ReportKind
	}{
		{"valid", GameEvent{Type: "update_tag", Param1: "gate_open", Param2: "1"}, ReportDispatched},
		{"case insensitive type", GameEvent{Type: "UPDATE_TAG", Param1: "gate_open", Param2: "2"}, ReportDispatched},
		{"missing tag id", GameEvent{Type: "update_tag", Param2: "1"}, ReportMalformedParameter},
		{"non-integer value", GameEvent{Type: "update_tag", Param1: "gate_open", Param2: "open"}, ReportMalformedParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := engine.ProcessEvents(context.Background(), []GameEvent{tt.ev}, facts, nil)
			if reports[0].Kind != tt.want {
				t.Errorf("Kind = %s, want %s", reports[0].Kind, tt.want)
			}
		})
	}

	if collab.tags["gate_open"] != 2 {
		t.Errorf("gate_open = %d, want 2 (last write wins)", collab.tags["gate_open"])
	}
}

func TestProcessEvents_ConditionsGateDispatch(t *testing.T) {
	collab := newRecording()
	collab.tags["met_king"] = 0
	engine := testEngine(collab, nil)
	facts := &tagFacts{collab: collab}

	gated := GameEvent{
		Type:   "play_narration",
		Param1: "king_greeting",
		Conditions: condition.ConditionSet{
			Conditions: []*condition.Condition{
				{Type: condition.TypeTagCheck, Param: "met_king", Operator: condition.OpGreaterEqual, Value: "1"},
			},
		},
	}

	reports := engine.ProcessEvents(context.Background(), []GameEvent{gated}, facts, nil)
	if reports[0].Kind != ReportConditionsNotMet {
		t.Errorf("Kind = %s, want conditions_not_met", reports[0].Kind)
	}
	if len(collab.dialogs) != 0 {
		t.Error("Dialogue must not play when conditions fail")
	}

	collab.tags["met_king"] = 1
	reports = engine.ProcessEvents(context.Background(), []GameEvent{gated}, facts, nil)
	if reports[0].Kind != ReportDispatched {
		t.Errorf("Kind = %s, want dispatched", reports[0].Kind)
	}
	if len(collab.dialogs) != 1 || collab.dialogs[0] != "king_greeting" {
		t.Errorf("Dialogs = %v, want [king_greeting]", collab.dialogs)
	}
}

func TestProcessEvents_InvalidConditionSkipsEvent(t *testing.T) {
	collab := newRecording()
	engine := testEngine(collab, nil)
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{
			Type:   "update_tag",
			Param1: "a",
			Param2: "1",
			Conditions: condition.ConditionSet{
				Conditions: []*condition.Condition{
					{Type: "weather_check", Operator: condition.OpEqual, Value: "rain"},
				},
			},
		},
		{Type: "update_tag", Param1: "b", Param2: "2"},
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, nil)
	if reports[0].Kind != ReportInvalidCondition {
		t.Errorf("Report 0 kind = %s, want invalid_condition", reports[0].Kind)
	}
	if reports[1].Kind != ReportDispatched {
		t.Errorf("Report 1 kind = %s, want dispatched", reports[1].Kind)
	}
	if _, ok := collab.tags["a"]; ok {
		t.Error("Tag a must not be set when the event's condition is invalid")
	}
}

func TestProcessEvents_MissingCollaborators(t *testing.T) {
	engine := NewEngine(testLogger) // nothing attached
	facts := &tagFacts{collab: newRecording()}

	events := []GameEvent{
		{Type: "update_tag", Param1: "a", Param2: "1"},
		{Type: "give_item", Param1: "5", Param2: "1"},
		{Type: "play_narration", Param1: "intro"},
		{Type: "play_audio", Param1: "thunder"},
		{Type: "load_scene", Param1: "castle"},
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, nil)
	for i, r := range reports {
		if r.Kind != ReportMissingCollaborator {
			t.Errorf("Report %d kind = %s, want missing_collaborator", i, r.Kind)
		}
	}
}

func TestProcessEvents_PlayAudioVolume(t *testing.T) {
	collab := newRecording()
	engine := testEngine(collab, nil)
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{Type: "play_audio", Param1: "thunder", Param2: "0.5"},
		{Type: "play_audio", Param1: "rain"},           // default volume
		{Type: "play_audio", Param1: "wind", Param2: "loud"}, // fallback
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, nil)
	for i, r := range reports {
		if r.Kind != ReportDispatched {
			t.Errorf("Report %d kind = %s, want dispatched", i, r.Kind)
		}
	}
	want := []float64{0.5, 1.0, 1.0}
	for i, v := range want {
		if collab.volumes[i] != v {
			t.Errorf("Volume %d = %v, want %v", i, collab.volumes[i], v)
		}
	}
}

func TestProcessEvents_LoadScene(t *testing.T) {
	collab := newRecording()
	engine := testEngine(collab, nil)
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{Type: "load_scene", Param1: "castle", Param2: "false"},
		{Type: "load_scene", Param1: "dungeon"}, // default show_loading
	}
	engine.ProcessEvents(context.Background(), events, facts, nil)

	if collab.loading[0] != false {
		t.Error("Expected show_loading false for first scene")
	}
	if collab.loading[1] != true {
		t.Error("Expected show_loading default true for second scene")
	}
}

func TestProcessEvents_EffectFailureDoesNotAbortBatch(t *testing.T) {
	collab := newRecording()
	collab.dialogErr = errors.New("queue unavailable")
	engine := testEngine(collab, nil)
	facts := &tagFacts{collab: collab}

	events := []GameEvent{
		{Type: "play_narration", Param1: "intro"},
		{Type: "update_tag", Param1: "seen_intro", Param2: "1"},
	}
	reports := engine.ProcessEvents(context.Background(), events, facts, nil)
	if reports[0].Kind != ReportEffectFailed {
		t.Errorf("Report 0 kind = %s, want effect_failed", reports[0].Kind)
	}
	if reports[1].Kind != ReportDispatched {
		t.Errorf("Report 1 kind = %s, want dispatched", reports[1].Kind)
	}
}
