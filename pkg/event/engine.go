package event

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jwebster45206/quest-engine/pkg/condition"
	"github.com/jwebster45206/quest-engine/pkg/inventory"
	"github.com/jwebster45206/quest-engine/pkg/item"
)

// TagStore is the collaborator for update_tag effects.
type TagStore interface {
	SetTag(ctx context.Context, id string, value int) error
}

// DialoguePlayer is the collaborator for play_narration effects.
type DialoguePlayer interface {
	LoadDialog(ctx context.Context, id string) error
}

// AudioPlayer is the collaborator for play_audio effects.
type AudioPlayer interface {
	PlayClip(ctx context.Context, name string, volume float64) error
}

// SceneLoader is the collaborator for load_scene effects.
type SceneLoader interface {
	LoadScene(ctx context.Context, name string, showLoading bool) error
}

// Engine filters events through the condition engine and dispatches each
// to its effect handler. Collaborators are injected explicitly; an event
// whose collaborator is absent is reported and skipped, never fatal.
type Engine struct {
	catalog  item.Catalog
	tags     TagStore
	dialogue DialoguePlayer
	audio    AudioPlayer
	scenes   SceneLoader
	logger   *slog.Logger
}

// NewEngine creates an event engine. Collaborators are attached with the
// With* methods; only the ones a batch's events need must be present.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

func (e *Engine) WithCatalog(catalog item.Catalog) *Engine {
	e.catalog = catalog
	return e
}

func (e *Engine) WithTagStore(tags TagStore) *Engine {
	e.tags = tags
	return e
}

func (e *Engine) WithDialoguePlayer(dialogue DialoguePlayer) *Engine {
	e.dialogue = dialogue
	return e
}

func (e *Engine) WithAudioPlayer(audio AudioPlayer) *Engine {
	e.audio = audio
	return e
}

func (e *Engine) WithSceneLoader(scenes SceneLoader) *Engine {
	e.scenes = scenes
	return e
}

// ProcessEvents runs a batch head-to-tail. Each event is independently
// condition-checked and dispatched; one event's failure never aborts the
// rest of the batch. Returns one report per event in input order.
func (e *Engine) ProcessEvents(ctx context.Context, events []GameEvent, facts condition.FactProvider, inv *inventory.Inventory) []Report {
	reports := make([]Report, 0, len(events))
	for i, ev := range events {
		r := e.processOne(ctx, ev, facts, inv)
		r.Index = i
		r.EventType = ev.Type

		if !r.OK() && r.Kind != ReportConditionsNotMet {
			e.logger.Warn("Event effect skipped",
				"index", i,
				"event_type", ev.Type,
				"kind", r.Kind,
				"detail", r.Detail)
		} else {
			e.logger.Debug("Event processed",
				"index", i,
				"event_type", ev.Type,
				"kind", r.Kind)
		}

		reports = append(reports, r)
	}
	return reports
}

func (e *Engine) processOne(ctx context.Context, ev GameEvent, facts condition.FactProvider, inv *inventory.Inventory) Report {
	ok, err := condition.Evaluate(ev.Conditions, facts)
	if err != nil {
		return Report{Kind: ReportInvalidCondition, Detail: err.Error()}
	}
	if !ok {
		return Report{Kind: ReportConditionsNotMet}
	}

	switch strings.ToLower(strings.TrimSpace(ev.Type)) {
	case TypeUpdateTag:
		return e.handleUpdateTag(ctx, ev)
	case TypeGiveItem:
		return e.handleGiveItem(ev, inv)
	case TypeTakeItem:
		return e.handleTakeItem(ev, inv)
	case TypePlayNarration:
		return e.handlePlayNarration(ctx, ev)
	case TypePlayAudio:
		return e.handlePlayAudio(ctx, ev)
	case TypeLoadScene:
		return e.handleLoadScene(ctx, ev)
	default:
		return Report{Kind: ReportUnknownEventType, Detail: ev.Type}
	}
}

func (e *Engine) handleUpdateTag(ctx context.Context, ev GameEvent) Report {
	if e.tags == nil {
		return Report{Kind: ReportMissingCollaborator, Detail: "no tag store"}
	}
	if ev.Param1 == "" {
		return Report{Kind: ReportMalformedParameter, Detail: "update_tag requires a tag id"}
	}
	value, err := strconv.Atoi(strings.TrimSpace(ev.Param2))
	if err != nil {
		return Report{Kind: ReportMalformedParameter, Detail: "update_tag value must be an integer: " + ev.Param2}
	}
	if err := e.tags.SetTag(ctx, ev.Param1, value); err != nil {
		return Report{Kind: ReportEffectFailed, Detail: err.Error()}
	}
	return Report{Kind: ReportDispatched}
}

func (e *Engine) handleGiveItem(ev GameEvent, inv *inventory.Inventory) Report {
	it, count, r := e.resolveItemParams(ev, inv)
	if it == nil {
		return r
	}

	actual := inv.AddItem(it, count)
	if actual < count {
		// Partial placement is reported, not an error.
		return Report{Kind: ReportPartial, Requested: count, Actual: actual}
	}
	return Report{Kind: ReportDispatched, Requested: count, Actual: actual}
}

func (e *Engine) handleTakeItem(ev GameEvent, inv *inventory.Inventory) Report {
	it, count, r := e.resolveItemParams(ev, inv)
	if it == nil {
		return r
	}

	// Sufficiency is checked up front so the removal is all-or-nothing,
	// even though the inventory primitive itself is best-effort.
	if held := inv.GetItemCount(it); held < count {
		return Report{Kind: ReportInsufficientStock, Requested: count, Actual: held}
	}
	actual := inv.RemoveItem(it, count)
	return Report{Kind: ReportDispatched, Requested: count, Actual: actual}
}

// resolveItemParams parses and validates the shared give/take parameter
// schema. On failure the returned item is nil and the report explains why.
func (e *Engine) resolveItemParams(ev GameEvent, inv *inventory.Inventory) (*item.Item, int, Report) {
	if e.catalog == nil {
		return nil, 0, Report{Kind: ReportMissingCollaborator, Detail: "no item catalog"}
	}
	if inv == nil {
		return nil, 0, Report{Kind: ReportMissingCollaborator, Detail: "no target inventory"}
	}
	itemID, err := strconv.Atoi(strings.TrimSpace(ev.Param1))
	if err != nil {
		return nil, 0, Report{Kind: ReportMalformedParameter, Detail: "item id must be an integer: " + ev.Param1}
	}
	count, err := strconv.Atoi(strings.TrimSpace(ev.Param2))
	if err != nil || count <= 0 {
		return nil, 0, Report{Kind: ReportMalformedParameter, Detail: "item count must be a positive integer: " + ev.Param2}
	}
	it := e.catalog.GetItemByID(itemID)
	if it == nil {
		return nil, 0, Report{Kind: ReportMalformedParameter, Detail: "unknown item id: " + ev.Param1}
	}
	return it, count, Report{}
}

func (e *Engine) handlePlayNarration(ctx context.Context, ev GameEvent) Report {
	if e.dialogue == nil {
		return Report{Kind: ReportMissingCollaborator, Detail: "no dialogue player"}
	}
	if ev.Param1 == "" {
		return Report{Kind: ReportMalformedParameter, Detail: "play_narration requires a dialogue id"}
	}
	if err := e.dialogue.LoadDialog(ctx, ev.Param1); err != nil {
		return Report{Kind: ReportEffectFailed, Detail: err.Error()}
	}
	return Report{Kind: ReportDispatched}
}

func (e *Engine) handlePlayAudio(ctx context.Context, ev GameEvent) Report {
	if e.audio == nil {
		return Report{Kind: ReportMissingCollaborator, Detail: "no audio player"}
	}
	if ev.Param1 == "" {
		return Report{Kind: ReportMalformedParameter, Detail: "play_audio requires a clip name"}
	}
	// Volume is optional; an unparseable value falls back to full volume.
	volume := 1.0
	if v := strings.TrimSpace(ev.Param2); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			volume = parsed
		} else {
			e.logger.Debug("Unparseable audio volume, using default", "param2", ev.Param2)
		}
	}
	if err := e.audio.PlayClip(ctx, ev.Param1, volume); err != nil {
		return Report{Kind: ReportEffectFailed, Detail: err.Error()}
	}
	return Report{Kind: ReportDispatched}
}

func (e *Engine) handleLoadScene(ctx context.Context, ev GameEvent) Report {
	if e.scenes == nil {
		return Report{Kind: ReportMissingCollaborator, Detail: "no scene loader"}
	}
	if ev.Param1 == "" {
		return Report{Kind: ReportMalformedParameter, Detail: "load_scene requires a scene name"}
	}
	// show_loading is optional; an unparseable value falls back to true.
	showLoading := true
	if v := strings.TrimSpace(ev.Param2); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			showLoading = parsed
		} else {
			e.logger.Debug("Unparseable show_loading flag, using default", "param2", ev.Param2)
		}
	}
	if err := e.scenes.LoadScene(ctx, ev.Param1, showLoading); err != nil {
		return Report{Kind: ReportEffectFailed, Detail: err.Error()}
	}
	return Report{Kind: ReportDispatched}
}
