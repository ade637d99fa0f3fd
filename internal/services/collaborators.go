package services

import (
	"context"
	"log/slog"

	"github.com/jwebster45206/quest-engine/internal/services/queue"
	"github.com/jwebster45206/quest-engine/pkg/event"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// StateTagStore writes tag updates through to the session state. The
// mutated state is persisted by whoever owns the request, after the
// whole batch has run.
type StateTagStore struct {
	gs *state.GameState
}

var _ event.TagStore = (*StateTagStore)(nil)

func NewStateTagStore(gs *state.GameState) *StateTagStore {
	return &StateTagStore{gs: gs}
}

func (s *StateTagStore) SetTag(ctx context.Context, id string, value int) error {
	s.gs.SetTag(id, value)
	return nil
}

// StateSceneLoader records the requested scene on the session. The real
// scene transition is the host engine's concern; the core only tracks
// which scene the session should be in.
type StateSceneLoader struct {
	gs     *state.GameState
	logger *slog.Logger
}

var _ event.SceneLoader = (*StateSceneLoader)(nil)

func NewStateSceneLoader(gs *state.GameState, logger *slog.Logger) *StateSceneLoader {
	return &StateSceneLoader{gs: gs, logger: logger}
}

func (s *StateSceneLoader) LoadScene(ctx context.Context, name string, showLoading bool) error {
	s.logger.Info("Scene change requested", "scene", name, "show_loading", showLoading)
	s.gs.Scene = name
	return nil
}

// QueueDialoguePlayer enqueues narration dialogue IDs to the session's
// narration queue for clients to drain.
type QueueDialoguePlayer struct {
	queue *queue.NarrationQueue
	gs    *state.GameState
}

var _ event.DialoguePlayer = (*QueueDialoguePlayer)(nil)

func NewQueueDialoguePlayer(q *queue.NarrationQueue, gs *state.GameState) *QueueDialoguePlayer {
	return &QueueDialoguePlayer{queue: q, gs: gs}
}

func (p *QueueDialoguePlayer) LoadDialog(ctx context.Context, id string) error {
	return p.queue.Enqueue(ctx, p.gs.ID, id)
}

// LogAudioPlayer is a stub collaborator: audio playback belongs to the
// host engine, the interface is kept for effect completeness.
type LogAudioPlayer struct {
	logger *slog.Logger
}

var _ event.AudioPlayer = (*LogAudioPlayer)(nil)

func NewLogAudioPlayer(logger *slog.Logger) *LogAudioPlayer {
	return &LogAudioPlayer{logger: logger}
}

func (p *LogAudioPlayer) PlayClip(ctx context.Context, name string, volume float64) error {
	p.logger.Info("Audio clip requested", "clip", name, "volume", volume)
	return nil
}
