package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NarrationQueue holds the dialogue IDs queued for a session by
// play_narration effects, in dispatch order, until a client drains them.
type NarrationQueue struct {
	client *Client
}

func NewNarrationQueue(client *Client) *NarrationQueue {
	return &NarrationQueue{client: client}
}

func narrationKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("narration:%s", sessionID.String())
}

// Enqueue appends a dialogue ID to the end of a session's queue
func (nq *NarrationQueue) Enqueue(ctx context.Context, sessionID uuid.UUID, dialogID string) error {
	key := narrationKey(sessionID)
	if err := nq.client.rdb.RPush(ctx, key, dialogID).Err(); err != nil {
		return fmt.Errorf("failed to enqueue narration: %w", err)
	}
	return nil
}

// Dequeue removes and returns all queued dialogue IDs for a session
func (nq *NarrationQueue) Dequeue(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	key := narrationKey(sessionID)

	dialogs, err := nq.client.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to dequeue narration: %w", err)
	}
	if len(dialogs) > 0 {
		if err := nq.client.rdb.Del(ctx, key).Err(); err != nil {
			return nil, fmt.Errorf("failed to clear narration queue after dequeue: %w", err)
		}
	}
	return dialogs, nil
}

// Peek returns up to limit queued dialogue IDs without removing them.
// A non-positive limit returns all.
func (nq *NarrationQueue) Peek(ctx context.Context, sessionID uuid.UUID, limit int) ([]string, error) {
	key := narrationKey(sessionID)

	end := int64(limit - 1)
	if limit <= 0 {
		end = -1
	}
	dialogs, err := nq.client.rdb.LRange(ctx, key, 0, end).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to peek narration: %w", err)
	}
	return dialogs, nil
}

// Depth returns the number of dialogue IDs queued for a session
func (nq *NarrationQueue) Depth(ctx context.Context, sessionID uuid.UUID) (int, error) {
	key := narrationKey(sessionID)
	count, err := nq.client.rdb.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get narration queue depth: %w", err)
	}
	return int(count), nil
}

// Clear removes all queued dialogue IDs for a session
func (nq *NarrationQueue) Clear(ctx context.Context, sessionID uuid.UUID) error {
	key := narrationKey(sessionID)
	if err := nq.client.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear narration queue: %w", err)
	}
	return nil
}
