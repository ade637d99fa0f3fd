package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/quest-engine/pkg/creature"
	"github.com/jwebster45206/quest-engine/pkg/event"
	"github.com/jwebster45206/quest-engine/pkg/item"
)

// Authored content operations (filesystem-backed). Layout under dataDir:
//
//	items/*.json     - each file holds an array of items
//	creatures/*.json - one creature spec per file, named by creature id
//	triggers/*.json  - one trigger set per file

func (r *RedisStorage) LoadCatalog(ctx context.Context) (item.Catalog, error) {
	itemsDir := filepath.Join(r.dataDir, "items")
	var items []*item.Item

	err := filepath.WalkDir(itemsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read item file", "path", path, "error", err)
			return nil
		}

		var batch []*item.Item
		if err := json.Unmarshal(file, &batch); err != nil {
			r.logger.Warn("Failed to unmarshal item file", "path", path, "error", err)
			return nil
		}
		items = append(items, batch...)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk items directory: %w", err)
	}

	r.logger.Debug("Item catalog loaded", "items", len(items))
	return item.NewCatalog(items), nil
}

func (r *RedisStorage) GetCreature(ctx context.Context, id string) (*creature.Spec, error) {
	path := filepath.Join(r.dataDir, "creatures", id+".json")

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("creature not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read creature file: %w", err)
	}

	var spec creature.Spec
	if err := json.Unmarshal(file, &spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal creature %s: %w", id, err)
	}

	return &spec, nil
}

func (r *RedisStorage) ListCreatures(ctx context.Context) ([]string, error) {
	creaturesDir := filepath.Join(r.dataDir, "creatures")
	var ids []string

	err := filepath.WalkDir(creaturesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		ids = append(ids, strings.TrimSuffix(filepath.Base(path), ".json"))
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk creatures directory: %w", err)
	}

	return ids, nil
}

func (r *RedisStorage) GetTriggerSet(ctx context.Context, filename string) (*event.TriggerSet, error) {
	path := filepath.Join(r.dataDir, "triggers", filename)

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("trigger set not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read trigger set file: %w", err)
	}

	var ts event.TriggerSet
	if err := json.Unmarshal(file, &ts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trigger set: %w", err)
	}

	return &ts, nil
}

// ListTriggerSets maps trigger set IDs to their filenames.
func (r *RedisStorage) ListTriggerSets(ctx context.Context) (map[string]string, error) {
	triggersDir := filepath.Join(r.dataDir, "triggers")
	sets := make(map[string]string)

	err := filepath.WalkDir(triggersDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read trigger set file", "path", path, "error", err)
			return nil
		}

		var ts event.TriggerSet
		if err := json.Unmarshal(file, &ts); err != nil {
			r.logger.Warn("Failed to unmarshal trigger set file", "path", path, "error", err)
			return nil
		}

		sets[ts.ID] = filepath.Base(path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk triggers directory: %w", err)
	}

	return sets, nil
}
