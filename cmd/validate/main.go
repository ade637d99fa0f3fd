package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jwebster45206/quest-engine/pkg/condition"
	"github.com/jwebster45206/quest-engine/pkg/event"
	"github.com/jwebster45206/quest-engine/pkg/item"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <data_dir>\n", os.Args[0])
		os.Exit(1)
	}

	dataDir := os.Args[1]
	validator := &ContentValidator{}

	if err := validator.validateDataDir(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Content directory is valid!")
}

type ContentValidator struct {
	errors  []string
	seenIDs map[int]string // item ID -> filename, for cross-file uniqueness
}

func (v *ContentValidator) validateDataDir(dataDir string) error {
	fmt.Printf("Validating %s...\n", dataDir)

	info, err := os.Stat(dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data dir %s: %w", dataDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dataDir)
	}

	v.errors = nil
	v.seenIDs = make(map[int]string)

	v.validateGlob(filepath.Join(dataDir, "items", "*.json"), v.validateItemFile)
	v.validateGlob(filepath.Join(dataDir, "creatures", "*.json"), v.validateCreatureFile)
	v.validateGlob(filepath.Join(dataDir, "triggers", "*.json"), v.validateTriggerFile)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", dataDir, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *ContentValidator) validateGlob(pattern string, fn func(filename string, data []byte)) {
	files, err := filepath.Glob(pattern)
	if err != nil || len(files) == 0 {
		return
	}
	for _, filename := range files {
		base := filepath.Base(filename)
		if !isValidContentFilename(strings.TrimSuffix(base, ".json")) {
			v.addError(fmt.Sprintf("filename '%s' should be lowercase snake_case", base))
		}
		data, err := os.ReadFile(filename)
		if err != nil {
			v.addError(fmt.Sprintf("failed to read %s: %v", base, err))
			continue
		}
		if !json.Valid(data) {
			v.addError(fmt.Sprintf("%s contains invalid JSON", base))
			continue
		}
		fn(base, data)
	}
}

func (v *ContentValidator) validateItemFile(filename string, data []byte) {
	var items []*item.Item
	if err := json.Unmarshal(data, &items); err != nil {
		v.addError(fmt.Sprintf("%s is not an item array: %v", filename, err))
		return
	}

	for i, it := range items {
		where := fmt.Sprintf("%s item[%d]", filename, i)
		if it.ID <= 0 {
			v.addError(fmt.Sprintf("%s has non-positive id %d", where, it.ID))
		} else if prev, dup := v.seenIDs[it.ID]; dup {
			v.addError(fmt.Sprintf("%s duplicates item id %d from %s", where, it.ID, prev))
		} else {
			v.seenIDs[it.ID] = filename
		}
		if it.Name == "" {
			v.addError(fmt.Sprintf("%s has empty name", where))
		} else if !isValidID(it.Name) {
			v.addError(fmt.Sprintf("%s name '%s' should be lowercase snake_case", where, it.Name))
		}
		if it.MaxStack < 1 {
			v.addError(fmt.Sprintf("%s (%s) has max_stack %d, must be at least 1", where, it.Name, it.MaxStack))
		}
		if it.Usable {
			if _, ok := item.UseEffect(it.Category); !ok {
				v.addError(fmt.Sprintf("%s (%s) is usable but category '%s' has no use effect", where, it.Name, it.Category))
			}
		}
	}
}

// creatureSpec mirrors the fields checked here; the full shape lives in
// pkg/creature and tolerates extra fields, so this stays strict on its own.
type creatureSpec struct {
	ID            string         `json:"id"`
	MaxHP         int            `json:"max_hp"`
	Level         int            `json:"level"`
	InventorySize int            `json:"inventory_size"`
	StartingItems map[string]int `json:"starting_items"`
}

func (v *ContentValidator) validateCreatureFile(filename string, data []byte) {
	var spec creatureSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		v.addError(fmt.Sprintf("%s is not a creature spec: %v", filename, err))
		return
	}

	if spec.ID == "" {
		v.addError(fmt.Sprintf("%s has empty creature id", filename))
	} else {
		if !isValidID(spec.ID) {
			v.addError(fmt.Sprintf("%s creature id '%s' should be lowercase snake_case", filename, spec.ID))
		}
		if spec.ID != strings.TrimSuffix(filename, ".json") {
			v.addError(fmt.Sprintf("%s creature id '%s' does not match filename", filename, spec.ID))
		}
	}
	if spec.MaxHP <= 0 {
		v.addError(fmt.Sprintf("%s has non-positive max_hp %d", filename, spec.MaxHP))
	}
	if spec.Level < 0 {
		v.addError(fmt.Sprintf("%s has negative level %d", filename, spec.Level))
	}
	if spec.InventorySize < 0 {
		v.addError(fmt.Sprintf("%s has negative inventory_size %d", filename, spec.InventorySize))
	}
	for name, count := range spec.StartingItems {
		if count <= 0 {
			v.addError(fmt.Sprintf("%s starting item '%s' has non-positive count %d", filename, name, count))
		}
	}
}

func (v *ContentValidator) validateTriggerFile(filename string, data []byte) {
	var ts event.TriggerSet
	if err := json.Unmarshal(data, &ts); err != nil {
		v.addError(fmt.Sprintf("%s is not a trigger set: %v", filename, err))
		return
	}

	if ts.ID == "" {
		v.addError(fmt.Sprintf("%s has empty trigger set id", filename))
	} else if !isValidID(ts.ID) {
		v.addError(fmt.Sprintf("%s trigger set id '%s' should be lowercase snake_case", filename, ts.ID))
	}
	if len(ts.Events) == 0 {
		v.addError(fmt.Sprintf("%s has no events", filename))
	}

	for i, ev := range ts.Events {
		where := fmt.Sprintf("%s event[%d]", filename, i)
		v.validateEvent(&ev, where)
	}
}

func (v *ContentValidator) validateEvent(ev *event.GameEvent, where string) {
	switch strings.ToLower(strings.TrimSpace(ev.Type)) {
	case event.TypeUpdateTag:
		if ev.Param1 == "" {
			v.addError(fmt.Sprintf("%s update_tag has empty tag id", where))
		}
		if _, err := strconv.Atoi(strings.TrimSpace(ev.Param2)); err != nil {
			v.addError(fmt.Sprintf("%s update_tag value '%s' is not an integer", where, ev.Param2))
		}
	case event.TypeGiveItem, event.TypeTakeItem:
		if id, err := strconv.Atoi(strings.TrimSpace(ev.Param1)); err != nil || id <= 0 {
			v.addError(fmt.Sprintf("%s item id '%s' is not a positive integer", where, ev.Param1))
		} else if _, known := v.seenIDs[id]; !known && len(v.seenIDs) > 0 {
			// Catalog cross-checks only apply when item files are present.
			v.addError(fmt.Sprintf("%s references unknown item id %d", where, id))
		}
		if count, err := strconv.Atoi(strings.TrimSpace(ev.Param2)); err != nil || count <= 0 {
			v.addError(fmt.Sprintf("%s item count '%s' is not a positive integer", where, ev.Param2))
		}
	case event.TypePlayNarration:
		if ev.Param1 == "" {
			v.addError(fmt.Sprintf("%s play_narration has empty dialogue id", where))
		}
	case event.TypePlayAudio:
		if ev.Param1 == "" {
			v.addError(fmt.Sprintf("%s play_audio has empty clip name", where))
		}
		if p := strings.TrimSpace(ev.Param2); p != "" {
			if _, err := strconv.ParseFloat(p, 64); err != nil {
				v.addError(fmt.Sprintf("%s play_audio volume '%s' is not a number", where, ev.Param2))
			}
		}
	case event.TypeLoadScene:
		if ev.Param1 == "" {
			v.addError(fmt.Sprintf("%s load_scene has empty scene name", where))
		}
		if p := strings.TrimSpace(ev.Param2); p != "" {
			if _, err := strconv.ParseBool(p); err != nil {
				v.addError(fmt.Sprintf("%s load_scene show_loading '%s' is not a boolean", where, ev.Param2))
			}
		}
	default:
		v.addError(fmt.Sprintf("%s has unknown event type '%s'", where, ev.Type))
	}

	for j, c := range ev.Conditions.Conditions {
		if c == nil {
			continue
		}
		v.validateCondition(c, fmt.Sprintf("%s condition[%d]", where, j))
	}
	if op := ev.Conditions.Operator; op != "" {
		switch condition.Combinator(strings.ToLower(string(op))) {
		case condition.CombineAnd, condition.CombineOr:
		default:
			v.addError(fmt.Sprintf("%s has unknown combinator '%s'", where, op))
		}
	}
}

func (v *ContentValidator) validateCondition(c *condition.Condition, where string) {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case condition.TypeTagCheck:
		if c.Param == "" {
			v.addError(fmt.Sprintf("%s tag_check has empty tag id", where))
		}
		if _, err := strconv.Atoi(strings.TrimSpace(c.Value)); err != nil {
			v.addError(fmt.Sprintf("%s tag_check value '%s' is not an integer", where, c.Value))
		}
	case condition.TypeItemOwned:
		if id, err := strconv.Atoi(strings.TrimSpace(c.Param)); err != nil || id <= 0 {
			v.addError(fmt.Sprintf("%s item_owned param '%s' is not a positive item id", where, c.Param))
		}
		if _, err := strconv.Atoi(strings.TrimSpace(c.Value)); err != nil {
			v.addError(fmt.Sprintf("%s item_owned value '%s' is not an integer", where, c.Value))
		}
	case condition.TypeQuestStatus:
		if c.Param == "" {
			v.addError(fmt.Sprintf("%s quest_status has empty quest id", where))
		}
	case condition.TypePlayerLevel:
		if _, err := strconv.Atoi(strings.TrimSpace(c.Value)); err != nil {
			v.addError(fmt.Sprintf("%s player_level value '%s' is not an integer", where, c.Value))
		}
	default:
		v.addError(fmt.Sprintf("%s has unknown condition type '%s'", where, c.Type))
	}

	switch condition.Operator(strings.ToLower(string(c.Operator))) {
	case condition.OpEqual, condition.OpNotEqual, condition.OpGreaterEqual,
		condition.OpGreaterThan, condition.OpLessEqual, condition.OpLessThan:
	case "":
		v.addError(fmt.Sprintf("%s has empty operator", where))
	default:
		v.addError(fmt.Sprintf("%s has unknown operator '%s'", where, c.Operator))
	}
}

func (v *ContentValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidContentFilename(name string) bool {
	return validIDRegex.MatchString(name)
}
