package condition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Condition types recognized by the engine. Matching is case-insensitive.
const (
	TypeTagCheck    = "tag_check"
	TypeItemOwned   = "item_owned"
	TypeQuestStatus = "quest_status"
	TypePlayerLevel = "player_level"
)

// Operator is the comparison applied between a resolved fact and a
// condition's target value.
type Operator string

const (
	OpEqual        Operator = "equal"
	OpNotEqual     Operator = "not_equal"
	OpGreaterEqual Operator = "greater_equal"
	OpGreaterThan  Operator = "greater_than"
	OpLessEqual    Operator = "less_equal"
	OpLessThan     Operator = "less_than"
)

// Combinator joins the results of a ConditionSet's conditions.
type Combinator string

const (
	CombineAnd Combinator = "and"
	CombineOr  Combinator = "or"
)

var (
	// ErrInvalidCondition is returned when a condition's target value or
	// parameter cannot be parsed for its type.
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrUnknownConditionType is returned for condition types outside the
	// engine's vocabulary.
	ErrUnknownConditionType = errors.New("unknown condition type")
)

// Condition is a single boolean predicate over external facts.
// It is immutable once constructed and owned by whatever event or
// dialogue option references it.
type Condition struct {
	Type     string   `json:"type"`
	Param    string   `json:"param,omitempty"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// ConditionSet is an ordered sequence of conditions joined by a combinator.
// An empty set evaluates to true (unconditional).
type ConditionSet struct {
	Operator   Combinator   `json:"operator,omitempty"` // defaults to "and"
	Conditions []*Condition `json:"conditions,omitempty"`
}

// FactProvider exposes the read-only game facts conditions evaluate against.
// Implementations must not mutate state during a query.
type FactProvider interface {
	// GetTagValue returns the value of a tag, or 0 if the tag was never set.
	GetTagValue(id string) int

	// HasItem reports whether the owner holds at least count units of the item.
	HasItem(itemID int, count int) bool

	// GetQuestStatus returns the status string for a quest, or "" if unknown.
	GetQuestStatus(id string) string

	// GetPlayerLevel returns the owner's current level.
	GetPlayerLevel() int
}

// Evaluate checks a full condition set against the provided facts.
// Evaluation is short-circuiting in declared order. Nil entries are
// skipped; they come from legacy content with an empty single-condition
// slot and are treated as passing.
func Evaluate(set ConditionSet, facts FactProvider) (bool, error) {
	combinator := set.Operator
	if combinator == "" {
		combinator = CombineAnd
	}

	any := false
	for _, c := range set.Conditions {
		if c == nil {
			continue
		}
		any = true

		ok, err := evaluateOne(c, facts)
		if err != nil {
			return false, err
		}

		if combinator == CombineAnd && !ok {
			return false, nil
		}
		if combinator == CombineOr && ok {
			return true, nil
		}
	}

	if !any {
		// No conditions means unconditional.
		return true, nil
	}

	// AND with no failures passes; OR with no successes fails.
	return combinator == CombineAnd, nil
}

// evaluateOne resolves a single condition's fact and compares it to the
// target value. Missing facts resolve to zero/empty rather than erroring;
// an unparseable target value is a hard failure.
func evaluateOne(c *Condition, facts FactProvider) (bool, error) {
	if facts == nil {
		return false, fmt.Errorf("%w: no fact provider", ErrInvalidCondition)
	}

	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case TypeTagCheck:
		target, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil {
			return false, fmt.Errorf("%w: tag_check target %q is not an integer", ErrInvalidCondition, c.Value)
		}
		return compareInts(facts.GetTagValue(c.Param), target, c.Operator)

	case TypePlayerLevel:
		target, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil {
			return false, fmt.Errorf("%w: player_level target %q is not an integer", ErrInvalidCondition, c.Value)
		}
		return compareInts(facts.GetPlayerLevel(), target, c.Operator)

	case TypeItemOwned:
		itemID, err := strconv.Atoi(strings.TrimSpace(c.Param))
		if err != nil {
			return false, fmt.Errorf("%w: item_owned param %q is not an item id", ErrInvalidCondition, c.Param)
		}
		count, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil {
			return false, fmt.Errorf("%w: item_owned target %q is not an integer", ErrInvalidCondition, c.Value)
		}
		owned := facts.HasItem(itemID, count)
		// HasItem is already an "at least count" check, so the operator
		// picks polarity only: not_equal and less_than assert the
		// threshold is not met, while equal, greater_equal, greater_than
		// and less_equal all assert ownership at or above count.
		if c.Operator == OpNotEqual || c.Operator == OpLessThan {
			return !owned, nil
		}
		return owned, nil

	case TypeQuestStatus:
		return compare(facts.GetQuestStatus(c.Param), c.Value, c.Operator)

	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownConditionType, c.Type)
	}
}

// compare coerces both sides to a common domain: numeric when both parse
// as numbers, string otherwise.
func compare(fact, target string, op Operator) (bool, error) {
	factNum, errA := strconv.ParseFloat(strings.TrimSpace(fact), 64)
	targetNum, errB := strconv.ParseFloat(strings.TrimSpace(target), 64)
	if errA == nil && errB == nil {
		return compareFloats(factNum, targetNum, op)
	}
	return compareOrdered(strings.Compare(fact, target), op)
}

func compareInts(fact, target int, op Operator) (bool, error) {
	switch {
	case fact < target:
		return compareOrdered(-1, op)
	case fact > target:
		return compareOrdered(1, op)
	default:
		return compareOrdered(0, op)
	}
}

func compareFloats(fact, target float64, op Operator) (bool, error) {
	switch {
	case fact < target:
		return compareOrdered(-1, op)
	case fact > target:
		return compareOrdered(1, op)
	default:
		return compareOrdered(0, op)
	}
}

// compareOrdered applies an operator to a three-way comparison result.
func compareOrdered(cmp int, op Operator) (bool, error) {
	switch Operator(strings.ToLower(string(op))) {
	case OpEqual:
		return cmp == 0, nil
	case OpNotEqual:
		return cmp != 0, nil
	case OpGreaterEqual:
		return cmp >= 0, nil
	case OpGreaterThan:
		return cmp > 0, nil
	case OpLessEqual:
		return cmp <= 0, nil
	case OpLessThan:
		return cmp < 0, nil
	default:
		return false, fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, op)
	}
}
