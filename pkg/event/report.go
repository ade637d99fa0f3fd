package event

// ReportKind classifies the outcome of processing one event. Nothing here
// is fatal; every outcome is recorded and the batch continues.
type ReportKind string

const (
	// ReportDispatched means the event's effect ran in full.
	ReportDispatched ReportKind = "dispatched"

	// ReportPartial means give_item placed fewer units than requested.
	ReportPartial ReportKind = "partial"

	// ReportConditionsNotMet means the event was skipped because its
	// conditions evaluated false. Log-level visibility only.
	ReportConditionsNotMet ReportKind = "conditions_not_met"

	// ReportInvalidCondition means a condition had an unparseable target
	// or unknown type; the event was skipped.
	ReportInvalidCondition ReportKind = "invalid_condition"

	// ReportMalformedParameter means param1/param2 failed the handler's
	// schema; the event's effect was skipped.
	ReportMalformedParameter ReportKind = "malformed_parameter"

	// ReportUnknownEventType means the event_type is outside the engine's
	// vocabulary.
	ReportUnknownEventType ReportKind = "unknown_event_type"

	// ReportMissingCollaborator means a required external service was not
	// configured on the engine.
	ReportMissingCollaborator ReportKind = "missing_collaborator"

	// ReportInsufficientStock means take_item requested more than held;
	// no mutation occurred.
	ReportInsufficientStock ReportKind = "insufficient_stock"

	// ReportEffectFailed means a collaborator call returned an error.
	ReportEffectFailed ReportKind = "effect_failed"
)

// Report is the structured outcome for a single event in a batch.
type Report struct {
	Index     int        `json:"index"`
	EventType string     `json:"event_type"`
	Kind      ReportKind `json:"kind"`
	Detail    string     `json:"detail,omitempty"`
	Requested int        `json:"requested,omitempty"` // item units requested, when applicable
	Actual    int        `json:"actual,omitempty"`    // item units placed or removed
}

// OK reports whether the event's effect ran (fully or partially).
func (r Report) OK() bool {
	return r.Kind == ReportDispatched || r.Kind == ReportPartial
}
