// Package rules implements the itinerary consistency engine: a catalog of
// named validation rules and the engine that evaluates them over a
// candidate segment set.
package rules

import (
	"wayfare/internal/models/db_models"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type Operation string

const (
	OperationAdd    Operation = "add"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// RuleContext is built fresh for every validation call and never retained.
// Candidates is the full segment set the operation would leave behind,
// including the segment being added/updated and excluding one being
// deleted.
type RuleContext struct {
	Segment    *db_models.Segment
	Itinerary  *db_models.Itinerary
	Candidates []db_models.Segment
	Operation  Operation
}

// RuleResult is the outcome of one rule against one context.
type RuleResult struct {
	Passed            bool
	Message           string
	Suggestion        string
	RelatedSegmentIDs []string
	Confidence        *float64
}

func pass() RuleResult { return RuleResult{Passed: true} }

// Rule is a named, independently testable consistency check. AppliesTo
// narrows it to certain segment kinds and Operations to certain
// operations; nil means all. Placement rules scope themselves to
// add/update so a removal is never blocked by where the doomed segment
// sat. Evaluate must be pure: same context, same result, no side effects.
type Rule struct {
	ID         string
	Severity   Severity
	AppliesTo  []db_models.SegmentKind
	Operations []Operation
	Enabled    bool
	Evaluate   func(RuleContext) RuleResult
}

func (r Rule) appliesTo(kind db_models.SegmentKind) bool {
	if len(r.AppliesTo) == 0 {
		return true
	}
	for _, k := range r.AppliesTo {
		if k == kind {
			return true
		}
	}
	return false
}

func (r Rule) appliesToOperation(op Operation) bool {
	if len(r.Operations) == 0 {
		return true
	}
	for _, o := range r.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// Issue is one reported rule failure, partitioned by severity in the
// ValidationResult.
type Issue struct {
	RuleID            string   `json:"rule_id"`
	Severity          Severity `json:"severity"`
	Message           string   `json:"message"`
	Suggestion        string   `json:"suggestion,omitempty"`
	RelatedSegmentIDs []string `json:"related_segment_ids,omitempty"`
	Confidence        *float64 `json:"confidence,omitempty"`
}

// ValidationResult is the single verdict type for add/update/delete
// validation. Errors block the operation; warnings and info never do.
type ValidationResult struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Info     []Issue `json:"info"`
}

// WarningMessages flattens warning texts, for callers persisting them as
// segment metadata.
func (v *ValidationResult) WarningMessages() []string {
	out := make([]string, 0, len(v.Warnings))
	for _, w := range v.Warnings {
		out = append(out, w.Message)
	}
	return out
}
