package rules

import (
	"github.com/google/uuid"

	"wayfare/internal/models/db_models"
)

// Config controls which rules an engine evaluates. Disabled rules and
// suppressed severities are skipped entirely, not evaluated and filtered.
type Config struct {
	DisabledRules  []string
	EnableWarnings bool
	EnableInfo     bool
}

func DefaultConfig() Config {
	return Config{EnableWarnings: true, EnableInfo: true}
}

// Engine evaluates the rule catalog over candidate segment sets. It holds
// its rule set explicitly; there is no global registry. Construct one per
// configuration and share it freely, it is read-only after setup.
type Engine struct {
	cfg      Config
	disabled map[string]struct{}
	rules    map[string]Rule
	order    []string
}

func NewEngine(cfg Config) *Engine {
	e := &Engine{
		cfg:      cfg,
		disabled: make(map[string]struct{}, len(cfg.DisabledRules)),
		rules:    make(map[string]Rule),
	}
	for _, id := range cfg.DisabledRules {
		e.disabled[id] = struct{}{}
	}
	for _, r := range DefaultCatalog() {
		e.RegisterRule(r)
	}
	return e
}

// RegisterRule adds a rule or replaces the existing one with the same id.
// Replacement keeps the original position in evaluation order.
func (e *Engine) RegisterRule(r Rule) {
	if _, exists := e.rules[r.ID]; !exists {
		e.order = append(e.order, r.ID)
	}
	e.rules[r.ID] = r
}

// ValidateAdd checks a segment about to be appended: the candidate set is
// the existing segments plus the new one.
func (e *Engine) ValidateAdd(itinerary *db_models.Itinerary, segment *db_models.Segment) ValidationResult {
	candidates := make([]db_models.Segment, 0, len(itinerary.Segments)+1)
	candidates = append(candidates, itinerary.Segments...)
	candidates = append(candidates, *segment)
	return e.validate(RuleContext{
		Segment:    segment,
		Itinerary:  itinerary,
		Candidates: candidates,
		Operation:  OperationAdd,
	})
}

// ValidateUpdate checks a segment about to replace its stored version:
// the candidate set swaps the old segment (matched by id) for the new one.
func (e *Engine) ValidateUpdate(itinerary *db_models.Itinerary, segment *db_models.Segment) ValidationResult {
	candidates := make([]db_models.Segment, 0, len(itinerary.Segments)+1)
	replaced := false
	for i := range itinerary.Segments {
		if itinerary.Segments[i].ID == segment.ID {
			candidates = append(candidates, *segment)
			replaced = true
			continue
		}
		candidates = append(candidates, itinerary.Segments[i])
	}
	if !replaced {
		candidates = append(candidates, *segment)
	}
	return e.validate(RuleContext{
		Segment:    segment,
		Itinerary:  itinerary,
		Candidates: candidates,
		Operation:  OperationUpdate,
	})
}

// ValidateDelete checks a removal: the candidate set excludes the segment
// being deleted. Only rules meaningful on removal act here.
func (e *Engine) ValidateDelete(itinerary *db_models.Itinerary, segmentID uuid.UUID) ValidationResult {
	var removed *db_models.Segment
	candidates := make([]db_models.Segment, 0, len(itinerary.Segments))
	for i := range itinerary.Segments {
		if itinerary.Segments[i].ID == segmentID {
			removed = &itinerary.Segments[i]
			continue
		}
		candidates = append(candidates, itinerary.Segments[i])
	}
	return e.validate(RuleContext{
		Segment:    removed,
		Itinerary:  itinerary,
		Candidates: candidates,
		Operation:  OperationDelete,
	})
}

func (e *Engine) validate(ctx RuleContext) ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Errors:   []Issue{},
		Warnings: []Issue{},
		Info:     []Issue{},
	}

	for _, id := range e.order {
		rule := e.rules[id]
		if !rule.Enabled {
			continue
		}
		if _, off := e.disabled[id]; off {
			continue
		}
		if rule.Severity == SeverityWarning && !e.cfg.EnableWarnings {
			continue
		}
		if rule.Severity == SeverityInfo && !e.cfg.EnableInfo {
			continue
		}
		if !rule.appliesToOperation(ctx.Operation) {
			continue
		}
		if ctx.Segment != nil && !rule.appliesTo(ctx.Segment.Kind) {
			continue
		}

		outcome := rule.Evaluate(ctx)
		if outcome.Passed {
			continue
		}

		issue := Issue{
			RuleID:            rule.ID,
			Severity:          rule.Severity,
			Message:           outcome.Message,
			Suggestion:        outcome.Suggestion,
			RelatedSegmentIDs: outcome.RelatedSegmentIDs,
			Confidence:        outcome.Confidence,
		}
		switch rule.Severity {
		case SeverityError:
			result.Errors = append(result.Errors, issue)
			result.Valid = false
		case SeverityWarning:
			result.Warnings = append(result.Warnings, issue)
		case SeverityInfo:
			result.Info = append(result.Info, issue)
		}
	}
	return result
}
