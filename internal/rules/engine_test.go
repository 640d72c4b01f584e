package rules

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfare/internal/models/db_models"
)

func TestDisabledRuleIsSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisabledRules = []string{RuleNoFlightOverlap}
	engine := NewEngine(cfg)

	existing := flightSegment("100", ts(10, 10, 0), ts(10, 14, 0))
	it := itineraryWith(existing)

	incoming := flightSegment("200", ts(10, 12, 0), ts(10, 16, 0))
	result := engine.ValidateAdd(it, &incoming)

	assert.True(t, result.Valid)
	for _, issue := range result.Errors {
		assert.NotEqual(t, RuleNoFlightOverlap, issue.RuleID)
	}
}

func TestWarningsSuppressed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableWarnings = false
	engine := NewEngine(cfg)

	museum := activitySegment("Museum", "Louvre", ts(10, 10, 0), ts(10, 12, 0))
	it := itineraryWith(museum)

	lunch := activitySegment("Lunch", "Montmartre", ts(10, 12, 30), ts(10, 13, 30))
	result := engine.ValidateAdd(it, &lunch)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
}

func TestInfoSuppressed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableInfo = false
	engine := NewEngine(cfg)

	stay := hotelSegment("Grand Hotel", ts(10, 15, 0), ts(13, 11, 0))
	it := itineraryWith(stay)

	tour := activitySegment("City tour", "Downtown", ts(11, 10, 0), ts(11, 13, 0))
	result := engine.ValidateAdd(it, &tour)

	assert.Empty(t, result.Info)
}

func TestRegisterRuleOverridesById(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	engine.RegisterRule(Rule{
		ID:       RuleReasonableDuration,
		Severity: SeverityWarning,
		Enabled:  true,
		Evaluate: func(ctx RuleContext) RuleResult {
			return RuleResult{Message: "always flagged"}
		},
	})

	it := itineraryWith()
	seg := activitySegment("Hike", "Alps", ts(10, 9, 0), ts(10, 11, 0))
	result := engine.ValidateAdd(it, &seg)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, RuleReasonableDuration, result.Warnings[0].RuleID)
	assert.Equal(t, "always flagged", result.Warnings[0].Message)
}

func TestRegisterRuleAddsNewRule(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	engine.RegisterRule(Rule{
		ID:        "NO_LATE_MEETINGS",
		Severity:  SeverityWarning,
		AppliesTo: []db_models.SegmentKind{db_models.SegmentKindMeeting},
		Enabled:   true,
		Evaluate: func(ctx RuleContext) RuleResult {
			if ctx.Segment.StartTime.Hour() >= 20 {
				return RuleResult{Message: "meeting starts late"}
			}
			return RuleResult{Passed: true}
		},
	})

	it := itineraryWith()
	late := db_models.Segment{
		Kind:      db_models.SegmentKindMeeting,
		StartTime: ts(10, 21, 0),
		EndTime:   ts(10, 22, 0),
		Meeting:   &db_models.MeetingDetails{Title: "Retro"},
	}
	late.ID = uuid.New()
	result := engine.ValidateAdd(it, &late)

	var found bool
	for _, w := range result.Warnings {
		if w.RuleID == "NO_LATE_MEETINGS" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDisabledRuleRegistrationStaysDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisabledRules = []string{RuleChronologicalOrder}
	engine := NewEngine(cfg)

	it := itineraryWith()
	inverted := activitySegment("Dinner", "Rome", ts(10, 20, 0), ts(10, 19, 0))
	result := engine.ValidateAdd(it, &inverted)

	for _, issue := range result.Errors {
		assert.NotEqual(t, RuleChronologicalOrder, issue.RuleID)
	}
}

func TestValidateUpdateReplacesById(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	flight := flightSegment("100", ts(10, 10, 0), ts(10, 14, 0))
	it := itineraryWith(flight)

	// The updated version no longer conflicts with its own stored copy.
	moved := flight
	moved.StartTime = ts(10, 11, 0)
	moved.EndTime = ts(10, 15, 0)
	result := engine.ValidateUpdate(it, &moved)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}
