package response_models

import "wayfare/internal/rules"

// SegmentMutationResponse is returned by add/update/delete segment
// operations: the verdict plus the stored segment when the operation
// was allowed.
type SegmentMutationResponse struct {
	Verdict rules.ValidationResult `json:"verdict"`
	Segment *SegmentResponse       `json:"segment,omitempty"`
}

// MoveSegmentResponse carries the shifted set and, when the post-move
// rescan found an overlap, a non-blocking conflict warning.
type MoveSegmentResponse struct {
	Segments        []SegmentResponse `json:"segments"`
	ConflictWarning string            `json:"conflict_warning,omitempty"`
}

// CandidateReview is one LLM-extracted segment with its confidence and
// the engine's verdict against the target itinerary.
type CandidateReview struct {
	Segment    SegmentResponse        `json:"segment"`
	Confidence float64                `json:"confidence"`
	Verdict    rules.ValidationResult `json:"verdict"`
}

type ImportResponse struct {
	Candidates []CandidateReview `json:"candidates"`
}

// ProposalReview is one designer-agent proposal with its verdict.
type ProposalReview struct {
	Action  string                 `json:"action"`
	Segment SegmentResponse        `json:"segment"`
	Verdict rules.ValidationResult `json:"verdict"`
}

type DesignerChatResponse struct {
	SessionID string           `json:"session_id"`
	Reply     string           `json:"reply"`
	Proposals []ProposalReview `json:"proposals"`
}
