package request_models

// Wire shapes of the JSON documents the LLM clients are prompted to
// return. Decoded defensively: malformed entries are dropped, never
// trusted into the itinerary without an engine verdict.

type CandidateSegment struct {
	SegmentPayload
	Confidence float64 `json:"confidence"`
}

type ExtractionDocument struct {
	Segments []CandidateSegment `json:"segments"`
}

type DesignerProposal struct {
	Action  string         `json:"action"`
	Segment SegmentPayload `json:"segment"`
}

type DesignerDocument struct {
	Reply     string             `json:"reply"`
	Proposals []DesignerProposal `json:"proposals"`
}
