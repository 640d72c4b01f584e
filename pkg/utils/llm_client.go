package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"

	mem "wayfare/pkg/memcache"
)

// LLMClientInterface is the provider-neutral surface the import pipeline
// and the trip designer agent talk to. Implementations must return bare
// JSON documents matching the prompts' schemas; callers decode
// defensively and validate every proposal through the rule engine.
type LLMClientInterface interface {
	// ExtractSegmentsJSON turns raw imported content (email text, ICS,
	// plain text) into a JSON document of candidate segments with
	// confidence scores.
	ExtractSegmentsJSON(ctx context.Context, raw string, formatHint string) (string, error)

	// DesignerReplyJSON continues a designer conversation and returns a
	// JSON document with a reply plus segment add/update/delete proposals.
	DesignerReplyJSON(ctx context.Context, history []mem.ChatMessage, itinerarySummary string, userMessage string) (string, error)

	// GetEmbedding embeds free text for place lookup.
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

// NewLLMClient creates an OpenAI or Gemini backed client based on config.
func NewLLMClient(provider, apiKey, model string) (LLMClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAILLMClient(apiKey, model), nil
	case "gemini":
		return NewGeminiLLMClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

const extractionSchema = `
{
  "segments": [
    {
      "kind": "FLIGHT|HOTEL|MEETING|ACTIVITY|TRANSFER|CUSTOM",
      "status": "TENTATIVE",
      "start_time": "2024-01-15T10:00:00Z",
      "end_time": "2024-01-15T14:00:00Z",
      "location": {"name": "string", "code": "string"},
      "confidence": 0.9,
      "flight": {"origin": "JFK", "destination": "LHR", "airline": "BA", "flight_number": "BA178"},
      "hotel": {"property": "string", "check_in": "2024-01-15T15:00:00Z", "check_out": "2024-01-17T11:00:00Z", "room_count": 1},
      "meeting": {"title": "string", "attendees": ["a@b.c"]},
      "activity": {"name": "string", "category": "string"},
      "transfer": {"pickup": {"name": "string"}, "dropoff": {"name": "string"}, "transfer_type": "taxi"},
      "custom": {"title": "string", "description": "string"}
    }
  ]
}`

func buildExtractionPrompt(raw, formatHint string) string {
	hint := formatHint
	if hint == "" {
		hint = "unknown"
	}
	return fmt.Sprintf(`
You extract travel bookings from raw content. Return **JSON only** matching the schema below.
Include only the variant object matching each segment's kind, drop the others.
All times must be RFC3339 UTC. Set "confidence" in [0,1] per segment based on how certain the
extraction is. Do not invent segments the content does not support.

Schema (match keys exactly):
%s

Content format hint: %s

Content:
%s

Return JSON only. No comments, no markdown.
`, extractionSchema, hint, raw)
}

const designerSchema = `
{
  "reply": "short conversational answer for the traveler",
  "proposals": [
    {
      "action": "add|update|delete",
      "segment": {
        "id": "required for update/delete, omit for add",
        "kind": "FLIGHT|HOTEL|MEETING|ACTIVITY|TRANSFER|CUSTOM",
        "start_time": "2024-01-15T10:00:00Z",
        "end_time": "2024-01-15T14:00:00Z",
        "location": {"name": "string", "code": "string"}
      }
    }
  ]
}`

func buildDesignerPrompt(history []mem.ChatMessage, itinerarySummary, userMessage string) string {
	var conv strings.Builder
	for _, m := range history {
		fmt.Fprintf(&conv, "%s: %s\n", m.Role, m.Content)
	}
	return fmt.Sprintf(`
You are a trip designer assistant. The traveler's current itinerary and the conversation so far
are below. Answer the traveler and, when they ask for schedule changes, emit segment proposals.
Return **JSON only** matching the schema. Proposals you are unsure about belong in "reply" as a
question instead. Keep "proposals" empty when the traveler is only asking questions.

Schema (match keys exactly):
%s

Current itinerary:
%s

Conversation so far:
%s
user: %s

Return JSON only. No comments, no markdown.
`, designerSchema, itinerarySummary, conv.String(), userMessage)
}
