package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"

	mem "wayfare/pkg/memcache"
)

// GeminiLLMClient implements LLMClientInterface using Google's Gemini
// models (free tier friendly).
type GeminiLLMClient struct {
	client *genai.Client
	model  string
}

func NewGeminiLLMClient(apiKey, model string) (*GeminiLLMClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiLLMClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiLLMClient) ExtractSegmentsJSON(ctx context.Context, raw string, formatHint string) (string, error) {
	return c.jsonGeneration(ctx, buildExtractionPrompt(raw, formatHint))
}

func (c *GeminiLLMClient) DesignerReplyJSON(ctx context.Context, history []mem.ChatMessage, itinerarySummary string, userMessage string) (string, error) {
	return c.jsonGeneration(ctx, buildDesignerPrompt(history, itinerarySummary, userMessage))
}

func (c *GeminiLLMClient) jsonGeneration(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so no brace-matching cleanup is needed.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}
	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini: response is not valid json")
	}
	return content, nil
}

// GetEmbedding generates a simple vector embedding for text.
// Gemini free tier has no dedicated embedding endpoint, so this uses a
// hash-based fallback good enough for coarse place lookup.
func (c *GeminiLLMClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return c.textToVector(text), nil
}

func (c *GeminiLLMClient) textToVector(text string) pgvector.Vector {
	const dims = 1536
	vector := make([]float32, dims)

	words := strings.Fields(strings.ToLower(text))
	for _, word := range words {
		h := c.hashWord(word)
		idx := int(h % uint32(dims))
		vector[idx] += 1.0
	}

	magnitude := float32(0)
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func (c *GeminiLLMClient) hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}

func (c *GeminiLLMClient) Close() error {
	return c.client.Close()
}
