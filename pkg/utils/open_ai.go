package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"

	mem "wayfare/pkg/memcache"
)

type OpenAILLMClient struct {
	client *openai.Client
	model  string
}

func NewOpenAILLMClient(apiKey, model string) *OpenAILLMClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAILLMClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAILLMClient) ExtractSegmentsJSON(ctx context.Context, raw string, formatHint string) (string, error) {
	return c.jsonCompletion(ctx, buildExtractionPrompt(raw, formatHint))
}

func (c *OpenAILLMClient) DesignerReplyJSON(ctx context.Context, history []mem.ChatMessage, itinerarySummary string, userMessage string) (string, error) {
	return c.jsonCompletion(ctx, buildDesignerPrompt(history, itinerarySummary, userMessage))
}

func (c *OpenAILLMClient) jsonCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	content := resp.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("openai: response is not valid json")
	}
	return content, nil
}

func (c *OpenAILLMClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: empty response")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}
