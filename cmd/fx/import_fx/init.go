package import_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"wayfare/internal/api/controllers"
	"wayfare/internal/repositories"
	"wayfare/internal/rules"
	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

var Module = fx.Provide(
	ProvideLLMClient,
	provideImportService,
	provideImportController,
)

// LLMConfig holds configuration for the extraction/designer client.
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideLLMClient creates an LLM client based on environment variables.
func ProvideLLMClient() (utils.LLMClientInterface, error) {
	config := getLLMConfig()

	log.Printf("Initializing %s LLM client with model: %s", config.Provider, config.Model)

	switch strings.ToLower(config.Provider) {
	case "openai":
		return utils.NewOpenAILLMClient(config.APIKey, config.Model), nil
	case "gemini":
		client, err := utils.NewGeminiLLMClient(config.APIKey, config.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", config.Provider)
	}
}

func provideImportService(
	itineraryRepo repositories.ItineraryRepository,
	llm utils.LLMClientInterface,
	engine *rules.Engine,
) services.ImportServiceInterface {
	return services.NewImportService(itineraryRepo, llm, engine)
}

func provideImportController(importService services.ImportServiceInterface) *controllers.ImportController {
	return controllers.NewImportController(importService)
}

func getLLMConfig() LLMConfig {
	provider := getEnvWithDefault("LLM_PROVIDER", "gemini")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return LLMConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
