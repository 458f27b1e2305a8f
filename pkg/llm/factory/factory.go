package factory

import (
	"fmt"

	"mycloud-drive/pkg/llm"
	"mycloud-drive/pkg/llm/ollama"
	"mycloud-drive/pkg/llm/openai"
)

// NewLLMProvider selects a provider by name: "ollama" or "openai".
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai", "huggingface":
		return openai.NewProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
