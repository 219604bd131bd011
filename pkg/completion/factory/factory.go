package factory

import (
	"fmt"

	"humanlenk-be/pkg/completion"
	"humanlenk-be/pkg/completion/ollama"
	"humanlenk-be/pkg/completion/openai"
)

func NewProvider(providerType, modelName, baseURL, apiKey string) (completion.Provider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", providerType)
	}
}
