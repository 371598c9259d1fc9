package embeddings

import (
	"errors"
	"fmt"
	"os"
)

// Provider names accepted by New.
const (
	ProviderFastEmbed = "fastembed"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderGoogle    = "google"
)

// ErrUnknownProvider is returned by New for an unrecognized provider name.
var ErrUnknownProvider = errors.New("unknown embedding provider")

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return string(ModelTextEmbedding3Small)
	case ProviderOllama:
		return "nomic-embed-text"
	case ProviderGoogle:
		return string(ModelGeminiEmbedding001)
	default:
		return DefaultFastEmbedModel
	}
}

// New creates the Embedder for provider. An empty provider means fastembed
// and an empty model means DefaultModel(provider). Hosted providers read their
// API key from the environment.
func New(provider, model, ollamaURL string) (Embedder, error) {
	if provider == "" {
		provider = ProviderFastEmbed
	}
	if model == "" {
		model = DefaultModel(provider)
	}

	switch provider {
	case ProviderFastEmbed:
		return NewFastEmbedder(model)
	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return NewOpenAIEmbedder(apiKey, OpenAIModel(model))
	case ProviderOllama:
		return NewOllamaEmbedder(model, ollamaURL)
	case ProviderGoogle:
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required for Google embeddings")
		}
		return NewGoogleEmbedder(apiKey, GoogleModel(model))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
