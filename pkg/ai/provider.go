package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/johnquangdev/meetscribe/pkg/config"
)

// GenerateRequest is a provider-neutral text generation request
type GenerateRequest struct {
	SystemInstruction string
	Prompt            string
	Temperature       float64
	MaxTokens         int
}

// TextGenerator is implemented by every AI provider client
type TextGenerator interface {
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)
}

// ProviderType names an AI provider
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderGroq   ProviderType = "groq"
)

// NewTextGenerator returns the client selected by cfg.AI.Provider
func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	if cfg.AI.Timeout <= 0 {
		httpClient.Timeout = 60 * time.Second
	}

	switch ProviderType(cfg.AI.Provider) {
	case ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiClient(&cfg.Gemini, httpClient), nil
	case ProviderGroq:
		if cfg.Groq.APIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for Groq provider")
		}
		return NewGroqClient(&cfg.Groq, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.AI.Provider)
	}
}
