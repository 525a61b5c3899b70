package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"novalink-bot/config"
)

// TextGenerator is the generative capability the decision engine depends on.
// Implementations either return non-empty text or an error; there is no
// partial success.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// GeminiClient generates text through the Gemini API, walking an ordered
// list of candidate models and trying the next one only after the previous
// attempt failed or timed out.
type GeminiClient struct {
	client  *genai.Client
	models  []string
	limiter *RateLimiter
	timeout time.Duration
}

// NewGeminiClient builds the client from configuration. It fails when no API
// key or no model is configured.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	if len(cfg.GeminiModels) == 0 {
		return nil, fmt.Errorf("no gemini models configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		models:  cfg.GeminiModels,
		limiter: NewRateLimiter(15),
		timeout: 20 * time.Second,
	}, nil
}

// GenerateText runs the prompt against each candidate model in order until
// one returns non-empty text. Every attempt gets its own timeout so a hung
// model cannot block the whole request.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	genCfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	content := genai.NewContentFromText(prompt, genai.RoleUser)

	var lastErr error
	for _, model := range g.models {
		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		resp, err := g.client.Models.GenerateContent(attemptCtx, model, []*genai.Content{content}, genCfg)
		cancel()

		if err != nil {
			slog.Warn("Gemini model attempt failed",
				"model", model,
				"error", err,
			)
			lastErr = err
			continue
		}

		text := extractText(resp)
		if strings.TrimSpace(text) == "" {
			slog.Warn("Gemini model returned empty completion", "model", model)
			lastErr = fmt.Errorf("empty completion from %s", model)
			continue
		}

		slog.Info("Gemini response generated",
			"model", model,
			"maxTokens", maxTokens,
			"responseLength", len(text),
		)
		return text, nil
	}

	return "", fmt.Errorf("all gemini models failed: %w", lastErr)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
